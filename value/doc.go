// seehuhn.de/go/spectra - colour and spectral numerics for rendering
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package value implements the fixed-length colour value types used by the
// renderer, together with one generic operation set shared by all of them.
//
// The concrete types are plain arrays of float64 channel samples:
//   - [Grey]: a single luminance channel
//   - [RGB]: linear tristimulus RGB (the colour space is implied by context)
//   - [XYZ]: CIE 1931 XYZ tristimulus values
//   - [Spectrum8], [Spectrum11], [Spectrum18], [Spectrum46], [Spectrum500]:
//     regularly spaced spectral samples, see [LayoutOf]
//
// All operations are generic functions constrained by [Channels], for
// example
//
//	a := value.RGB{0.1, 0.2, 0.3}
//	b := value.MulScalar(a, 2)
//	c := value.Add(a, b)
//
// Since [RGB] and [XYZ] are distinct types, mixing them is a compile time
// error.  Operations which only make sense for spectral samples (such as
// [Convolve]) return an error wrapping [ErrNotSpectral] when called for a
// non-spectral type.
package value
