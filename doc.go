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


// Package spectra provides colour and spectral numerics for a physically
// based renderer.
//
// The central type is [Engine], which holds the configuration shared by
// all colour computations: the table of known colour spaces, the default
// RGB space used for display, the gamut mapping policy, the system white
// point and the internal spectral representation.  An Engine is created
// once before rendering starts:
//
//	e, err := spectra.New(&spectra.Options{
//	    Representation: isr.Spectrum46,
//	    DefaultRGB:     space.NameSRGB,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	x, err := e.NewSpectrum()
//	...
//	rgb, err := e.SpectrumToDisplay(x)
//
// The packages below this one can also be used on their own:
//
//   - [seehuhn.de/go/spectra/value]: fixed-size colour value types
//   - [seehuhn.de/go/spectra/sampled]: measured spectra
//   - [seehuhn.de/go/spectra/cie]: CIE colour models and colour differences
//   - [seehuhn.de/go/spectra/space]: RGB colour spaces and ICC import
//   - [seehuhn.de/go/spectra/gamut]: gamut mapping
//   - [seehuhn.de/go/spectra/isr]: the internal spectral representation
//
// Configuration changes are expected to happen before rendering starts.
// All methods are safe for concurrent use, with the exception of
// [Engine.SetRepresentation], see there.
package spectra
