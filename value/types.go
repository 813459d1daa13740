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

package value

import "math"

// Grey is a single luminance channel.
type Grey [1]float64

// RGB holds linear red, green and blue channels.
type RGB [3]float64

// XYZ holds CIE 1931 XYZ tristimulus values.
type XYZ [3]float64

// Spectrum8 holds 8 spectral samples from 380nm to 780nm.
type Spectrum8 [8]float64

// Spectrum11 holds 11 spectral samples from 400nm to 730nm.
type Spectrum11 [11]float64

// Spectrum18 holds 18 spectral samples from 380nm to 740nm.
type Spectrum18 [18]float64

// Spectrum46 holds 46 spectral samples from 360nm to 820nm.
type Spectrum46 [46]float64

// Spectrum500 holds 500 spectral samples from 360nm to 860nm.
type Spectrum500 [500]float64

// Channels is the set of colour value types which support the generic
// operation set of this package.
type Channels interface {
	Grey | RGB | XYZ | Spectrum8 | Spectrum11 | Spectrum18 | Spectrum46 | Spectrum500
}

// The following types implement the Channels constraint.
var (
	_ = Sum[Grey]
	_ = Sum[RGB]
	_ = Sum[XYZ]
	_ = Sum[Spectrum8]
	_ = Sum[Spectrum11]
	_ = Sum[Spectrum18]
	_ = Sum[Spectrum46]
	_ = Sum[Spectrum500]
)

// Name returns the type name of V, e.g. "Spectrum18".
func Name[V Channels]() string {
	switch any((*V)(nil)).(type) {
	case *Grey:
		return "Grey"
	case *RGB:
		return "RGB"
	case *XYZ:
		return "XYZ"
	case *Spectrum8:
		return "Spectrum8"
	case *Spectrum11:
		return "Spectrum11"
	case *Spectrum18:
		return "Spectrum18"
	case *Spectrum46:
		return "Spectrum46"
	case *Spectrum500:
		return "Spectrum500"
	}
	panic("unreachable")
}

// Len returns the number of channels of V.
func Len[V Channels]() int {
	var v V
	return len(v)
}

// IsSpectral reports whether V holds spectral samples.
func IsSpectral[V Channels]() bool {
	return LayoutOf[V]() != nil
}

// Fill returns a value with all channels set to d.
func Fill[V Channels](d float64) V {
	var v V
	for i := range len(v) {
		v[i] = d
	}
	return v
}

// Unit returns a value with all channels set to 1.
func Unit[V Channels]() V {
	return Fill[V](1)
}

// FromSlice returns a value with channels copied from x.
// Missing channels are set to zero, extra elements of x are ignored.
func FromSlice[V Channels](x []float64) V {
	var v V
	for i := range min(len(v), len(x)) {
		v[i] = x[i]
	}
	return v
}

// ToSlice returns a newly allocated slice holding the channels of v.
func ToSlice[V Channels](v V) []float64 {
	res := make([]float64, len(v))
	for i := range len(v) {
		res[i] = v[i]
	}
	return res
}

// DivSentinel is the magnitude returned when a non-zero number is divided by
// zero in one of the safe division operations.
const DivSentinel = math.MaxFloat32

// SafeDiv returns a/b, where 0/0 is 0 and x/0 is DivSentinel with the sign
// of x.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		switch {
		case a == 0:
			return 0
		case math.IsNaN(a):
			return a
		case a > 0:
			return DivSentinel
		default:
			return -DivSentinel
		}
	}
	return a / b
}
