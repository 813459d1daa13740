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

// Convolve returns the weighted inner product sum_i a[i]*b[i]*w[i], where w
// are the channel weights of the layout of V.  The weights are the channel
// widths in nanometres, so that the result approximates the integral of the
// product of the two spectra.
func Convolve[V Channels](a, b V) (float64, error) {
	l := LayoutOf[V]()
	if l == nil {
		return 0, &OpError{Op: "convolve", Type: Name[V](), Err: ErrNotSpectral}
	}
	var s float64
	for i := range len(a) {
		s += a[i] * b[i] * l.Weights[i]
	}
	return s, nil
}

// ValueAt returns the spectral value of a at the wavelength lambda (in nm).
// The samples are interpolated linearly between channel centres; outside the
// wavelength range of V the result is zero.
func ValueAt[V Channels](a V, lambda float64) (float64, error) {
	l := LayoutOf[V]()
	if l == nil {
		return 0, &OpError{Op: "value at wavelength", Type: Name[V](), Err: ErrNotSpectral}
	}
	return l.Interpolate(func(i int) float64 { return a[i] }, lambda), nil
}

// SampleAt returns a value which is zero everywhere, except for the one or
// two channels nearest to the wavelength lambda.  These channels share the
// value d using linear weights, so that the channel values sum to d.
// If lambda is outside the range of V, the result is zero.
func SampleAt[V Channels](lambda, d float64) (V, error) {
	var res V
	l := LayoutOf[V]()
	if l == nil {
		return res, &OpError{Op: "sample at wavelength", Type: Name[V](), Err: ErrNotSpectral}
	}
	i0, w0, i1, w1 := l.Split(lambda)
	if i0 >= 0 {
		res[i0] = w0 * d
	}
	if i1 >= 0 {
		res[i1] = w1 * d
	}
	return res, nil
}
