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

package cie

import (
	"math"

	"seehuhn.de/go/spectra/value"
)

// The visible range used when integrating against the colour-matching
// functions.
const (
	CMFStart = 360.0
	CMFEnd   = 830.0
)

// CMF returns the CIE 1931 2° standard observer colour-matching functions
// at wavelength lambda (in nm).
//
// The functions are evaluated using the multi-lobe Gaussian fit by Wyman,
// Sloan and Shirley (2013), which is within the accuracy of the tabulated
// data for rendering purposes.
func CMF(lambda float64) value.XYZ {
	x := 1.056*lobe(lambda, 599.8, 37.9, 31.0) +
		0.362*lobe(lambda, 442.0, 16.0, 26.7) -
		0.065*lobe(lambda, 501.1, 20.4, 26.2)
	y := 0.821*lobe(lambda, 568.8, 46.9, 40.5) +
		0.286*lobe(lambda, 530.9, 16.3, 31.1)
	z := 1.217*lobe(lambda, 437.0, 11.8, 36.0) +
		0.681*lobe(lambda, 459.0, 26.0, 13.8)
	return value.XYZ{x, y, z}
}

// lobe is a Gaussian with different widths left and right of the mean.
func lobe(lambda, mu, sigma1, sigma2 float64) float64 {
	sigma := sigma2
	if lambda < mu {
		sigma = sigma1
	}
	t := (lambda - mu) / sigma
	return math.Exp(-0.5 * t * t)
}

// SpectrumToXYZ integrates the spectral function f against the
// colour-matching functions over [lo, hi], using the trapezoidal rule with
// the given step size (in nm).
func SpectrumToXYZ(f func(lambda float64) float64, lo, hi, step float64) value.XYZ {
	if !(hi > lo) || !(step > 0) {
		return value.XYZ{}
	}
	n := int(math.Ceil((hi - lo) / step))
	h := (hi - lo) / float64(n)
	var res value.XYZ
	for i := 0; i <= n; i++ {
		lambda := lo + float64(i)*h
		w := h
		if i == 0 || i == n {
			w = h / 2
		}
		res = value.ScaleAdd(w*f(lambda), CMF(lambda), res)
	}
	return res
}

// YIntegral is the integral of the ȳ colour-matching function over the
// visible range.  Dividing by this value maps a constant unit spectrum to
// luminance 1.
var YIntegral = SpectrumToXYZ(func(float64) float64 { return 1 }, CMFStart, CMFEnd, 1)[1]
