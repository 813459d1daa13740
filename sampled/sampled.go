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

// Package sampled implements point-sampled and regularly-sampled spectra.
//
// These curves are used to import measured spectral data, for example
// reflectance measurements or illuminant tables, before the data is
// projected onto the channels of an internal spectral representation.
// All wavelengths are in nanometres.  Negative samples are read as zero.
package sampled

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrOutOfDomain is returned when a regularly-sampled spectrum is sampled
// outside its declared wavelength range.
var ErrOutOfDomain = errors.New("wavelength outside the sampled range")

// Curve is a non-negative function of wavelength which is linear between
// its breakpoints.
type Curve interface {
	// Eval returns the curve value at lambda, or 0 outside Bounds.
	Eval(lambda float64) float64

	// Bounds returns the wavelength range where the curve may be non-zero.
	Bounds() (lo, hi float64)

	// Breakpoints returns the increasing list of wavelengths where the
	// slope of the curve may change.
	Breakpoints() []float64
}

// The following types implement the Curve interface.
var (
	_ Curve = (*PSS)(nil)
	_ Curve = (*RSS)(nil)
)

// Integrate returns the integral of c over [lo, hi].
func Integrate(c Curve, lo, hi float64) float64 {
	cLo, cHi := c.Bounds()
	lo = math.Max(lo, cLo)
	hi = math.Min(hi, cHi)
	if !(lo < hi) {
		return 0
	}
	xs := merge(lo, hi, c.Breakpoints())
	var sum float64
	for i := 1; i < len(xs); i++ {
		x0, x1 := xs[i-1], xs[i]
		sum += (x1 - x0) * (c.Eval(x0) + evalLeft(c, x1)) / 2
	}
	return sum
}

// Inner returns the inner product of a and b, i.e. the integral of the
// product a(λ)b(λ) over all wavelengths.
func Inner(a, b Curve) float64 {
	aLo, aHi := a.Bounds()
	bLo, bHi := b.Bounds()
	lo := math.Max(aLo, bLo)
	hi := math.Min(aHi, bHi)
	if !(lo < hi) {
		return 0
	}
	xs := merge(lo, hi, a.Breakpoints(), b.Breakpoints())

	// The product of two linear functions is quadratic, so that Simpson's
	// rule is exact on every interval.
	var sum float64
	for i := 1; i < len(xs); i++ {
		x0, x1 := xs[i-1], xs[i]
		xm := (x0 + x1) / 2
		f0 := a.Eval(x0) * b.Eval(x0)
		fm := a.Eval(xm) * b.Eval(xm)
		f1 := evalLeft(a, x1) * evalLeft(b, x1)
		sum += (x1 - x0) * (f0 + 4*fm + f1) / 6
	}
	return sum
}

// evalLeft evaluates c at x, approaching x from the left.  This makes a
// difference at the upper end of the curve's range, where Eval returns 0.
func evalLeft(c Curve, x float64) float64 {
	_, hi := c.Bounds()
	if x >= hi {
		x = math.Nextafter(hi, math.Inf(-1))
	}
	return c.Eval(x)
}

// merge returns the sorted list of breakpoints inside [lo, hi], including
// lo and hi.
func merge(lo, hi float64, lists ...[]float64) []float64 {
	xs := []float64{lo, hi}
	for _, l := range lists {
		for _, x := range l {
			if x > lo && x < hi {
				xs = append(xs, x)
			}
		}
	}
	sort.Float64s(xs)
	res := xs[:1]
	for _, x := range xs[1:] {
		if x != res[len(res)-1] {
			res = append(res, x)
		}
	}
	return res
}

func checkSamples(kind string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: sample %d is not finite", kind, i)
		}
		if v < 0 {
			return fmt.Errorf("%s: sample %d is negative (%g), read as 0", kind, i, v)
		}
	}
	return nil
}

func checkScale(kind string, scale float64) error {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("%s: invalid scale %g", kind, scale)
	}
	return nil
}

func clip(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
