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

// Package cie implements conversions between the CIE colour spaces.
//
// All conversions which depend on a reference white take the white point
// explicitly, as an XYZ value with Y normally equal to 1.  Lab and Luv
// lightness values are in the range 0 to 100.  Hue angles in [LCh] are
// measured in radians and normalised to [0, 2π).
package cie

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spectra/value"
)

// ErrDegenerateChromaticity is returned by [XYYToXYZChecked] when the
// chromaticity y is zero.
var ErrDegenerateChromaticity = errors.New("chromaticity with y = 0")

// XYY is a colour given by its chromaticity and luminance.
type XYY struct {
	Chroma vec.Vec2
	Y      float64
}

// Lab is a colour in the CIE 1976 L*a*b* space.
type Lab struct {
	L, A, B float64
}

// Luv is a colour in the CIE 1976 L*u*v* space.
type Luv struct {
	L, U, V float64
}

// LCh is the polar form of a Lab or Luv colour.
type LCh struct {
	L, C, H float64
}

const (
	labEpsilon = 216.0 / 24389.0 // (6/29)^3
	labDelta   = 6.0 / 29.0
	labKappa   = 24389.0 / 27.0 // (29/3)^3
)

// XYZToXYY converts XYZ to chromaticity and luminance.
// Black maps to the chromaticity of white, so that the hue stays
// well-defined along the grey axis.
func XYZToXYY(c value.XYZ, white value.XYZ) XYY {
	sum := c[0] + c[1] + c[2]
	if sum == 0 {
		return XYY{Chroma: Chromaticity(white), Y: c[1]}
	}
	return XYY{
		Chroma: vec.Vec2{X: c[0] / sum, Y: c[1] / sum},
		Y:      c[1],
	}
}

// XYYToXYZ converts chromaticity and luminance to XYZ.
// No check for y = 0 is made; the result then contains infinities or NaN
// values, following IEEE arithmetic.
func XYYToXYZ(c XYY) value.XYZ {
	x, y := c.Chroma.X, c.Chroma.Y
	return value.XYZ{
		x * c.Y / y,
		c.Y,
		(1 - x - y) * c.Y / y,
	}
}

// XYYToXYZChecked is like [XYYToXYZ], but returns
// [ErrDegenerateChromaticity] if the chromaticity y is zero.
func XYYToXYZChecked(c XYY) (value.XYZ, error) {
	if c.Chroma.Y == 0 {
		return value.XYZ{}, ErrDegenerateChromaticity
	}
	return XYYToXYZ(c), nil
}

// Chromaticity returns the xy chromaticity of an XYZ value.
// The zero vector is returned for black.
func Chromaticity(c value.XYZ) vec.Vec2 {
	sum := c[0] + c[1] + c[2]
	if sum == 0 {
		return vec.Vec2{}
	}
	return vec.Vec2{X: c[0] / sum, Y: c[1] / sum}
}

// WhiteXYZ returns the XYZ value with luminance 1 for the chromaticity xy.
func WhiteXYZ(xy vec.Vec2) value.XYZ {
	return XYYToXYZ(XYY{Chroma: xy, Y: 1})
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}

// XYZToLab converts XYZ to L*a*b*, relative to the given white point.
func XYZToLab(c value.XYZ, white value.XYZ) Lab {
	fx := labF(c[0] / white[0])
	fy := labF(c[1] / white[1])
	fz := labF(c[2] / white[2])
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ converts L*a*b* to XYZ, relative to the given white point.
func LabToXYZ(c Lab, white value.XYZ) value.XYZ {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200
	return value.XYZ{
		labFInv(fx) * white[0],
		labFInv(fy) * white[1],
		labFInv(fz) * white[2],
	}
}

// uvPrime returns the CIE 1976 UCS chromaticity of c.  For black, the
// chromaticity of the fallback colour is used.
func uvPrime(c, fallback value.XYZ) (u, v float64) {
	d := c[0] + 15*c[1] + 3*c[2]
	if d == 0 {
		if fallback == c {
			return 0, 0
		}
		return uvPrime(fallback, fallback)
	}
	return 4 * c[0] / d, 9 * c[1] / d
}

// XYZToLuv converts XYZ to L*u*v*, relative to the given white point.
func XYZToLuv(c value.XYZ, white value.XYZ) Luv {
	yr := c[1] / white[1]
	var L float64
	if yr > labEpsilon {
		L = 116*math.Cbrt(yr) - 16
	} else {
		L = labKappa * yr
	}
	un, vn := uvPrime(white, white)
	u, v := uvPrime(c, white)
	return Luv{
		L: L,
		U: 13 * L * (u - un),
		V: 13 * L * (v - vn),
	}
}

// LuvToXYZ converts L*u*v* to XYZ, relative to the given white point.
func LuvToXYZ(c Luv, white value.XYZ) value.XYZ {
	if c.L <= 0 {
		return value.XYZ{}
	}
	var Y float64
	if c.L > 8 {
		t := (c.L + 16) / 116
		Y = white[1] * t * t * t
	} else {
		Y = white[1] * c.L / labKappa
	}
	un, vn := uvPrime(white, white)
	u := c.U/(13*c.L) + un
	v := c.V/(13*c.L) + vn
	if v == 0 {
		return value.XYZ{0, Y, 0}
	}
	return value.XYZ{
		Y * 9 * u / (4 * v),
		Y,
		Y * (12 - 3*u - 20*v) / (4 * v),
	}
}

// normHue maps an angle to the range [0, 2π).
func normHue(h float64) float64 {
	h = math.Mod(h, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	if h >= 2*math.Pi {
		h = 0
	}
	return h
}

func toPolar(L, a, b float64) LCh {
	return LCh{
		L: L,
		C: math.Hypot(a, b),
		H: normHue(math.Atan2(b, a)),
	}
}

// LabToLCh converts L*a*b* to polar form.
func LabToLCh(c Lab) LCh {
	return toPolar(c.L, c.A, c.B)
}

// LChToLab converts polar form to L*a*b*.
func LChToLab(c LCh) Lab {
	s, co := math.Sincos(c.H)
	return Lab{L: c.L, A: c.C * co, B: c.C * s}
}

// LuvToLCh converts L*u*v* to polar form.
func LuvToLCh(c Luv) LCh {
	return toPolar(c.L, c.U, c.V)
}

// LChToLuv converts polar form to L*u*v*.
func LChToLuv(c LCh) Luv {
	s, co := math.Sincos(c.H)
	return Luv{L: c.L, U: c.C * co, V: c.C * s}
}

// LabToLuv converts between the two CIE 1976 spaces, via XYZ.
func LabToLuv(c Lab, white value.XYZ) Luv {
	return XYZToLuv(LabToXYZ(c, white), white)
}

// LuvToLab converts between the two CIE 1976 spaces, via XYZ.
func LuvToLab(c Luv, white value.XYZ) Lab {
	return XYZToLab(LuvToXYZ(c, white), white)
}

// HueDegrees returns the hue angle of c in degrees, in the range [0, 360).
func (c LCh) HueDegrees() float64 {
	return c.H * 180 / math.Pi
}
