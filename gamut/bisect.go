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

package gamut

import (
	"math"
	"sync"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

// inUnitCube reports whether all channels are in the closed interval [0, 1].
func inUnitCube(c value.RGB) bool {
	for _, x := range c {
		if !(x >= 0 && x <= 1) {
			return false
		}
	}
	return true
}

func nonNegative(c value.RGB) bool {
	for _, x := range c {
		if !(x >= 0) {
			return false
		}
	}
	return true
}

// bisect searches along the line from out to in for the last point whose
// RGB value passes the test.  Both end points are given in the coordinates
// used for interpolation, and toRGB converts such a point to RGB.  After
// depth halvings, the midpoint is returned if it passes the test,
// otherwise the RGB value of the inside point.
func bisect(out, in [3]float64, toRGB func([3]float64) value.RGB, ok func(value.RGB) bool, depth int) value.RGB {
	for {
		var mid [3]float64
		for i := range mid {
			mid[i] = (out[i] + in[i]) / 2
		}
		rgb := toRGB(mid)
		if depth <= 0 {
			if ok(rgb) {
				return rgb
			}
			return toRGB(in)
		}
		if ok(rgb) {
			in = mid
		} else {
			out = mid
		}
		depth--
	}
}

// XYZMoveToUnitGamut moves the colour out towards the colour in, until it
// fits into the unit RGB cube of s.  The point in must be inside the gamut.
func XYZMoveToUnitGamut(out, in value.XYZ, s *space.Space, depth int) value.RGB {
	toRGB := func(c [3]float64) value.RGB { return s.XYZToRGB(c) }
	return bisect(out, in, toRGB, inUnitCube, depth)
}

// XYZMoveToGamut moves the colour out towards the neutral axis of s, until
// none of its RGB channels is negative.  The luminance of out is kept.
// Channels larger than one are allowed.
func XYZMoveToGamut(out value.XYZ, s *space.Space, depth int) value.RGB {
	Y := out[1]
	if !(Y > 0) {
		return value.RGB{}
	}
	in := value.MulScalar(s.WhiteXYZ(), Y)
	toRGB := func(c [3]float64) value.RGB { return s.XYZToRGB(c) }
	return bisect(out, in, toRGB, nonNegative, depth)
}

// LabMoveToUnitGamut moves the colour lab towards the grey (focusL, 0, 0),
// until it fits into the unit RGB cube of s.  Lab values are relative to
// the given white point.
func LabMoveToUnitGamut(lab cie.Lab, focusL float64, s *space.Space, white value.XYZ, depth int) value.RGB {
	toRGB := func(c [3]float64) value.RGB {
		return s.XYZToRGB(cie.LabToXYZ(cie.Lab{L: c[0], A: c[1], B: c[2]}, white))
	}
	return bisect([3]float64{lab.L, lab.A, lab.B}, [3]float64{focusL, 0, 0}, toRGB, inUnitCube, depth)
}

// LuvMoveToUnitGamut is like [LabMoveToUnitGamut], but interpolates in
// L*u*v* space.
func LuvMoveToUnitGamut(luv cie.Luv, focusL float64, s *space.Space, white value.XYZ, depth int) value.RGB {
	toRGB := func(c [3]float64) value.RGB {
		return s.XYZToRGB(cie.LuvToXYZ(cie.Luv{L: c[0], U: c[1], V: c[2]}, white))
	}
	return bisect([3]float64{luv.L, luv.U, luv.V}, [3]float64{focusL, 0, 0}, toRGB, inUnitCube, depth)
}

// Focus returns the lightness of the focus point used by the given method
// for the colour lab.  Methods which do not use a focus point return the
// lightness of lab, clamped to [0, 100].
func Focus(method Method, lab cie.Lab) float64 {
	switch method {
	case Node:
		return 50
	case Cusp:
		hue := int(math.Floor(cie.LabToLCh(lab).HueDegrees()))
		hue = min(max(hue, 0), 359)
		return cuspTable()[hue]
	default:
		return min(max(lab.L, 0), 100)
	}
}

// CuspLightness returns the lightness of the most saturated colour of the
// reference gamut, for the hue angle given in degrees.
func CuspLightness(hue int) float64 {
	hue = ((hue % 360) + 360) % 360
	return cuspTable()[hue]
}

// cuspTable holds, for every integer hue angle, the lightness at which the
// sRGB gamut reaches its maximum chroma.  The table is relative to the
// sRGB primaries and D65 white, independent of the target space.
var cuspTable = sync.OnceValue(func() *[360]float64 {
	var s *space.Space
	for _, b := range space.Builtin() {
		if b.Name == space.NameSRGB {
			s = b
			break
		}
	}
	white := s.WhiteXYZ()

	maxChroma := func(L, hue float64) float64 {
		sin, cos := math.Sincos(hue)
		lo, hi := 0.0, 200.0
		for range 24 {
			C := (lo + hi) / 2
			lab := cie.Lab{L: L, A: C * cos, B: C * sin}
			if inUnitCube(s.XYZToRGB(cie.LabToXYZ(lab, white))) {
				lo = C
			} else {
				hi = C
			}
		}
		return lo
	}

	res := new([360]float64)
	for h := range res {
		hue := float64(h) * math.Pi / 180
		bestL, bestC := 50.0, -1.0
		for L := 1.0; L < 100; L++ {
			if C := maxChroma(L, hue); C > bestC {
				bestL, bestC = L, C
			}
		}
		res[h] = bestL
	}
	return res
})
