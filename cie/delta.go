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

import "math"

// DeltaE returns the CIE 1976 colour difference, the Euclidean distance
// in Lab space.
func DeltaE(a, b Lab) float64 {
	dL := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dL*dL + da*da + db*db)
}

// DeltaL returns the lightness difference a.L - b.L.
func DeltaL(a, b Lab) float64 {
	return a.L - b.L
}

// DeltaC returns the chroma difference between a and b.
func DeltaC(a, b Lab) float64 {
	return math.Hypot(a.A, a.B) - math.Hypot(b.A, b.B)
}

// DeltaH returns the hue difference between a and b, the part of [DeltaE]
// not explained by differences in lightness and chroma.  The result is
// never negative.
func DeltaH(a, b Lab) float64 {
	dE := DeltaE(a, b)
	dL := DeltaL(a, b)
	dC := DeltaC(a, b)
	h2 := dE*dE - dL*dL - dC*dC
	if h2 <= 0 {
		return 0
	}
	return math.Sqrt(h2)
}

// DeltaE94 returns the CIE 1994 colour difference, using the weights for
// graphic arts.
func DeltaE94(a, b Lab) float64 {
	dL := DeltaL(a, b)
	dC := DeltaC(a, b)
	dH := DeltaH(a, b)

	c12 := math.Sqrt(math.Hypot(a.A, a.B) * math.Hypot(b.A, b.B))
	sc := 1 + 0.045*c12
	sh := 1 + 0.015*c12

	return math.Sqrt(dL*dL + (dC/sc)*(dC/sc) + (dH/sh)*(dH/sh))
}

// DeltaE2000 returns the CIEDE2000 colour difference between a and b, with
// all parametric weights set to 1.
func DeltaE2000(a, b Lab) float64 {
	return DeltaE2000K(a, b, 1, 1, 1)
}

var pow25to7 = math.Pow(25, 7)

// DeltaE2000K returns the CIEDE2000 colour difference between a and b
// with parametric weights for lightness, chroma and hue.
//
// The result is symmetric in a and b and zero if a equals b.
func DeltaE2000K(a, b Lab, kL, kC, kH float64) float64 {
	C1 := math.Hypot(a.A, a.B)
	C2 := math.Hypot(b.A, b.B)

	meanC7 := math.Pow((C1+C2)/2, 7)
	G := 0.5 * (1 - math.Sqrt(meanC7/(meanC7+pow25to7)))

	a1 := (1 + G) * a.A
	a2 := (1 + G) * b.A
	C1p := math.Hypot(a1, a.B)
	C2p := math.Hypot(a2, b.B)
	h1p := hueDeg(a.B, a1)
	h2p := hueDeg(b.B, a2)

	dLp := b.L - a.L
	dCp := C2p - C1p

	var dhp, meanHp float64
	switch {
	case C1p*C2p == 0:
		dhp = 0
		meanHp = h1p + h2p
	case math.Abs(h2p-h1p) <= 180:
		dhp = h2p - h1p
		meanHp = (h1p + h2p) / 2
	default:
		if h2p > h1p {
			dhp = h2p - h1p - 360
		} else {
			dhp = h2p - h1p + 360
		}
		if h1p+h2p < 360 {
			meanHp = (h1p + h2p + 360) / 2
		} else {
			meanHp = (h1p + h2p - 360) / 2
		}
	}
	dHp := 2 * math.Sqrt(C1p*C2p) * math.Sin(radians(dhp/2))

	meanLp := (a.L + b.L) / 2
	meanCp := (C1p + C2p) / 2

	l50 := (meanLp - 50) * (meanLp - 50)
	SL := 1 + 0.015*l50/math.Sqrt(20+l50)
	SC := 1 + 0.045*meanCp
	T := 1 - 0.17*math.Cos(radians(meanHp-30)) +
		0.24*math.Cos(radians(2*meanHp)) +
		0.32*math.Cos(radians(3*meanHp+6)) -
		0.20*math.Cos(radians(4*meanHp-63))
	SH := 1 + 0.015*meanCp*T

	dTheta := 30 * math.Exp(-((meanHp-275)/25)*((meanHp-275)/25))
	meanCp7 := math.Pow(meanCp, 7)
	RC := 2 * math.Sqrt(meanCp7/(meanCp7+pow25to7))
	RT := -math.Sin(radians(2*dTheta)) * RC

	tL := dLp / (kL * SL)
	tC := dCp / (kC * SC)
	tH := dHp / (kH * SH)
	return math.Sqrt(tL*tL + tC*tC + tH*tH + RT*tC*tH)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// hueDeg returns atan2(y, x) in degrees, in the range [0, 360).
func hueDeg(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	h := math.Atan2(y, x) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}
