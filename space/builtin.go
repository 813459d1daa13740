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

package space

import (
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/spectra/cie"
)

// Names of the built-in colour spaces.
const (
	NameSRGB      = "sRGB"
	NameAdobeRGB  = "Adobe RGB (1998)"
	NameACESAP0   = "ACES AP0"
	NameACESAP1   = "ACES AP1"
	NameDisplayP3 = "Display P3"
	NameRec2020   = "Rec. 2020"
	NameCIEXYZ    = "CIE XYZ"
	NameCIExyY    = "CIE xyY"
	NameCIELab    = "CIE L*a*b*"
	NameCIELuv    = "CIE L*u*v*"
)

type rgbDef struct {
	name     string
	r, g, b  vec.Vec2
	white    vec.Vec2
	gamma    float64
	transfer cie.Transfer
	profile  []byte
}

var builtinRGB = []rgbDef{
	{
		name:     NameSRGB,
		r:        vec.Vec2{X: 0.64, Y: 0.33},
		g:        vec.Vec2{X: 0.30, Y: 0.60},
		b:        vec.Vec2{X: 0.15, Y: 0.06},
		white:    cie.WhiteD65.XY,
		gamma:    2.2,
		transfer: cie.SRGB,
		profile:  icc.SRGBv4Profile,
	},
	{
		name:  NameAdobeRGB,
		r:     vec.Vec2{X: 0.64, Y: 0.33},
		g:     vec.Vec2{X: 0.21, Y: 0.71},
		b:     vec.Vec2{X: 0.15, Y: 0.06},
		white: cie.WhiteD65.XY,
		gamma: 563.0 / 256.0,
	},
	{
		name:     NameACESAP0,
		r:        vec.Vec2{X: 0.7347, Y: 0.2653},
		g:        vec.Vec2{X: 0.0, Y: 1.0},
		b:        vec.Vec2{X: 0.0001, Y: -0.0770},
		white:    cie.WhiteD60.XY,
		gamma:    1,
		transfer: cie.Linear,
	},
	{
		name:     NameACESAP1,
		r:        vec.Vec2{X: 0.713, Y: 0.293},
		g:        vec.Vec2{X: 0.165, Y: 0.830},
		b:        vec.Vec2{X: 0.128, Y: 0.044},
		white:    cie.WhiteD60.XY,
		gamma:    1,
		transfer: cie.Linear,
	},
	{
		name:     NameDisplayP3,
		r:        vec.Vec2{X: 0.680, Y: 0.320},
		g:        vec.Vec2{X: 0.265, Y: 0.690},
		b:        vec.Vec2{X: 0.150, Y: 0.060},
		white:    cie.WhiteD65.XY,
		gamma:    2.2,
		transfer: cie.SRGB,
	},
	{
		// BT.1886 display transfer
		name:  NameRec2020,
		r:     vec.Vec2{X: 0.708, Y: 0.292},
		g:     vec.Vec2{X: 0.170, Y: 0.797},
		b:     vec.Vec2{X: 0.131, Y: 0.046},
		white: cie.WhiteD65.XY,
		gamma: 2.4,
	},
}

// Builtin returns freshly constructed copies of the built-in colour
// spaces, in registration order.
func Builtin() []*Space {
	var res []*Space
	for _, d := range builtinRGB {
		s, err := NewRGB(d.name, d.r, d.g, d.b, d.white, d.gamma, d.transfer)
		if err != nil {
			panic(err) // unreachable: the table above is valid
		}
		s.Profile = d.profile
		res = append(res, s)
	}
	res = append(res,
		newCIE(CIEXYZ, NameCIEXYZ, cie.WhiteD50.XY),
		newCIE(CIExyY, NameCIExyY, cie.WhiteD50.XY),
		newCIE(CIELab, NameCIELab, cie.WhiteD50.XY),
		newCIE(CIELuv, NameCIELuv, cie.WhiteD50.XY),
	)
	return res
}
