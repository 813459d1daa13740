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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spectra/value"
)

// Whitepoint is a named reference white.
type Whitepoint struct {
	Name string
	XY   vec.Vec2
}

// XYZ returns the white point as an XYZ value with Y = 1.
func (w Whitepoint) XYZ() value.XYZ {
	return WhiteXYZ(w.XY)
}

func (w Whitepoint) String() string {
	return fmt.Sprintf("%s (x=%.5f, y=%.5f)", w.Name, w.XY.X, w.XY.Y)
}

// Standard illuminants, as CIE 1931 chromaticities.
var (
	WhiteE   = Whitepoint{"E", vec.Vec2{X: 1.0 / 3, Y: 1.0 / 3}}
	WhiteA   = Whitepoint{"A", vec.Vec2{X: 0.44757, Y: 0.40745}}
	WhiteD50 = Whitepoint{"D50", vec.Vec2{X: 0.34567, Y: 0.35850}}
	WhiteD55 = Whitepoint{"D55", vec.Vec2{X: 0.33242, Y: 0.34743}}
	WhiteD60 = Whitepoint{"D60", vec.Vec2{X: 0.32168, Y: 0.33767}}
	WhiteD65 = Whitepoint{"D65", vec.Vec2{X: 0.3127, Y: 0.3290}}
	WhiteD75 = Whitepoint{"D75", vec.Vec2{X: 0.29902, Y: 0.31485}}
)

// Whitepoints lists the standard illuminants known to [LookupWhitepoint].
var Whitepoints = []Whitepoint{
	WhiteE, WhiteA, WhiteD50, WhiteD55, WhiteD60, WhiteD65, WhiteD75,
}

// ErrUnknownWhitepoint is returned by [LookupWhitepoint] for names which
// are neither a standard illuminant nor a colour temperature.
var ErrUnknownWhitepoint = errors.New("unknown white point")

// LookupWhitepoint returns the white point with the given name.
// Names are matched case-insensitively.  In addition to the standard
// illuminants, a colour temperature like "5000K" selects the chromaticity
// of a black body radiator.
func LookupWhitepoint(name string) (Whitepoint, error) {
	folder := cases.Fold()
	key := folder.String(strings.TrimSpace(name))
	for _, w := range Whitepoints {
		if folder.String(w.Name) == key {
			return w, nil
		}
	}
	if rest, ok := strings.CutSuffix(key, "k"); ok {
		T, err := strconv.ParseFloat(rest, 64)
		if err == nil {
			xy, err := Blackbody(T)
			if err != nil {
				return Whitepoint{}, err
			}
			return Whitepoint{Name: fmt.Sprintf("%gK", T), XY: xy}, nil
		}
	}
	return Whitepoint{}, fmt.Errorf("%w %q", ErrUnknownWhitepoint, name)
}

// Planck's radiation constants c1 = 2hc² and c2 = hc/k, in SI units.
const (
	planckC1 = 3.741771852e-16
	planckC2 = 1.438776877e-2
)

// Planck returns the spectral radiance of a black body at temperature T
// (in Kelvin) and wavelength lambda (in nm), in arbitrary units.
func Planck(lambda, T float64) float64 {
	l := lambda * 1e-9
	return planckC1 / (l * l * l * l * l * math.Expm1(planckC2/(l*T)))
}

// Blackbody returns the chromaticity of a black body radiator at
// temperature T, in Kelvin.
func Blackbody(T float64) (vec.Vec2, error) {
	if !(T > 0) || math.IsInf(T, 0) {
		return vec.Vec2{}, fmt.Errorf("invalid colour temperature %g", T)
	}
	xyz := SpectrumToXYZ(func(lambda float64) float64 {
		return Planck(lambda, T)
	}, CMFStart, CMFEnd, 1)
	return Chromaticity(xyz), nil
}

// Daylight returns the chromaticity of CIE daylight with the correlated
// colour temperature T.  Temperatures outside 4000K to 25000K are
// rejected.
func Daylight(T float64) (vec.Vec2, error) {
	T2 := T * T
	T3 := T2 * T
	var x float64
	switch {
	case T >= 4000 && T <= 7000:
		x = -4.6070*(1e9/T3) + 2.9678*(1e6/T2) + 0.09911*(1e3/T) + 0.244063
	case T > 7000 && T <= 25000:
		x = -2.0064*(1e9/T3) + 1.9018*(1e6/T2) + 0.24748*(1e3/T) + 0.237040
	default:
		return vec.Vec2{}, fmt.Errorf("daylight temperature %g outside [4000, 25000]", T)
	}
	y := -3.000*x*x + 2.870*x - 0.275
	return vec.Vec2{X: x, Y: y}, nil
}

// isotemperature lines for Robertson's method: reciprocal megakelvin,
// (u, v) on the black body locus, and slope.
var isotemp = [][4]float64{
	{0, 0.18006, 0.26352, -0.24341},
	{10, 0.18066, 0.26589, -0.25479},
	{20, 0.18133, 0.26846, -0.26876},
	{30, 0.18208, 0.27119, -0.28539},
	{40, 0.18293, 0.27407, -0.30470},
	{50, 0.18388, 0.27709, -0.32675},
	{60, 0.18494, 0.28021, -0.35156},
	{70, 0.18611, 0.28342, -0.37915},
	{80, 0.18740, 0.28668, -0.40955},
	{90, 0.18880, 0.28997, -0.44278},
	{100, 0.19032, 0.29326, -0.47888},
	{125, 0.19462, 0.30141, -0.58204},
	{150, 0.19962, 0.30921, -0.70471},
	{175, 0.20525, 0.31647, -0.84901},
	{200, 0.21142, 0.32312, -1.0182},
	{225, 0.21807, 0.32909, -1.2168},
	{250, 0.22511, 0.33439, -1.4512},
	{275, 0.23247, 0.33904, -1.7298},
	{300, 0.24010, 0.34308, -2.0637},
	{325, 0.24702, 0.34655, -2.4681},
	{350, 0.25591, 0.34951, -2.9641},
	{375, 0.26400, 0.35200, -3.5814},
	{400, 0.27218, 0.35407, -4.3633},
	{425, 0.28039, 0.35577, -5.3762},
	{450, 0.28863, 0.35714, -6.7262},
	{475, 0.29685, 0.35823, -8.5955},
	{500, 0.30505, 0.35907, -11.324},
	{525, 0.31320, 0.35968, -15.628},
	{550, 0.32129, 0.36011, -23.325},
	{575, 0.32931, 0.36038, -40.770},
	{600, 0.33724, 0.36051, -116.45},
}

// CCT estimates the correlated colour temperature of the chromaticity xy,
// using Robertson's method.  An error is returned if xy is too far from
// the black body locus.
func CCT(xy vec.Vec2) (float64, error) {
	d := -xy.X + 6*xy.Y + 1.5
	us := 2 * xy.X / d
	vs := 3 * xy.Y / d

	var di, mi float64
	for j, row := range isotemp {
		mj, uj, vj, tj := row[0], row[1], row[2], row[3]
		dj := ((vs - vj) - tj*(us-uj)) / math.Sqrt(1+tj*tj)
		if j > 0 && di/dj < 0 {
			return 1e6 / (mi + di/(di-dj)*(mj-mi)), nil
		}
		di, mi = dj, mj
	}
	return 0, fmt.Errorf("no colour temperature for (%g, %g)", xy.X, xy.Y)
}
