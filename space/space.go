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

// Package space describes colour spaces and keeps a registry of named
// spaces.
//
// An RGB space is given by the chromaticities of its three primaries, a
// white point and a transfer function.  The matrices between linear RGB
// and CIE XYZ are derived from the chromaticities when the space is
// constructed and are never changed afterwards.
package space

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/internal/mat3"
	"seehuhn.de/go/spectra/value"
)

// Type is the kind of a colour space.
type Type int

// These are the supported kinds of colour space.
const (
	RGB Type = iota
	CIEXYZ
	CIExyY
	CIELab
	CIELuv
)

func (t Type) String() string {
	switch t {
	case RGB:
		return "RGB"
	case CIEXYZ:
		return "CIEXYZ"
	case CIExyY:
		return "CIExyY"
	case CIELab:
		return "CIELab"
	case CIELuv:
		return "CIELuv"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Space describes a colour space.
//
// Spaces stored in a [Registry] are shared and must not be modified.
type Space struct {
	Type Type
	Name string

	// Chromaticities of the primaries.  These are only used for RGB
	// spaces.
	Red, Green, Blue vec.Vec2

	// White is the chromaticity of the reference white.
	White vec.Vec2

	// ToRGB maps XYZ to linear RGB, ToXYZ is its inverse.
	ToRGB, ToXYZ f64.Mat3

	// Gamma is the nominal exponent of the transfer function, for
	// display purposes.
	Gamma float64

	// Transfer is the transfer function of the RGB channels.
	Transfer cie.Transfer

	// Profile optionally holds an ICC profile describing the space.
	Profile []byte
}

// Errors returned when constructing colour spaces.
var (
	ErrInvalidChromaticity    = errors.New("invalid chromaticity")
	ErrSingularPrimaries      = errors.New("primaries are linearly dependent")
	ErrUnsupportedColourSpace = errors.New("unsupported colour space")
	ErrNotMatrixShaper        = errors.New("not a matrix/TRC profile")
	ErrUnknownSpace           = errors.New("unknown colour space")
	ErrDuplicateSpace         = errors.New("duplicate colour space name")
)

// ConfigError reports a problem with the definition of a colour space.
type ConfigError struct {
	Space string
	Err   error
}

func (err *ConfigError) Error() string {
	if err.Space == "" {
		return "colour space: " + err.Err.Error()
	}
	return fmt.Sprintf("colour space %q: %s", err.Space, err.Err)
}

func (err *ConfigError) Unwrap() error {
	return err.Err
}

// primaryXYZ returns the XYZ value with Y = 1 for chromaticity c.
func primaryXYZ(c vec.Vec2) f64.Vec3 {
	return f64.Vec3(cie.WhiteXYZ(c))
}

func checkChroma(c vec.Vec2) bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y) &&
		!math.IsInf(c.X, 0) && !math.IsInf(c.Y, 0) && c.Y != 0
}

// DeriveMatrices computes the conversion matrices of an RGB space from the
// chromaticities of its primaries and of its white point.  The returned
// toXYZ maps linear RGB to XYZ, such that RGB (1, 1, 1) maps to the white
// point with Y = 1.  toRGB is the inverse of toXYZ.
func DeriveMatrices(r, g, b, w vec.Vec2) (toXYZ, toRGB f64.Mat3, err error) {
	for _, c := range []vec.Vec2{r, g, b, w} {
		if !checkChroma(c) {
			return toXYZ, toRGB, fmt.Errorf("%w (%g, %g)", ErrInvalidChromaticity, c.X, c.Y)
		}
	}
	if !(w.Y > 0) {
		return toXYZ, toRGB, fmt.Errorf("%w: white point (%g, %g)", ErrInvalidChromaticity, w.X, w.Y)
	}

	P := mat3.FromColumns(primaryXYZ(r), primaryXYZ(g), primaryXYZ(b))
	if !mat3.Invertible(P) {
		return toXYZ, toRGB, ErrSingularPrimaries
	}
	// scale the primaries so that they add up to the white point
	S := mat3.Apply(mat3.Inv(P), primaryXYZ(w))
	toXYZ = mat3.Scale(P, S)
	if !mat3.Invertible(toXYZ) {
		return toXYZ, toRGB, ErrSingularPrimaries
	}
	toRGB = mat3.Inv(toXYZ)
	return toXYZ, toRGB, nil
}

// NewRGB returns a new RGB colour space.
// If transfer is nil, a pure power law with the given gamma is used.
func NewRGB(name string, r, g, b, w vec.Vec2, gamma float64, transfer cie.Transfer) (*Space, error) {
	if name == "" {
		return nil, &ConfigError{Err: errors.New("missing name")}
	}
	if transfer == nil {
		if !(gamma > 0) || math.IsInf(gamma, 0) {
			return nil, &ConfigError{Space: name, Err: fmt.Errorf("invalid gamma %g", gamma)}
		}
		transfer = cie.StandardGamma(gamma)
	}
	toXYZ, toRGB, err := DeriveMatrices(r, g, b, w)
	if err != nil {
		return nil, &ConfigError{Space: name, Err: err}
	}
	return &Space{
		Type:     RGB,
		Name:     name,
		Red:      r,
		Green:    g,
		Blue:     b,
		White:    w,
		ToRGB:    toRGB,
		ToXYZ:    toXYZ,
		Gamma:    gamma,
		Transfer: transfer,
	}, nil
}

// newCIE returns one of the device-independent spaces.
func newCIE(t Type, name string, w vec.Vec2) *Space {
	return &Space{
		Type:     t,
		Name:     name,
		White:    w,
		ToRGB:    mat3.Identity,
		ToXYZ:    mat3.Identity,
		Gamma:    1,
		Transfer: cie.Linear,
	}
}

// IsRGB reports whether s is an RGB space.
func (s *Space) IsRGB() bool {
	return s.Type == RGB
}

// WhiteXYZ returns the white point of s, normalised to Y = 1.
func (s *Space) WhiteXYZ() value.XYZ {
	return cie.WhiteXYZ(s.White)
}

// XYZToRGB converts XYZ to linear RGB.
// No clipping or gamut mapping is applied.
func (s *Space) XYZToRGB(c value.XYZ) value.RGB {
	return value.RGB(mat3.Apply(s.ToRGB, f64.Vec3(c)))
}

// RGBToXYZ converts linear RGB to XYZ.
func (s *Space) RGBToXYZ(c value.RGB) value.XYZ {
	return value.XYZ(mat3.Apply(s.ToXYZ, f64.Vec3(c)))
}

// Encode applies the transfer function to linear RGB values.
func (s *Space) Encode(c value.RGB) value.RGB {
	for i := range c {
		c[i] = s.Transfer.Encode(c[i])
	}
	return c
}

// Decode converts encoded RGB values back to linear RGB.
func (s *Space) Decode(c value.RGB) value.RGB {
	for i := range c {
		c[i] = s.Transfer.Decode(c[i])
	}
	return c
}

// FromXYZ returns the coordinates of c in the space s.  For RGB spaces
// these are the linear RGB values, for the CIE spaces the result is
// relative to the white point of s.
func (s *Space) FromXYZ(c value.XYZ) [3]float64 {
	white := s.WhiteXYZ()
	switch s.Type {
	case CIEXYZ:
		return c
	case CIExyY:
		xyY := cie.XYZToXYY(c, white)
		return [3]float64{xyY.Chroma.X, xyY.Chroma.Y, xyY.Y}
	case CIELab:
		lab := cie.XYZToLab(c, white)
		return [3]float64{lab.L, lab.A, lab.B}
	case CIELuv:
		luv := cie.XYZToLuv(c, white)
		return [3]float64{luv.L, luv.U, luv.V}
	default:
		return s.XYZToRGB(c)
	}
}

// ToXYZValue is the inverse of [Space.FromXYZ].
func (s *Space) ToXYZValue(v [3]float64) value.XYZ {
	white := s.WhiteXYZ()
	switch s.Type {
	case CIEXYZ:
		return v
	case CIExyY:
		return cie.XYYToXYZ(cie.XYY{Chroma: vec.Vec2{X: v[0], Y: v[1]}, Y: v[2]})
	case CIELab:
		return cie.LabToXYZ(cie.Lab{L: v[0], A: v[1], B: v[2]}, white)
	case CIELuv:
		return cie.LuvToXYZ(cie.Luv{L: v[0], U: v[1], V: v[2]}, white)
	default:
		return s.RGBToXYZ(v)
	}
}

func (s *Space) String() string {
	if s.Type != RGB {
		return fmt.Sprintf("%s (%s)", s.Name, s.Type)
	}
	return fmt.Sprintf("%s (RGB, %v, white %.4f %.4f)", s.Name, s.Transfer, s.White.X, s.White.Y)
}
