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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/image/math/f64"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/internal/mat3"
	"seehuhn.de/go/spectra/value"
)

// tagChromaticAdaptation is the "chad" tag, which holds the matrix used
// to adapt the colorants to the D50 profile connection space.
const tagChromaticAdaptation icc.TagType = 0x63686164

var (
	errMalformedTag = errors.New("malformed ICC tag")
	errSingularChad = errors.New("chad: singular matrix")
)

var pcsWhite = value.XYZ{0.9642, 1, 0.8249}

// FromICC constructs an RGB colour space from a matrix/TRC ICC profile.
//
// Profiles for other device spaces give an error wrapping
// [ErrUnsupportedColourSpace].  RGB profiles without colorant and tone
// reproduction curve tags give an error wrapping [ErrNotMatrixShaper].
// The profile data is kept in the Profile field of the result.
func FromICC(name string, data []byte) (*Space, error) {
	p, err := icc.Decode(data)
	if err != nil {
		return nil, &ConfigError{Space: name, Err: err}
	}
	if p.ColorSpace != icc.RGBSpace {
		return nil, &ConfigError{
			Space: name,
			Err:   fmt.Errorf("%w %v", ErrUnsupportedColourSpace, p.ColorSpace),
		}
	}

	colorants := []icc.TagType{icc.RedMatrixColumn, icc.GreenMatrixColumn, icc.BlueMatrixColumn}
	curves := []icc.TagType{icc.RedTRC, icc.GreenTRC, icc.BlueTRC}
	for _, tag := range append(colorants, curves...) {
		if _, ok := p.TagData[tag]; !ok {
			return nil, &ConfigError{
				Space: name,
				Err:   fmt.Errorf("%w: missing %v tag", ErrNotMatrixShaper, tag),
			}
		}
	}

	var cols [3]f64.Vec3
	for i, tag := range colorants {
		cols[i], err = decodeXYZ(p.TagData[tag])
		if err != nil {
			return nil, &ConfigError{Space: name, Err: fmt.Errorf("%v: %w", tag, err)}
		}
	}

	// The colorants are relative to the D50 profile connection space.
	// Undo the chromatic adaptation to recover the device primaries.
	A, err := pcsAdaptation(p)
	if err != nil {
		return nil, &ConfigError{Space: name, Err: err}
	}
	M := mat3.Mul(mat3.Inv(A), mat3.FromColumns(cols[0], cols[1], cols[2]))

	trc := p.TagData[icc.RedTRC]
	if !bytes.Equal(trc, p.TagData[icc.GreenTRC]) || !bytes.Equal(trc, p.TagData[icc.BlueTRC]) {
		return nil, &ConfigError{
			Space: name,
			Err:   fmt.Errorf("%w: per-channel tone curves", ErrNotMatrixShaper),
		}
	}
	curve, err := icc.DecodeCurve(trc)
	if err != nil {
		return nil, &ConfigError{Space: name, Err: fmt.Errorf("%v: %w", icc.RedTRC, err)}
	}
	transfer, gamma, err := curveTransfer(curve)
	if err != nil {
		return nil, &ConfigError{Space: name, Err: fmt.Errorf("%v: %w", icc.RedTRC, err)}
	}

	white := mat3.Apply(M, f64.Vec3{1, 1, 1})
	s, err := NewRGB(name,
		cie.Chromaticity(value.XYZ(mat3.Column(M, 0))),
		cie.Chromaticity(value.XYZ(mat3.Column(M, 1))),
		cie.Chromaticity(value.XYZ(mat3.Column(M, 2))),
		cie.Chromaticity(value.XYZ(white)),
		gamma, transfer)
	if err != nil {
		return nil, err
	}
	s.Profile = data
	return s, nil
}

// pcsAdaptation returns the matrix which maps colours relative to the
// white point of the device to the D50 profile connection space of p.
func pcsAdaptation(p *icc.Profile) (f64.Mat3, error) {
	if data, ok := p.TagData[tagChromaticAdaptation]; ok {
		A, err := decodeSF32Matrix(data)
		if err != nil {
			return A, fmt.Errorf("chad: %w", err)
		}
		if !mat3.Invertible(A) {
			return A, errSingularChad
		}
		return A, nil
	}
	if data, ok := p.TagData[icc.MediaWhitePoint]; ok {
		w, err := decodeXYZ(data)
		if err != nil {
			return mat3.Identity, fmt.Errorf("wtpt: %w", err)
		}
		if value.XYZ(w) != pcsWhite && w[1] > 0 {
			return cie.BradfordMatrix(value.XYZ(w), pcsWhite), nil
		}
	}
	return mat3.Identity, nil
}

// The XYZType and s15Fixed16ArrayType payloads are read directly; the icc
// package only decodes curves and transforms.

func s15Fixed16(b []byte) float64 {
	return float64(int32(binary.BigEndian.Uint32(b))) / 65536
}

func decodeXYZ(data []byte) (f64.Vec3, error) {
	if len(data) < 20 || string(data[:4]) != "XYZ " {
		return f64.Vec3{}, errMalformedTag
	}
	return f64.Vec3{
		s15Fixed16(data[8:]),
		s15Fixed16(data[12:]),
		s15Fixed16(data[16:]),
	}, nil
}

func decodeSF32Matrix(data []byte) (f64.Mat3, error) {
	var M f64.Mat3
	if len(data) < 8+9*4 || string(data[:4]) != "sf32" {
		return M, errMalformedTag
	}
	for i := range M {
		M[i] = s15Fixed16(data[8+4*i:])
	}
	return M, nil
}

// curveTransfer converts a tone reproduction curve into a transfer
// function.  Curves which match a power law or the sRGB curve are
// replaced by the corresponding closed form.
func curveTransfer(c *icc.Curve) (cie.Transfer, float64, error) {
	switch {
	case c.Table == nil && c.Params == nil:
		if !(c.Gamma > 0) {
			return nil, 0, errMalformedTag
		}
		return cie.StandardGamma(c.Gamma), c.Gamma, nil
	case c.Table == nil && c.FuncType == 0:
		if !(c.Params[0] > 0) {
			return nil, 0, errMalformedTag
		}
		return cie.StandardGamma(c.Params[0]), c.Params[0], nil
	case c.Table != nil && len(c.Table) < 2:
		return nil, 0, errMalformedTag
	}

	t := newToneCurve(c)
	if t.matches(cie.SRGB) {
		return cie.SRGB, 2.2, nil
	}
	return t, t.nominalGamma(), nil
}

// toneCurve adapts a sampled or parametric ICC curve to the
// [cie.Transfer] interface.  Negative values are mapped by odd symmetry,
// values above one are clamped.
type toneCurve struct {
	c *icc.Curve
}

func newToneCurve(c *icc.Curve) *toneCurve {
	// Invert fills a cache on first use; after this call the curve is
	// only read, and can be shared between goroutines.
	c.Invert(0.5)
	return &toneCurve{c: c}
}

// Decode implements the [cie.Transfer] interface.
func (t *toneCurve) Decode(v float64) float64 {
	if v < 0 {
		return -t.Decode(-v)
	}
	if !(v > 0) {
		return t.c.Evaluate(0)
	}
	return t.c.Evaluate(v)
}

// Encode implements the [cie.Transfer] interface.
func (t *toneCurve) Encode(v float64) float64 {
	if v < 0 {
		return -t.Encode(-v)
	}
	if !(v > 0) {
		return t.c.Invert(0)
	}
	return t.c.Invert(v)
}

// matches reports whether t agrees with ref to within the precision of an
// 8-bit encoding.
func (t *toneCurve) matches(ref cie.Transfer) bool {
	for i := range 256 {
		v := float64(i) / 255
		if math.Abs(t.Decode(v)-ref.Decode(v)) > 0.5/255 {
			return false
		}
	}
	return true
}

// nominalGamma returns the exponent of the power law which agrees with t
// at mid-grey.
func (t *toneCurve) nominalGamma() float64 {
	y := t.Decode(0.5)
	if !(y > 0 && y < 1) {
		return 1
	}
	return math.Log(y) / math.Log(0.5)
}

func (t *toneCurve) String() string {
	if t.c.Table != nil {
		return fmt.Sprintf("ICC curve (%d samples)", len(t.c.Table))
	}
	return fmt.Sprintf("ICC parametric curve type %d", t.c.FuncType)
}
