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
	"encoding/binary"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/internal/mat3"
	"seehuhn.de/go/spectra/value"
)

func TestBuiltinMatrices(t *testing.T) {
	for _, s := range Builtin() {
		t.Run(s.Name, func(t *testing.T) {
			if d := mat3.MaxAbsDiff(mat3.Mul(s.ToRGB, s.ToXYZ), mat3.Identity); d > 1e-9 {
				t.Errorf("ToRGB·ToXYZ differs from the identity by %g", d)
			}
			if !s.IsRGB() {
				return
			}
			white := s.RGBToXYZ(value.RGB{1, 1, 1})
			if !value.Equal(white, s.WhiteXYZ(), 1e-6) {
				t.Errorf("RGB white maps to %v, want %v", white, s.WhiteXYZ())
			}
		})
	}
}

func TestDeriveSRGB(t *testing.T) {
	toXYZ, _, err := DeriveMatrices(
		vec.Vec2{X: 0.64, Y: 0.33},
		vec.Vec2{X: 0.30, Y: 0.60},
		vec.Vec2{X: 0.15, Y: 0.06},
		cie.WhiteD65.XY)
	if err != nil {
		t.Fatal(err)
	}
	want := f64.Mat3{
		0.4124, 0.3576, 0.1805,
		0.2126, 0.7152, 0.0722,
		0.0193, 0.1192, 0.9505,
	}
	if d := mat3.MaxAbsDiff(toXYZ, want); d > 1e-4 {
		t.Errorf("sRGB matrix off by %g:\n%v", d, toXYZ)
	}
}

func TestDeriveACES(t *testing.T) {
	r := NewRegistry()
	s := r.Must(NameACESAP0)
	want := f64.Mat3{
		0.9525523959, 0.0000000000, 0.0000936786,
		0.3439664498, 0.7281660966, -0.0721325464,
		0.0000000000, 0.0000000000, 1.0088251844,
	}
	if d := mat3.MaxAbsDiff(s.ToXYZ, want); d > 1e-9 {
		t.Errorf("AP0 matrix off by %g", d)
	}
}

func TestNewRGBInvalid(t *testing.T) {
	r := vec.Vec2{X: 0.64, Y: 0.33}
	g := vec.Vec2{X: 0.30, Y: 0.60}
	b := vec.Vec2{X: 0.15, Y: 0.06}
	w := cie.WhiteD65.XY

	cases := []struct {
		name       string
		r, g, b, w vec.Vec2
		gamma      float64
		want       error
	}{
		{"zero-y", vec.Vec2{X: 0.5, Y: 0}, g, b, w, 2.2, ErrInvalidChromaticity},
		{"nan", r, vec.Vec2{X: math.NaN(), Y: 0.5}, b, w, 2.2, ErrInvalidChromaticity},
		{"collinear", r, vec.Vec2{X: 0.47, Y: 0.23}, vec.Vec2{X: 0.30, Y: 0.13}, w, 2.2, ErrSingularPrimaries},
		{"bad-white", r, g, b, vec.Vec2{X: 0.3, Y: -0.1}, 2.2, ErrInvalidChromaticity},
	}
	for _, c := range cases {
		_, err := NewRGB(c.name, c.r, c.g, c.b, c.w, c.gamma, nil)
		if !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Space != c.name {
			t.Errorf("%s: expected ConfigError, got %T", c.name, err)
		}
	}

	if _, err := NewRGB("no-gamma", r, g, b, w, 0, nil); err == nil {
		t.Error("zero gamma accepted")
	}
}

func TestEncodeDecode(t *testing.T) {
	s := NewRegistry().Must(NameSRGB)
	c := value.RGB{0, 0.002, 0.5}
	enc := s.Encode(c)
	if enc[1] != 12.92*0.002 {
		t.Errorf("linear segment not used: %g", enc[1])
	}
	if got := s.Decode(enc); !value.Equal(got, c, 1e-12) {
		t.Errorf("round trip: %v -> %v", c, got)
	}
}

func TestFromXYZ(t *testing.T) {
	reg := NewRegistry()
	c := value.XYZ{0.3, 0.4, 0.2}
	for _, name := range []string{NameCIEXYZ, NameCIExyY, NameCIELab, NameCIELuv, NameSRGB, NameAdobeRGB} {
		s := reg.Must(name)
		got := s.ToXYZValue(s.FromXYZ(c))
		if !value.Equal(got, c, 1e-9) {
			t.Errorf("%s: %v -> %v", name, c, got)
		}
	}

	lab := reg.Must(NameCIELab).FromXYZ(cie.WhiteD50.XYZ())
	if d := cmp.Diff([3]float64{100, 0, 0}, lab, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 10 {
		t.Errorf("expected 10 built-in spaces, got %d", r.Len())
	}

	s, err := r.Lookup("SRGB")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != NameSRGB {
		t.Errorf("got %q", s.Name)
	}
	if len(s.Profile) == 0 {
		t.Error("sRGB has no embedded profile")
	}

	_, err = r.Lookup("ProPhoto")
	if !errors.Is(err, ErrUnknownSpace) {
		t.Errorf("expected ErrUnknownSpace, got %v", err)
	}

	custom, err := NewRGB("Wide", vec.Vec2{X: 0.7, Y: 0.3}, vec.Vec2{X: 0.1, Y: 0.8},
		vec.Vec2{X: 0.15, Y: 0.05}, cie.WhiteD50.XY, 2.2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Register(custom); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(custom); !errors.Is(err, ErrDuplicateSpace) {
		t.Errorf("expected ErrDuplicateSpace, got %v", err)
	}
	custom.Name = "wide"
	if err := r.Register(custom); !errors.Is(err, ErrDuplicateSpace) {
		t.Errorf("case-folded duplicate: expected ErrDuplicateSpace, got %v", err)
	}

	names := r.Names()
	if len(names) != 11 {
		t.Fatalf("expected 11 names, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("names not sorted: %q > %q", names[i-1], names[i])
		}
	}

	// the registry keeps its own copy
	got := r.Must("WIDE")
	if got.Name != "Wide" {
		t.Errorf("stored space was modified: %q", got.Name)
	}
}

func TestFromICCSRGB(t *testing.T) {
	for i, profile := range [][]byte{icc.SRGBv4Profile, icc.SRGBv2Profile} {
		s, err := FromICC("imported", profile)
		if err != nil {
			t.Fatalf("profile %d: %v", i, err)
		}
		want := NewRegistry().Must(NameSRGB)
		pairs := []struct {
			name      string
			got, want vec.Vec2
		}{
			{"red", s.Red, want.Red},
			{"green", s.Green, want.Green},
			{"blue", s.Blue, want.Blue},
			{"white", s.White, want.White},
		}
		for _, p := range pairs {
			if math.Abs(p.got.X-p.want.X) > 5e-3 || math.Abs(p.got.Y-p.want.Y) > 5e-3 {
				t.Errorf("profile %d: %s is %v, want %v", i, p.name, p.got, p.want)
			}
		}
		for _, v := range []float64{0.01, 0.2, 0.5, 0.9} {
			if d := s.Transfer.Decode(v) - cie.SRGB.Decode(v); math.Abs(d) > 5e-3 {
				t.Errorf("profile %d: transfer differs by %g at %g", i, d, v)
			}
		}
		if d := mat3.MaxAbsDiff(mat3.Mul(s.ToRGB, s.ToXYZ), mat3.Identity); d > 1e-9 {
			t.Errorf("profile %d: inconsistent matrices", i)
		}
	}
}

// patchProfile returns a copy of the sRGB profile with the profile ID
// cleared, so that modifications do not invalidate it.
func patchProfile() []byte {
	data := append([]byte(nil), icc.SRGBv4Profile...)
	for i := 84; i < 100; i++ {
		data[i] = 0
	}
	return data
}

func TestFromICCUnsupported(t *testing.T) {
	data := patchProfile()
	copy(data[16:20], "GRAY")
	_, err := FromICC("grey", data)
	if !errors.Is(err, ErrUnsupportedColourSpace) {
		t.Errorf("expected ErrUnsupportedColourSpace, got %v", err)
	}

	data = patchProfile()
	n := int(binary.BigEndian.Uint32(data[128:132]))
	for i := range n {
		entry := data[132+12*i:]
		if string(entry[:4]) == "rTRC" {
			copy(entry[:4], "xTRC")
		}
	}
	_, err = FromICC("no-trc", data)
	if !errors.Is(err, ErrNotMatrixShaper) {
		t.Errorf("expected ErrNotMatrixShaper, got %v", err)
	}

	if _, err := FromICC("garbage", []byte("not a profile")); err == nil {
		t.Error("garbage accepted")
	}
}

func TestToneCurve(t *testing.T) {
	// a sampled curve which follows a power law with exponent 1.8
	table := make([]uint16, 1024)
	for i := range table {
		table[i] = uint16(math.Round(65535 * math.Pow(float64(i)/1023, 1.8)))
	}
	tr, gamma, err := curveTransfer(&icc.Curve{Table: table})
	if err != nil {
		t.Fatal(err)
	}
	if tr == cie.SRGB {
		t.Error("gamma 1.8 curve matches sRGB")
	}
	if math.Abs(gamma-1.8) > 1e-3 {
		t.Errorf("nominal gamma %g", gamma)
	}
	for _, v := range []float64{0, 0.1, 0.5, 1} {
		if got := tr.Decode(tr.Encode(v)); math.Abs(got-v) > 2e-3 {
			t.Errorf("round trip %g -> %g", v, got)
		}
	}
	if got := tr.Decode(math.NaN()); got != tr.Decode(0) {
		t.Errorf("Decode(NaN) = %g", got)
	}
	if got := tr.Encode(math.NaN()); got != tr.Encode(0) {
		t.Errorf("Encode(NaN) = %g", got)
	}
	if got, want := tr.Decode(-0.5), -tr.Decode(0.5); got != want {
		t.Errorf("Decode(-0.5) = %g, want %g", got, want)
	}

	// parametric sRGB curve
	srgbCurve := &icc.Curve{
		FuncType: 3,
		Params:   []float64{2.4, 1 / 1.055, 0.055 / 1.055, 1 / 12.92, 0.04045},
	}
	if tr, _, err := curveTransfer(srgbCurve); err != nil || tr != cie.SRGB {
		t.Errorf("parametric sRGB curve not recognised: %v, %v", tr, err)
	}

	// pure power laws
	for _, c := range []*icc.Curve{{Gamma: 2.2}, {FuncType: 0, Params: []float64{2.2}}} {
		tr, gamma, err := curveTransfer(c)
		if err != nil || tr != cie.StandardGamma(2.2) || gamma != 2.2 {
			t.Errorf("power law gave %v, %g, %v", tr, gamma, err)
		}
	}
	if _, _, err := curveTransfer(&icc.Curve{}); err == nil {
		t.Error("empty curve accepted")
	}
}

// TestCMSMatchesMatrix checks that executing the ICC profile gives the
// same result as the matrix and transfer function of the space.
func TestCMSMatchesMatrix(t *testing.T) {
	for _, s := range []*Space{
		NewRegistry().Must(NameSRGB),
		mustFromICC(t, icc.SRGBv4Profile),
	} {
		cms, err := NewCMS(s)
		if err != nil {
			t.Fatal(err)
		}
		rng := rand.New(rand.NewSource(1))
		for range 100 {
			lin := value.RGB{
				0.02 + 0.96*rng.Float64(),
				0.02 + 0.96*rng.Float64(),
				0.02 + 0.96*rng.Float64(),
			}
			xyz := s.RGBToXYZ(lin)
			want := s.Encode(s.XYZToRGB(xyz))
			got := cms.FromXYZ(xyz)
			if !value.Equal(got, want, 2e-3) {
				t.Errorf("%s: %v gave %v, want %v", s.Name, lin, got, want)
			}
			if got := cms.FromRGB(lin); !value.Equal(got, want, 2e-3) {
				t.Errorf("%s: FromRGB(%v) = %v, want %v", s.Name, lin, got, want)
			}
		}
	}

	if _, err := NewCMS(NewRegistry().Must(NameRec2020)); !errors.Is(err, ErrNoProfile) {
		t.Errorf("expected ErrNoProfile, got %v", err)
	}
	if _, err := NewCMS(NewRegistry().Must(NameCIELab)); !errors.Is(err, ErrUnsupportedColourSpace) {
		t.Errorf("expected ErrUnsupportedColourSpace, got %v", err)
	}
}

func mustFromICC(t *testing.T, data []byte) *Space {
	t.Helper()
	s, err := FromICC("imported", data)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
