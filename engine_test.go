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


package spectra

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/icc"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/gamut"
	"seehuhn.de/go/spectra/isr"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

func newEngine(t *testing.T, opt *Options) *Engine {
	t.Helper()
	e, err := New(opt)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestDefaults(t *testing.T) {
	e := newEngine(t, nil)

	if k := e.Representation().Kind(); k != isr.Spectrum46 {
		t.Errorf("representation: %s", k)
	}
	if e.Channels() != 46 {
		t.Errorf("channels: %d", e.Channels())
	}
	if w := e.Whitepoint(); w.Name != "D50" {
		t.Errorf("white point: %s", w)
	}
	if s := e.DefaultRGB(); s.Name != space.NameSRGB {
		t.Errorf("default RGB: %s", s.Name)
	}
	if m := e.Gamut().Config().Method; m != gamut.Linear {
		t.Errorf("gamut method: %s", m)
	}
	if e.WhitepointChanges() != 0 {
		t.Errorf("white point changes: %d", e.WhitepointChanges())
	}
}

func TestOptions(t *testing.T) {
	cfg := gamut.DefaultConfig()
	cfg.Method = gamut.Cusp
	e := newEngine(t, &Options{
		Representation: isr.RGB,
		Whitepoint:     "d65",
		DefaultRGB:     "display p3",
		Gamut:          &cfg,
	})

	if k := e.Representation().Kind(); k != isr.RGB {
		t.Errorf("representation: %s", k)
	}
	if w := e.Whitepoint(); w != cie.WhiteD65 {
		t.Errorf("white point: %s", w)
	}
	if s := e.DefaultRGB(); s.Name != space.NameDisplayP3 {
		t.Errorf("default RGB: %s", s.Name)
	}
	if m := e.Gamut().Config().Method; m != gamut.Cusp {
		t.Errorf("gamut method: %s", m)
	}
}

func TestInvalidOptions(t *testing.T) {
	badGamut := gamut.DefaultConfig()
	badGamut.Depth = -1

	cases := []struct {
		opt  *Options
		want error
	}{
		{&Options{Whitepoint: "D42"}, cie.ErrUnknownWhitepoint},
		{&Options{DefaultRGB: "no such space"}, space.ErrUnknownSpace},
		{&Options{DefaultRGB: space.NameCIELab}, space.ErrUnsupportedColourSpace},
		{&Options{Representation: isr.Kind(42)}, isr.ErrUnknownKind},
	}
	for i, c := range cases {
		_, err := New(c.opt)
		if !errors.Is(err, c.want) {
			t.Errorf("%d: got %v, want %v", i, err, c.want)
		}
	}

	if _, err := New(&Options{Gamut: &badGamut}); err == nil {
		t.Error("invalid gamut configuration accepted")
	}
}

func TestClose(t *testing.T) {
	e, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close: %v", err)
	}
	if _, err := e.NewSpectrum(); !errors.Is(err, ErrClosed) {
		t.Errorf("NewSpectrum: %v", err)
	}
	if err := e.SetWhitepoint("D65"); !errors.Is(err, ErrClosed) {
		t.Errorf("SetWhitepoint: %v", err)
	}
	if _, err := e.XYZToUnitRGBWithGamma(value.XYZ{}); !errors.Is(err, ErrClosed) {
		t.Errorf("XYZToUnitRGBWithGamma: %v", err)
	}
}

func TestWhitepoint(t *testing.T) {
	e := newEngine(t, nil)

	if err := e.SetWhitepoint("D65"); err != nil {
		t.Fatal(err)
	}
	if err := e.SetWhitepointCCT(5000); err != nil {
		t.Fatal(err)
	}
	if w := e.Whitepoint(); w.Name != "5000K" {
		t.Errorf("white point: %s", w)
	}
	if err := e.SetWhitepointXY(vec.Vec2{X: 0.3, Y: 0.3}); err != nil {
		t.Fatal(err)
	}
	if e.WhitepointChanges() != 3 {
		t.Errorf("white point changes: %d", e.WhitepointChanges())
	}

	if err := e.SetWhitepointXY(vec.Vec2{X: 0.3, Y: 0}); !errors.Is(err, cie.ErrDegenerateChromaticity) {
		t.Errorf("degenerate white point: %v", err)
	}
	if err := e.SetWhitepoint("nowhere"); err == nil {
		t.Error("unknown white point accepted")
	}
	if e.WhitepointChanges() != 3 {
		t.Errorf("failed changes were counted: %d", e.WhitepointChanges())
	}
}

func TestLab(t *testing.T) {
	e := newEngine(t, &Options{Whitepoint: "D65"})

	white := cie.WhiteD65.XYZ()
	lab := e.XYZToLab(white)
	if d := cmp.Diff(cie.Lab{L: 100}, lab, cmpopts.EquateApprox(0, 1e-9)); d != "" {
		t.Error(d)
	}

	c := value.XYZ{0.2, 0.3, 0.1}
	back := e.LabToXYZ(e.XYZToLab(c))
	if !value.Equal(c, back, 1e-12) {
		t.Errorf("round trip: %v != %v", back, c)
	}
	if d := e.DeltaE2000(c, c); d != 0 {
		t.Errorf("ΔE2000(c, c) = %g", d)
	}
	if d := e.DeltaE2000(c, white); !(d > 10) {
		t.Errorf("ΔE2000(c, white) = %g", d)
	}
}

func TestSetRepresentation(t *testing.T) {
	e := newEngine(t, nil)

	if err := e.SetRepresentation(isr.RGB); err != nil {
		t.Fatal(err)
	}
	if e.Channels() != 3 {
		t.Errorf("channels: %d", e.Channels())
	}
	if e.Unit().Sum() != 3 || e.Zero().Sum() != 0 {
		t.Errorf("constants not updated: %s %s", e.Zero(), e.Unit())
	}
	if err := e.SetRepresentation(isr.Kind(0)); !errors.Is(err, isr.ErrUnknownKind) {
		t.Errorf("invalid kind: %v", err)
	}
	if e.Representation().Kind() != isr.RGB {
		t.Error("failed switch changed the representation")
	}
}

func TestSetDefaultRGB(t *testing.T) {
	e := newEngine(t, nil)

	if err := e.SetDefaultRGB(space.NameRec2020); err != nil {
		t.Fatal(err)
	}
	if e.DefaultRGB().Name != space.NameRec2020 {
		t.Errorf("default RGB: %s", e.DefaultRGB().Name)
	}
	if err := e.SetDefaultRGB(space.NameCIEXYZ); !errors.Is(err, space.ErrUnsupportedColourSpace) {
		t.Errorf("non-RGB default: %v", err)
	}
	if e.DefaultRGB().Name != space.NameRec2020 {
		t.Error("failed change modified the default RGB space")
	}
}

// TestWhiteToDisplay converts the D65 white to sRGB with clipping.
func TestWhiteToDisplay(t *testing.T) {
	cfg := gamut.DefaultConfig()
	cfg.Method = gamut.Clip
	e := newEngine(t, &Options{Gamut: &cfg})

	rgb, err := e.XYZToUnitRGBWithGamma(value.XYZ{0.9505, 1.0000, 1.0888})
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(rgb, value.RGB{1, 1, 1}, 1e-3) {
		t.Errorf("got %v", rgb)
	}
}

func TestSpectrumToDisplay(t *testing.T) {
	buf := &bytes.Buffer{}
	e := newEngine(t, &Options{
		Representation: isr.RGB,
		Logger:         slog.New(slog.NewTextHandler(buf, nil)),
	})

	x, err := e.NewSpectrum()
	if err != nil {
		t.Fatal(err)
	}
	defer x.Release()

	x.SetRGB(value.RGB{0.2, 0.2, 0.2}, e.DefaultRGB())
	rgb, err := e.SpectrumToDisplay(x)
	if err != nil {
		t.Fatal(err)
	}
	want := cie.SRGB.Encode(0.2)
	if !value.Equal(rgb, value.RGB{want, want, want}, 1e-6) {
		t.Errorf("got %v, want %g", rgb, want)
	}

	x.SetChannel(1, math.NaN())
	if _, err := e.SpectrumToDisplay(x); err == nil {
		t.Error("NaN spectrum accepted")
	}
	if !strings.Contains(buf.String(), "invalid spectrum") {
		t.Errorf("no warning logged: %q", buf.String())
	}
}

func TestImportICC(t *testing.T) {
	e := newEngine(t, nil)
	n := e.Spaces().Len()

	s, err := e.ImportICC("imported sRGB", icc.SRGBv4Profile)
	if err != nil {
		t.Fatal(err)
	}
	if e.Spaces().Len() != n+1 {
		t.Errorf("registry has %d spaces", e.Spaces().Len())
	}
	if err := e.SetDefaultRGB("Imported SRGB"); err != nil {
		t.Fatal(err)
	}
	if mat := s.ToXYZ; math.Abs(mat[3]-e.Spaces().Must(space.NameSRGB).ToXYZ[3]) > 5e-3 {
		t.Errorf("imported matrix %v", mat)
	}

	_, err = e.ImportICC("imported sRGB", icc.SRGBv4Profile)
	if !errors.Is(err, space.ErrDuplicateSpace) {
		t.Errorf("duplicate import: %v", err)
	}
	_, err = e.ImportICC("garbage", []byte("not a profile"))
	if err == nil {
		t.Error("garbage profile accepted")
	}
}

func TestColourManagement(t *testing.T) {
	plain := newEngine(t, nil)
	if plain.CMS() != nil {
		t.Error("colour management active without being requested")
	}
	e := newEngine(t, &Options{ColourManagement: true})
	if e.CMS() == nil {
		t.Fatal("no colour management for sRGB")
	}

	s := e.DefaultRGB()
	for _, lin := range []value.RGB{{0.2, 0.5, 0.7}, {0.9, 0.1, 0.3}, {0.5, 0.5, 0.5}} {
		xyz := s.RGBToXYZ(lin)
		want, err := plain.XYZToUnitRGBWithGamma(xyz)
		if err != nil {
			t.Fatal(err)
		}
		got, err := e.XYZToUnitRGBWithGamma(xyz)
		if err != nil {
			t.Fatal(err)
		}
		if !value.Equal(got, want, 2e-3) {
			t.Errorf("%v: colour management gave %v, built-in path %v", lin, got, want)
		}
	}

	// spaces without a profile fall back to the transfer function
	if err := e.SetDefaultRGB(space.NameRec2020); err != nil {
		t.Fatal(err)
	}
	if e.CMS() != nil {
		t.Error("colour management active for a space without profile")
	}
}
