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


package isr

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/sampled"
	"seehuhn.de/go/spectra/value"
)

func mustRep(t *testing.T, k Kind) Representation {
	t.Helper()
	r, err := For(k)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func mustPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: no panic", name)
		}
	}()
	f()
}

func randomSpectrum(r Representation, rng *rand.Rand) *Spectrum {
	z := r.New()
	for i := range z.Channels() {
		z.SetChannel(i, rng.Float64()*2-0.5)
	}
	return z
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"Grey", Grey},
		{"rgb", RGB},
		{"XYZ", XYZ},
		{"spectrum46", Spectrum46},
		{"S500", Spectrum500},
		{"s8", Spectrum8},
	}
	for _, c := range cases {
		got, err := ParseKind(c.in)
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
		} else if got != c.want {
			t.Errorf("%q: got %s, want %s", c.in, got, c.want)
		}
	}
	for _, bad := range []string{"", "S", "Spectrum", "S47", "CMYK"} {
		if _, err := ParseKind(bad); !errors.Is(err, ErrUnknownKind) {
			t.Errorf("%q: got %v", bad, err)
		}
	}
	if _, err := For(Kind(0)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("For(0): got %v", err)
	}
}

func TestChannels(t *testing.T) {
	want := map[Kind]int{
		Grey: 1, RGB: 3, XYZ: 3,
		Spectrum8: 8, Spectrum11: 11, Spectrum18: 18, Spectrum46: 46, Spectrum500: 500,
	}
	for _, k := range Kinds() {
		r := mustRep(t, k)
		if r.Kind() != k {
			t.Errorf("%s: wrong kind %s", k, r.Kind())
		}
		if r.Channels() != want[k] {
			t.Errorf("%s: %d channels", k, r.Channels())
		}
		if (r.Layout() != nil) != (k >= Spectrum8) {
			t.Errorf("%s: unexpected layout %v", k, r.Layout())
		}
	}
}

// TestIdentities checks the algebraic identities of the operation set for
// every representation.
func TestIdentities(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, k := range Kinds() {
		r := mustRep(t, k)
		for range 20 {
			a := randomSpectrum(r, rng)
			z := r.New()

			if !z.Add(a, r.Zero()).Equal(a, 0) {
				t.Errorf("%s: a+0 != a", k)
			}
			if !z.Mul(a, r.Unit()).Equal(a, 0) {
				t.Errorf("%s: a*1 != a", k)
			}
			once := r.New().Clamp(a, 0, 1)
			if !z.Clamp(once, 0, 1).Equal(once, 0) {
				t.Errorf("%s: clamp is not idempotent", k)
			}
			if !z.Sub(a, a).Equal(r.Zero(), 0) {
				t.Errorf("%s: a-a != 0", k)
			}
			if !z.ScaleAdd(2, a, a).MulScalar(z, 1.0/3).EqualRel(a, 1e-15) {
				t.Errorf("%s: (2a+a)/3 != a", k)
			}

			z.Release()
			once.Release()
			a.Release()
		}
	}
}

func TestReductions(t *testing.T) {
	r := mustRep(t, RGB)
	x := r.New().SetChannel(0, -1).SetChannel(1, 2).SetChannel(2, 5)
	defer x.Release()

	got := []float64{x.Max(), x.Min(), x.Sum(), x.Avg(), x.L1Norm(), x.LInfNorm()}
	want := []float64{5, -1, 6, 2, 8, 5}
	if d := cmp.Diff(want, got); d != "" {
		t.Error(d)
	}
	if math.Abs(x.L2Norm()-math.Sqrt(30)) > 1e-12 {
		t.Errorf("L2Norm: %g", x.L2Norm())
	}
}

func TestSpectralOnly(t *testing.T) {
	for _, k := range []Kind{Grey, RGB, XYZ} {
		r := mustRep(t, k)
		x := r.New()
		if _, err := x.Convolve(r.Unit()); !errors.Is(err, value.ErrNotSpectral) {
			t.Errorf("%s: convolve gave %v", k, err)
		}
		if _, err := x.ValueAt(555); !errors.Is(err, value.ErrNotSpectral) {
			t.Errorf("%s: ValueAt gave %v", k, err)
		}
		if err := x.SetSampleAt(555, 1); !errors.Is(err, value.ErrNotSpectral) {
			t.Errorf("%s: SetSampleAt gave %v", k, err)
		}
		if _, err := x.ToPSS(); !errors.Is(err, value.ErrNotSpectral) {
			t.Errorf("%s: ToPSS gave %v", k, err)
		}
		x.Release()
	}

	r := mustRep(t, Spectrum46)
	got, err := r.Unit().Convolve(r.Unit())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-460) > 1e-9 {
		t.Errorf("convolve of unit spectra: %g", got)
	}

	x := r.New()
	if err := x.SetSampleAt(552, 2); err != nil {
		t.Fatal(err)
	}
	if math.Abs(x.Sum()-2) > 1e-12 {
		t.Errorf("sample sum: %g", x.Sum())
	}
}

func TestLifecycle(t *testing.T) {
	r := mustRep(t, Spectrum18)
	other := mustRep(t, RGB)

	x := r.New().SetFloat(3)
	x.Release()
	mustPanic(t, "double release", x.Release)
	mustPanic(t, "use after release", func() { x.Sum() })

	y := r.New()
	if !y.Equal(r.Zero(), 0) {
		t.Error("recycled spectrum is not zero")
	}

	z := other.New()
	mustPanic(t, "mixing representations", func() { y.Add(y, z) })
	mustPanic(t, "modifying Zero", func() { r.Zero().SetFloat(1) })
	mustPanic(t, "releasing Unit", r.Unit().Release)

	if r.Unit().Sum() != 18 {
		t.Errorf("Unit changed: %s", r.Unit())
	}
	if got := x.String(); got != "<released spectrum>" {
		t.Errorf("String of released spectrum: %q", got)
	}
}

// TestWhiteLuminance checks that RGB white maps to luminance 1 in every
// representation.
func TestWhiteLuminance(t *testing.T) {
	for _, k := range Kinds() {
		r := mustRep(t, k)
		x := r.New().SetRGB(value.RGB{1, 1, 1}, nil)
		if y := x.Grey(nil)[0]; math.Abs(y-1) > 0.01 {
			t.Errorf("%s: luminance of white is %g", k, y)
		}
		x.Release()
	}
}

func TestSmitsFlat(t *testing.T) {
	r := mustRep(t, Spectrum46)
	x := r.New().SetRGB(value.RGB{0.25, 0.25, 0.25}, nil)
	defer x.Release()

	want := r.New().SetFloat(0.25)
	defer want.Release()
	if !x.Equal(want, 1e-15) {
		t.Errorf("grey RGB gives non-flat spectrum %s", x)
	}
}

func TestSmitsRed(t *testing.T) {
	r := mustRep(t, Spectrum46)
	x := r.New().SetRGB(value.RGB{1, 0, 0}, nil)
	defer x.Release()

	xy := cie.Chromaticity(x.XYZ(nil))
	if !(xy.X > 0.5 && xy.X > xy.Y) {
		t.Errorf("red spectrum has chromaticity %v", xy)
	}
}

func TestGreyConversions(t *testing.T) {
	rgb := mustRep(t, RGB)
	x := rgb.New().SetGrey(value.Grey{0.25}, nil)
	defer x.Release()
	if got := x.RGB(nil); got != (value.RGB{0.25, 0.25, 0.25}) {
		t.Errorf("grey to RGB: %v", got)
	}
	if got := x.GreyAlpha(nil); math.Abs(got[0]-0.25) > 1e-6 || got[1] != 1 {
		t.Errorf("GreyAlpha: %v", got)
	}

	s := mustRep(t, Spectrum8)
	y := s.New().SetGreyAlpha(value.GreyAlpha{0.5, 0.1}, nil)
	defer y.Release()
	if !y.Equal(s.New().SetFloat(0.5), 0) {
		t.Errorf("grey to spectrum: %s", y)
	}
}

func TestXYZRoundTrip(t *testing.T) {
	c := value.XYZ{0.3, 0.4, 0.2}
	for _, k := range []Kind{RGB, XYZ} {
		r := mustRep(t, k)
		x := r.New().SetXYZA(c.WithAlpha(0.5), nil)
		got := x.XYZA(nil)
		if d := cmp.Diff(c.WithAlpha(1), got, cmpopts.EquateApprox(0, 1e-9)); d != "" {
			t.Errorf("%s: %s", k, d)
		}
		x.Release()
	}
}

func TestPacked(t *testing.T) {
	r := mustRep(t, RGB)
	x := FromPackedRGB(r.New(), value.PackedRGB[uint8]{255, 0, 51}, nil)
	defer x.Release()

	if d := cmp.Diff(value.RGB{1, 0, 0.2}, x.RGB(nil), cmpopts.EquateApprox(0, 1e-12)); d != "" {
		t.Error(d)
	}
	got := ToPackedRGBA[uint16](x, nil)
	want := value.PackedRGBA[uint16]{65535, 0, 13107, 65535}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	FromPackedRGBA(x, value.PackedRGBA[uint32]{0, 0, 0, 7}, nil)
	if got := ToPackedRGB[uint64](x, nil); got != (value.PackedRGB[uint64]{}) {
		t.Errorf("black: %v", got)
	}
}

func TestResample(t *testing.T) {
	r := mustRep(t, Spectrum46)
	x := r.New().SetFloat(0.5)
	defer x.Release()

	s18 := ToValue[value.Spectrum18](x, nil)
	if !value.Equal(s18, value.Fill[value.Spectrum18](0.5), 1e-12) {
		t.Errorf("resampled: %v", s18)
	}

	y := FromValue(r.New(), s18, nil)
	defer y.Release()
	for _, lambda := range []float64{400, 500, 600, 700} {
		v, err := y.ValueAt(lambda)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(v-0.5) > 1e-12 {
			t.Errorf("value at %g: %g", lambda, v)
		}
	}
}

func TestSetCurve(t *testing.T) {
	flat, err := sampled.NewPSS([]sampled.Point{{Lambda: 300, Value: 2}, {Lambda: 900, Value: 2}}, 2)
	if err != nil {
		t.Fatal(err)
	}

	r := mustRep(t, Spectrum46)
	x := r.New().SetCurve(flat, nil)
	defer x.Release()
	if !x.Equal(r.Unit(), 1e-12) {
		t.Errorf("flat curve gives %s", x)
	}

	y := mustRep(t, XYZ).New().SetCurve(flat, nil)
	defer y.Release()
	if got := y.Channel(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("luminance of flat curve: %g", got)
	}
}

func TestToPSS(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	r := mustRep(t, Spectrum18)
	x := r.New()
	defer x.Release()
	for i := range x.Channels() {
		x.SetChannel(i, rng.Float64())
	}

	pss, err := x.ToPSS()
	if err != nil {
		t.Fatal(err)
	}
	for lambda := 380.0; lambda < 739.5; lambda += 2.5 {
		want, _ := x.ValueAt(lambda)
		if got := pss.Eval(lambda); math.Abs(got-want) > 1e-12 {
			t.Errorf("%g nm: %g != %g", lambda, got, want)
		}
	}

	rss, err := x.ToRSS()
	if err != nil {
		t.Fatal(err)
	}
	if rss.Start != 390 || rss.Step != 20 || len(rss.Values) != 18 {
		t.Errorf("unexpected RSS layout %g %g %d", rss.Start, rss.Step, len(rss.Values))
	}

	// Projecting the curve back onto the same layout keeps the channel
	// means, which for a piecewise linear curve differ from the samples.
	// The total integral is preserved up to the end effects.
	y := r.New().SetCurve(pss, nil)
	defer y.Release()
	if math.Abs(y.Sum()-x.Sum()) > 0.1*x.Sum() {
		t.Errorf("integral changed: %g != %g", y.Sum(), x.Sum())
	}
}

func TestFormat(t *testing.T) {
	r := mustRep(t, RGB)
	if got := r.Unit().String(); got != "RGB(1, 1, 1)" {
		t.Errorf("String: %q", got)
	}
	if got := r.Zero().FormatPairs(); got != "(0 0) (1 0) (2 0)" {
		t.Errorf("FormatPairs: %q", got)
	}
}
