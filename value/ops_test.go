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

package value

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func randomValue[V Channels](rng *rand.Rand) V {
	var v V
	for i := range len(v) {
		v[i] = 4*rng.Float64() - 1
	}
	return v
}

// checkIdentities verifies the algebraic identities which every colour
// value type must satisfy.
func checkIdentities[V Channels](t *testing.T) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	var zero V
	unit := Unit[V]()
	for range 20 {
		a := randomValue[V](rng)

		if got := Add(a, zero); got != a {
			t.Errorf("%s: a+0 != a", Name[V]())
		}
		if got := Mul(a, unit); got != a {
			t.Errorf("%s: a*1 != a", Name[V]())
		}
		if got := Sub(a, a); got != zero {
			t.Errorf("%s: a-a != 0", Name[V]())
		}
		c := Clamp(a, 0, 1)
		if Clamp(c, 0, 1) != c {
			t.Errorf("%s: clamp is not idempotent", Name[V]())
		}
		if Min(c) < 0 || Max(c) > 1 {
			t.Errorf("%s: clamp out of range", Name[V]())
		}
		if got := Interpol(0, a, unit); got != a {
			t.Errorf("%s: interpol(0) != a", Name[V]())
		}
		if !Equal(Interpol(1, a, unit), unit, 1e-15) {
			t.Errorf("%s: interpol(1) != b", Name[V]())
		}
		if !Equal(Div(Mul(a, a), a), a, 1e-12) {
			t.Errorf("%s: (a*a)/a != a", Name[V]())
		}
		if !EqualRel(Inv(Inv(a)), a, 1e-12) {
			t.Errorf("%s: 1/(1/a) != a", Name[V]())
		}
		if !EqualRel(FastInv(a), Inv(a), 1e-6) {
			t.Errorf("%s: fast inverse too imprecise", Name[V]())
		}
		if !EqualRel(NegExp(a), Inv(Exp(a)), 1e-12) {
			t.Errorf("%s: exp(-a) != 1/exp(a)", Name[V]())
		}
		if Avg(unit) != 1 || Sum(unit) != float64(Len[V]()) {
			t.Errorf("%s: wrong sum/avg of unit", Name[V]())
		}
		if math.Abs(L2Norm(a)-math.Sqrt(Sum(Mul(a, a)))) > 1e-12 {
			t.Errorf("%s: wrong L2 norm", Name[V]())
		}
		if LInfNorm(a) != math.Max(Max(a), -Min(a)) {
			t.Errorf("%s: wrong LInf norm", Name[V]())
		}
		if L1Norm(a) < L1NormVisible(a) {
			t.Errorf("%s: visible norm larger than full norm", Name[V]())
		}
	}
}

func TestIdentities(t *testing.T) {
	t.Run("Grey", checkIdentities[Grey])
	t.Run("RGB", checkIdentities[RGB])
	t.Run("XYZ", checkIdentities[XYZ])
	t.Run("Spectrum8", checkIdentities[Spectrum8])
	t.Run("Spectrum11", checkIdentities[Spectrum11])
	t.Run("Spectrum18", checkIdentities[Spectrum18])
	t.Run("Spectrum46", checkIdentities[Spectrum46])
	t.Run("Spectrum500", checkIdentities[Spectrum500])
}

func TestSafeDiv(t *testing.T) {
	cases := []struct {
		a, b, want float64
	}{
		{1, 2, 0.5},
		{0, 0, 0},
		{3, 0, DivSentinel},
		{-3, 0, -DivSentinel},
	}
	for _, c := range cases {
		if got := SafeDiv(c.a, c.b); got != c.want {
			t.Errorf("SafeDiv(%g, %g) = %g, want %g", c.a, c.b, got, c.want)
		}
	}

	got := Div(RGB{0, 1, -2}, RGB{})
	want := RGB{0, DivSentinel, -DivSentinel}
	if got != want {
		t.Errorf("Div = %v, want %v", got, want)
	}
	if got := Inv(Grey{0}); got != (Grey{DivSentinel}) {
		t.Errorf("Inv(0) = %v", got)
	}
}

func TestFused(t *testing.T) {
	a := RGB{1, 2, 3}
	b := RGB{4, 5, 6}
	c := RGB{7, 8, 9}

	if d := cmp.Diff(RGB{6, 9, 12}, ScaleAdd(2, a, b)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(RGB{14, 19, 24}, ScaleScaleAdd(2, a, 3, b)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(RGB{21, 27, 33}, ScaleScaleScaleAdd(2, a, 3, b, 1, c)); d != "" {
		t.Error(d)
	}
}

func TestPow(t *testing.T) {
	a := XYZ{1, 4, 9}
	if d := cmp.Diff(XYZ{1, 2, 3}, Pow(a, 0.5), cmpopts.EquateApprox(0, 1e-15)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(XYZ{1, 0.5, 1.0 / 3}, NegPow(a, 0.5), cmpopts.EquateApprox(0, 1e-15)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(Sqrt(a), Pow(a, 0.5), cmpopts.EquateApprox(0, 1e-15)); d != "" {
		t.Error(d)
	}
}

func TestEqual(t *testing.T) {
	a := RGB{1, 0, 100}
	b := RGB{1.001, 0, 100.1}
	if Equal(a, b, 1e-3) {
		t.Error("absolute tolerance too generous")
	}
	if !Equal(a, b, 0.2) {
		t.Error("absolute tolerance too strict")
	}
	if !EqualRel(a, b, 2e-3) {
		t.Error("relative tolerance too strict")
	}
	if EqualRel(a, b, 1e-4) {
		t.Error("relative tolerance too generous")
	}
}

func TestConvolveNotSpectral(t *testing.T) {
	_, err := Convolve(RGB{1, 2, 3}, RGB{1, 1, 1})
	if !errors.Is(err, ErrNotSpectral) {
		t.Errorf("Convolve(RGB) error = %v, want ErrNotSpectral", err)
	}
	_, err = Convolve(XYZ{1, 2, 3}, XYZ{1, 1, 1})
	if !errors.Is(err, ErrNotSpectral) {
		t.Errorf("Convolve(XYZ) error = %v, want ErrNotSpectral", err)
	}
	_, err = ValueAt(Grey{1}, 500)
	if !errors.Is(err, ErrNotSpectral) {
		t.Errorf("ValueAt(Grey) error = %v, want ErrNotSpectral", err)
	}
	_, err = SampleAt[RGB](500, 1)
	var opErr *OpError
	if !errors.As(err, &opErr) || opErr.Type != "RGB" {
		t.Errorf("SampleAt(RGB) error = %v", err)
	}
}

func TestCheck(t *testing.T) {
	if err := Check(RGB{1, 2, 3}); err != nil {
		t.Error(err)
	}
	if Valid(RGB{1, math.NaN(), 3}) {
		t.Error("NaN not detected")
	}
	err := Check(Spectrum8{0, 0, 0, math.Inf(-1)})
	if err == nil || err.Error() != "Spectrum8: channel 3 is -Inf" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(RGB{0.5, 0.25, 1}); got != "RGB(0.5, 0.25, 1)" {
		t.Errorf("Format = %q", got)
	}
	if got := FormatPairs(Grey{2}); got != "(0 2)" {
		t.Errorf("FormatPairs = %q", got)
	}
	var s Spectrum8
	s[0] = 0.5
	got := FormatPairs(s)
	want := "(405 0.5) (455 0) (505 0) (555 0) (605 0) (655 0) (705 0) (755 0)"
	if got != want {
		t.Errorf("FormatPairs = %q, want %q", got, want)
	}
}
