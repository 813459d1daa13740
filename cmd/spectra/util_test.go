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


package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/spectra"
	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/isr"
)

func TestReadSpectrum(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "flat.txt")
	data := "# flat spectrum\n400 0.5\n\n700   0.5\n"
	if err := os.WriteFile(fname, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	pss, err := readSpectrum(fname)
	if err != nil {
		t.Fatal(err)
	}
	if pss.Len() != 2 || pss.Eval(550) != 0.5 {
		t.Errorf("unexpected spectrum %v", pss.Points)
	}

	bad := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte("400 0.5 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readSpectrum(bad); err == nil {
		t.Error("three columns accepted")
	}
}

// TestBlackbody checks that the sampled black body spectrum has the
// chromaticity of the black body locus.
func TestBlackbody(t *testing.T) {
	e, err := spectra.New(&spectra.Options{Representation: isr.Spectrum500})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	x, _ := e.NewSpectrum()
	defer x.Release()

	err = setInput(e, x, "blackbody", []string{"6500"})
	if err != nil {
		t.Fatal(err)
	}
	xyz := x.XYZ(nil)
	if math.Abs(xyz[1]-1) > 1e-9 {
		t.Errorf("luminance %g", xyz[1])
	}
	got := cie.Chromaticity(xyz)
	want, _ := cie.Blackbody(6500)
	if math.Hypot(got.X-want.X, got.Y-want.Y) > 2e-3 {
		t.Errorf("chromaticity %v, want %v", got, want)
	}

	if _, err := blackbody(-1); err == nil {
		t.Error("negative temperature accepted")
	}
}

func TestSetInput(t *testing.T) {
	e, err := spectra.New(&spectra.Options{Representation: isr.XYZ, Whitepoint: "D65"})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	x, _ := e.NewSpectrum()
	defer x.Release()

	if err := setInput(e, x, "lab", []string{"100", "0", "0"}); err != nil {
		t.Fatal(err)
	}
	if xyz := x.XYZ(nil); math.Abs(xyz[1]-1) > 1e-12 {
		t.Errorf("Lab white gives %v", xyz)
	}
	if err := setInput(e, x, "colour", []string{"white"}); err != nil {
		t.Fatal(err)
	}
	if xyz := x.XYZ(nil); math.Abs(xyz[1]-1) > 1e-9 {
		t.Errorf("white gives %v", xyz)
	}
	if err := setInput(e, x, "xyy", []string{"0.3", "0", "1"}); err == nil {
		t.Error("degenerate xyY accepted")
	}
	if err := setInput(e, x, "xyz", []string{"1", "2"}); err == nil {
		t.Error("two numbers accepted")
	}
	if err := setInput(e, x, "cmyk", []string{"1", "2", "3"}); err == nil {
		t.Error("unknown model accepted")
	}
}
