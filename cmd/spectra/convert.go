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
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/spectra"
	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/gamut"
	"seehuhn.de/go/spectra/isr"
	"seehuhn.de/go/spectra/sampled"
	"seehuhn.de/go/spectra/space"
)

var convertCmd = &cobra.Command{
	Use:   "convert [values...]",
	Short: "Convert a colour into all supported models",
	Long: `Convert a colour into all supported models.

The input model is selected with --from:

  xyz        three numbers X Y Z
  xyy        three numbers x y Y
  rgb        three linear RGB values in the display colour space
  lab        three numbers L* a* b*, relative to the system white point
  luv        three numbers L* u* v*, relative to the system white point
  colour     an SVG colour name or a hex value like #ff8000 (sRGB)
  blackbody  a temperature in Kelvin; the result has luminance 1
  spectrum   a text file with two columns: wavelength (nm) and value`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("from", "f", "xyz", "input colour model")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	x, err := e.NewSpectrum()
	if err != nil {
		return err
	}
	defer x.Release()

	err = setInput(e, x, strings.ToLower(from), args)
	if err != nil {
		return err
	}
	return printColour(e, x)
}

// setInput sets x to the colour described by the command line arguments.
func setInput(e *spectra.Engine, x *isr.Spectrum, from string, args []string) error {
	rgbSpace := e.DefaultRGB()

	switch from {
	case "colour", "color":
		if len(args) != 1 {
			return fmt.Errorf("expected one colour name, got %d arguments", len(args))
		}
		c, err := gamut.ParseColour(args[0])
		if err != nil {
			return err
		}
		x.SetRGB(c, e.Spaces().Must(space.NameSRGB))
		return nil
	case "spectrum":
		if len(args) != 1 {
			return fmt.Errorf("expected one file name, got %d arguments", len(args))
		}
		pss, err := readSpectrum(args[0])
		if err != nil {
			return err
		}
		x.SetCurve(pss, rgbSpace)
		return nil
	case "blackbody":
		if len(args) != 1 {
			return fmt.Errorf("expected one temperature, got %d arguments", len(args))
		}
		T, err := parseFloats(args)
		if err != nil {
			return err
		}
		rss, err := blackbody(T[0])
		if err != nil {
			return err
		}
		x.SetCurve(rss, rgbSpace)
		if Y := x.XYZ(rgbSpace)[1]; Y > 0 {
			x.DivScalar(x, Y)
		}
		return nil
	}

	if len(args) != 3 {
		return fmt.Errorf("expected three numbers, got %d arguments", len(args))
	}
	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	switch from {
	case "xyz":
		x.SetXYZ([3]float64(v), rgbSpace)
	case "xyy":
		c, err := cie.XYYToXYZChecked(cie.XYY{Chroma: vec.Vec2{X: v[0], Y: v[1]}, Y: v[2]})
		if err != nil {
			return err
		}
		x.SetXYZ(c, rgbSpace)
	case "rgb":
		x.SetRGB([3]float64(v), rgbSpace)
	case "lab":
		x.SetXYZ(e.LabToXYZ(cie.Lab{L: v[0], A: v[1], B: v[2]}), rgbSpace)
	case "luv":
		w := e.Whitepoint().XYZ()
		x.SetXYZ(cie.LuvToXYZ(cie.Luv{L: v[0], U: v[1], V: v[2]}, w), rgbSpace)
	default:
		return fmt.Errorf("unknown colour model %q", from)
	}
	return nil
}

// blackbody returns the spectrum of a black body at temperature T,
// sampled every 5nm over the range of the colour-matching functions.
func blackbody(T float64) (*sampled.RSS, error) {
	if !(T > 0) || math.IsInf(T, 0) {
		return nil, fmt.Errorf("invalid temperature %g", T)
	}
	const step = 5.0
	n := int((cie.CMFEnd-cie.CMFStart)/step) + 1
	values := make([]float64, n)
	peak := 0.0
	for i := range values {
		values[i] = cie.Planck(cie.CMFStart+float64(i)*step, T)
		peak = max(peak, values[i])
	}
	return sampled.NewRSS(cie.CMFStart, step, values, peak)
}

func printColour(e *spectra.Engine, x *isr.Spectrum) error {
	s := e.DefaultRGB()
	white := e.Whitepoint()

	xyz := x.XYZ(s)
	xyy := cie.XYZToXYY(xyz, white.XYZ())
	lab := e.XYZToLab(xyz)
	lch := cie.LabToLCh(lab)
	luv := cie.XYZToLuv(xyz, white.XYZ())

	display, err := e.SpectrumToDisplay(x)
	if err != nil {
		return err
	}

	if isTerminal() {
		fmt.Println("ISR:     ", x)
	} else {
		fmt.Println("ISR:     ", x.FormatPairs())
	}
	fmt.Println("XYZ:     ", numbers(xyz[0], xyz[1], xyz[2]))
	fmt.Println("xyY:     ", numbers(xyy.Chroma.X, xyy.Chroma.Y, xyy.Y))
	fmt.Printf("Lab:      %s (white %s)\n", numbers(lab.L, lab.A, lab.B), white)
	fmt.Println("LCh:     ", numbers(lch.L, lch.C, lch.HueDegrees()))
	fmt.Println("Luv:     ", numbers(luv.L, luv.U, luv.V))
	if T, err := cie.CCT(xyy.Chroma); err == nil {
		fmt.Println("CCT:     ", numbers(T), "K")
	}
	rgb := x.RGB(s)
	fmt.Printf("RGB:      %s (linear %s)\n", numbers(rgb[0], rgb[1], rgb[2]), s.Name)
	fmt.Printf("display:  %s %s %s\n", numbers(display[0], display[1], display[2]), hex(display), swatch(display))
	return nil
}
