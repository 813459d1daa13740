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
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/value"
)

var swatchCmd = &cobra.Command{
	Use:   "swatch",
	Short: "Render a slice of CIELAB space as a PNG image",
	Long: `Render a slice of CIELAB space as a PNG image.

The image shows the a*b* plane at constant lightness, with a* increasing
to the right and b* increasing upwards.  Colours outside the display gamut
are mapped using the selected method; use --flag to mark them instead.`,
	Args: cobra.NoArgs,
	RunE: runSwatch,
}

func init() {
	swatchCmd.Flags().StringP("output", "o", "", "output PNG file")
	swatchCmd.Flags().Float64P("lightness", "l", 50, "CIELAB lightness of the slice")
	swatchCmd.Flags().Float64("range", 128, "largest |a*| and |b*| shown")
	swatchCmd.Flags().Int("size", 256, "image width and height in pixels")
	swatchCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(swatchCmd)
}

func runSwatch(cmd *cobra.Command, args []string) error {
	outputFile, _ := cmd.Flags().GetString("output")
	L, _ := cmd.Flags().GetFloat64("lightness")
	r, _ := cmd.Flags().GetFloat64("range")
	size, _ := cmd.Flags().GetInt("size")
	if size < 2 || size > 8192 {
		return fmt.Errorf("invalid image size %d", size)
	}

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	img := image.NewNRGBA64(image.Rect(0, 0, size, size))
	for row := range size {
		b := r - 2*r*float64(row)/float64(size-1)
		for col := range size {
			a := -r + 2*r*float64(col)/float64(size-1)
			xyz := e.LabToXYZ(cie.Lab{L: L, A: a, B: b})
			rgb, err := e.XYZToUnitRGBWithGamma(xyz)
			if err != nil {
				return err
			}
			img.SetNRGBA64(col, row, value.ToNRGBA64(rgb.WithAlpha(1)))
		}
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	err = png.Encode(out, img)
	if err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", outputFile, err)
	}
	return out.Close()
}
