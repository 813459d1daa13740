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

	"github.com/spf13/cobra"

	"seehuhn.de/go/spectra/gamut"
	"seehuhn.de/go/spectra/value"
)

var gamutCmd = &cobra.Command{
	Use:   "gamut X Y Z",
	Short: "Map an XYZ colour into the display gamut",
	Long: `Map an XYZ colour into the display gamut.

Without --all, the method given by --method is used.  With --all, the
results of all gamut mapping methods are listed.`,
	Args: cobra.ExactArgs(3),
	RunE: runGamut,
}

func init() {
	gamutCmd.Flags().Bool("all", false, "compare all gamut mapping methods")
	gamutCmd.Flags().Bool("hdr", false, "allow values above one (only negative values are mapped)")
	rootCmd.AddCommand(gamutCmd)
}

func runGamut(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	hdr, _ := cmd.Flags().GetBool("hdr")

	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	xyz := value.XYZ(v)

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.DefaultRGB()
	m := e.Gamut()
	raw := s.XYZToRGB(xyz)
	fmt.Printf("space:    %s\n", s.Name)
	fmt.Printf("raw RGB:  %s\n", numbers(raw[0], raw[1], raw[2]))

	if hdr {
		rgb := m.ToRGB(xyz, s)
		fmt.Printf("HDR RGB:  %s\n", numbers(rgb[0], rgb[1], rgb[2]))
		return nil
	}

	methods := []gamut.Method{m.Config().Method}
	if all {
		methods = []gamut.Method{gamut.Clip, gamut.Linear, gamut.Node, gamut.Cusp, gamut.MoveXYZ}
	}
	for _, method := range methods {
		if err := m.SetMethod(method); err != nil {
			return err
		}
		rgb := m.ToUnitRGBWithGamma(xyz, s)
		fmt.Printf("%-8s  %s %s %s\n", method.String()+":", numbers(rgb[0], rgb[1], rgb[2]), hex(rgb), swatch(rgb))
	}
	return nil
}
