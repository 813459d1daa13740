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

	"seehuhn.de/go/spectra/cie"
)

var whitepointCmd = &cobra.Command{
	Use:   "whitepoint [name...]",
	Short: "Show white points and chromatic adaptation matrices",
	Long: `Show white points and chromatic adaptation matrices.

Names can be standard illuminants like D65 or colour temperatures like
5000K.  Without arguments, all standard illuminants are listed.  The
Bradford matrix adapts colours from the system white point (--whitepoint)
to each listed white point.`,
	RunE: runWhitepoint,
}

func init() {
	whitepointCmd.Flags().Bool("adapt", false, "show the Bradford adaptation matrices")
	rootCmd.AddCommand(whitepointCmd)
}

func runWhitepoint(cmd *cobra.Command, args []string) error {
	adapt, _ := cmd.Flags().GetBool("adapt")

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	var whites []cie.Whitepoint
	if len(args) == 0 {
		whites = cie.Whitepoints
	}
	for _, name := range args {
		w, err := cie.LookupWhitepoint(name)
		if err != nil {
			return err
		}
		whites = append(whites, w)
	}

	system := e.Whitepoint()
	for _, w := range whites {
		xyz := w.XYZ()
		fmt.Printf("%-6s xy %s  XYZ %s", w.Name, numbers(w.XY.X, w.XY.Y), numbers(xyz[0], xyz[1], xyz[2]))
		if T, err := cie.CCT(w.XY); err == nil {
			fmt.Printf("  CCT %sK", numbers(T))
		}
		fmt.Println()
		if adapt {
			m := cie.BradfordMatrix(system.XYZ(), xyz)
			for i := range 3 {
				fmt.Println("      ", numbers(m[3*i], m[3*i+1], m[3*i+2]))
			}
		}
	}
	return nil
}
