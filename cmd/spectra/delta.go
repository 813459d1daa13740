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

var deltaCmd = &cobra.Command{
	Use:   "delta L1 a1 b1 L2 a2 b2",
	Short: "Compute colour differences between two CIELAB colours",
	Args:  cobra.ExactArgs(6),
	RunE:  runDelta,
}

func init() {
	deltaCmd.Flags().Float64Slice("weights", []float64{1, 1, 1}, "parametric weights kL,kC,kH for CIEDE2000")
	rootCmd.AddCommand(deltaCmd)
}

func runDelta(cmd *cobra.Command, args []string) error {
	k, _ := cmd.Flags().GetFloat64Slice("weights")
	if len(k) != 3 {
		return fmt.Errorf("expected three weights, got %d", len(k))
	}

	v, err := parseFloats(args)
	if err != nil {
		return err
	}
	a := cie.Lab{L: v[0], A: v[1], B: v[2]}
	b := cie.Lab{L: v[3], A: v[4], B: v[5]}

	fmt.Println("ΔE*ab:   ", numbers(cie.DeltaE(a, b)))
	fmt.Println("ΔE*94:   ", numbers(cie.DeltaE94(a, b)))
	fmt.Println("ΔE*00:   ", numbers(cie.DeltaE2000K(a, b, k[0], k[1], k[2])))
	fmt.Println("ΔL*:     ", numbers(cie.DeltaL(a, b)))
	fmt.Println("ΔC*:     ", numbers(cie.DeltaC(a, b)))
	fmt.Println("ΔH*:     ", numbers(cie.DeltaH(a, b)))
	return nil
}
