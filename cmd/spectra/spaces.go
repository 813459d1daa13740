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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"seehuhn.de/go/spectra/space"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List the known colour spaces",
	Args:  cobra.NoArgs,
	RunE:  runSpaces,
}

func init() {
	spacesCmd.Flags().Bool("matrix", false, "show the XYZ to RGB matrices")
	rootCmd.AddCommand(spacesCmd)
}

func runSpaces(cmd *cobra.Command, args []string) error {
	showMatrix, _ := cmd.Flags().GetBool("matrix")

	e, err := newEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	def := e.DefaultRGB()
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tTYPE\tWHITE\tTRANSFER\tICC")
	for _, name := range e.Spaces().Names() {
		s := e.Spaces().Must(name)
		mark := ""
		if s.Name == def.Name {
			mark = "*"
		}
		transfer := "-"
		if s.IsRGB() {
			transfer = fmt.Sprint(s.Transfer)
		}
		icc := "-"
		if s.Profile != nil {
			icc = fmt.Sprintf("%d bytes", len(s.Profile))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, s.Name, s.Type, numbers(s.White.X, s.White.Y), transfer, icc)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showMatrix {
		for _, s := range e.Spaces().All() {
			if s.Type != space.RGB {
				continue
			}
			m := s.ToRGB
			fmt.Printf("\n%s, XYZ to RGB:\n", s.Name)
			for i := range 3 {
				fmt.Println("  ", numbers(m[3*i], m[3*i+1], m[3*i+2]))
			}
		}
	}
	return nil
}
