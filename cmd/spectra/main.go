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


// Spectra is a command line front-end for the colour engine.
//
// Usage:
//
//	spectra convert --from xyz 0.3 0.4 0.2
//	spectra delta 50 2.6772 -79.7751 50 0 -82.7485
//	spectra gamut --method cusp 0.5 0.2 0.9
//	spectra spaces
//	spectra swatch -o slice.png --lightness 60
//	spectra whitepoint D65 5000K
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"seehuhn.de/go/spectra"
	"seehuhn.de/go/spectra/gamut"
	"seehuhn.de/go/spectra/isr"
)

var rootCmd = &cobra.Command{
	Use:           "spectra",
	Short:         "Colour and spectral conversions for rendering",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("representation", "r", "Spectrum46", "internal spectral representation (Grey, RGB, XYZ, S8, S11, S18, S46, S500)")
	f.StringP("whitepoint", "w", "D50", "system white point (illuminant name or colour temperature like 5000K)")
	f.String("rgb", "sRGB", "RGB colour space used for display")
	f.String("icc", "", "ICC profile of an additional RGB colour space")
	f.StringP("method", "m", "linear", "gamut mapping method (clip, linear, node, cusp, xyz, luv)")
	f.Int("depth", gamut.DefaultDepth, "bisection depth for gamut mapping")
	f.Bool("flag", false, "mark out-of-gamut colours with signal colours")
	f.Bool("cms", false, "encode display colours through the ICC profile of the display space")
	f.BoolP("verbose", "v", false, "log configuration changes")
}

// newEngine creates a colour engine from the global command line flags.
func newEngine(cmd *cobra.Command) (*spectra.Engine, error) {
	f := cmd.Flags()
	repName, _ := f.GetString("representation")
	white, _ := f.GetString("whitepoint")
	rgb, _ := f.GetString("rgb")
	iccFile, _ := f.GetString("icc")
	methodName, _ := f.GetString("method")
	depth, _ := f.GetInt("depth")
	flagOut, _ := f.GetBool("flag")
	useCMS, _ := f.GetBool("cms")
	verbose, _ := f.GetBool("verbose")

	kind, err := isr.ParseKind(repName)
	if err != nil {
		return nil, err
	}
	method, err := gamut.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}
	cfg := gamut.DefaultConfig()
	cfg.Method = method
	cfg.Depth = depth
	cfg.FlagNegative = flagOut
	cfg.FlagAboveOne = flagOut

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opt := &spectra.Options{
		Representation:   kind,
		Whitepoint:       white,
		Gamut:            &cfg,
		ColourManagement: useCMS,
		Logger:           logger,
	}
	if iccFile == "" {
		opt.DefaultRGB = rgb
	}
	e, err := spectra.New(opt)
	if err != nil {
		return nil, err
	}

	if iccFile != "" {
		data, err := os.ReadFile(iccFile)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("reading ICC profile: %w", err)
		}
		s, err := e.ImportICC(iccFile, data)
		if err == nil {
			err = e.SetDefaultRGB(s.Name)
		}
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("%s: %w", iccFile, err)
		}
	}
	return e, nil
}

// isTerminal reports whether standard output is a terminal.  In this case
// colours are shown as swatches and numbers are rounded for reading.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "spectra:", err)
		os.Exit(1)
	}
}
