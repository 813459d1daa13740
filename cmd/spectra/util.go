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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/spectra/internal/float"
	"seehuhn.de/go/spectra/sampled"
	"seehuhn.de/go/spectra/value"
)

// parseFloats converts the command line arguments to numbers.
func parseFloats(args []string) ([]float64, error) {
	res := make([]float64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		res[i] = x
	}
	return res, nil
}

// readSpectrum reads a measured spectrum from a text file.  Each
// non-empty line holds a wavelength in nm and a value, separated by
// white space.  Lines starting with "#" are ignored.
func readSpectrum(fname string) (*sampled.PSS, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var points []sampled.Point
	scanner := bufio.NewScanner(fd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected two columns", fname, lineNo)
		}
		xy, err := parseFloats(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", fname, lineNo, err)
		}
		points = append(points, sampled.Point{Lambda: xy[0], Value: xy[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	pss, err := sampled.NewPSS(points, 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if err := pss.Check(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return pss, nil
}

// numbers formats xs for output.
func numbers(xs ...float64) string {
	prec := 9
	if isTerminal() {
		prec = 4
	}
	return float.Join(xs, prec, " ")
}

// swatch returns a coloured block for the gamma encoded colour c, using
// 24-bit terminal colours.  If standard output is not a terminal, the
// result is empty.
func swatch(c value.RGB) string {
	if !isTerminal() {
		return ""
	}
	p := value.PackRGB[uint8](c)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm      \x1b[0m", p[0], p[1], p[2])
}

// hex formats the gamma encoded colour c as "#rrggbb".
func hex(c value.RGB) string {
	p := value.PackRGB[uint8](c)
	return fmt.Sprintf("#%02x%02x%02x", p[0], p[1], p[2])
}
