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

package gamut

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/value"
)

// ParseColour converts a colour name to linear RGB, for use as a flag
// colour.  Both SVG colour names (like "magenta") and hexadecimal sRGB
// values (like "#ff00ff") are understood.
func ParseColour(name string) (value.RGB, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	var r, g, b uint8
	if hex, ok := strings.CutPrefix(key, "#"); ok {
		if len(hex) != 6 {
			return value.RGB{}, fmt.Errorf("invalid colour %q", name)
		}
		x, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return value.RGB{}, fmt.Errorf("invalid colour %q", name)
		}
		r, g, b = uint8(x>>16), uint8(x>>8), uint8(x)
	} else {
		c, ok := colornames.Map[key]
		if !ok {
			return value.RGB{}, fmt.Errorf("unknown colour %q", name)
		}
		r, g, b = c.R, c.G, c.B
	}

	c := value.PackedRGB[uint8]{r, g, b}.Unpack()
	for i := range c {
		c[i] = cie.SRGB.Decode(c[i])
	}
	return c, nil
}
