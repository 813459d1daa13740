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

package value

import (
	"fmt"
	"math"
	"strings"

	"seehuhn.de/go/spectra/internal/float"
)

// Check returns an error describing the first channel of a which is NaN or
// infinite.  For valid values the result is nil.
func Check[V Channels](a V) error {
	for i := range len(a) {
		x := a[i]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s: channel %d is %s", Name[V](), i, float.Format(x, 0))
		}
	}
	return nil
}

// Valid reports whether all channels of a are finite.
func Valid[V Channels](a V) bool {
	return Check(a) == nil
}

// Format returns a human-readable representation of a,
// for example "RGB(0.5, 0.25, 1)".
func Format[V Channels](a V) string {
	b := &strings.Builder{}
	b.WriteString(Name[V]())
	b.WriteByte('(')
	for i := range len(a) {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(float.Format(a[i], 6))
	}
	b.WriteByte(')')
	return b.String()
}

// FormatPairs returns a machine-readable representation of a as a list of
// pairs.  For spectral types the first element of each pair is the channel
// centre wavelength in nm, otherwise it is the channel index:
//
//	(405 0.1) (455 0.2) ...
func FormatPairs[V Channels](a V) string {
	l := LayoutOf[V]()
	b := &strings.Builder{}
	for i := range len(a) {
		if i > 0 {
			b.WriteByte(' ')
		}
		key := float64(i)
		if l != nil {
			key = l.Centres[i]
		}
		fmt.Fprintf(b, "(%s %s)", float.Format(key, 3), float.Format(a[i], 9))
	}
	return b.String()
}
