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


// Package isr implements the internal spectral representation (ISR).
//
// A renderer chooses one concrete colour value type from package value,
// for example RGB for speed or Spectrum46 for accuracy, and then works only
// with the abstract [Spectrum] type.  The chosen type is described by a
// [Representation], obtained from [For].  All spectra used together must
// belong to the same representation.
package isr

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
)

// Kind identifies one of the concrete colour value types which can serve
// as the internal spectral representation.
type Kind int

// These are the supported representations.
const (
	Grey Kind = iota + 1
	RGB
	XYZ
	Spectrum8
	Spectrum11
	Spectrum18
	Spectrum46
	Spectrum500
)

var kindNames = []string{
	Grey:        "Grey",
	RGB:         "RGB",
	XYZ:         "XYZ",
	Spectrum8:   "Spectrum8",
	Spectrum11:  "Spectrum11",
	Spectrum18:  "Spectrum18",
	Spectrum46:  "Spectrum46",
	Spectrum500: "Spectrum500",
}

// ErrUnknownKind is returned when a representation is requested which does
// not exist.
var ErrUnknownKind = errors.New("unknown spectral representation")

func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k >= Grey && k <= Spectrum500
}

// Kinds returns all supported representations, in increasing order of
// channel count.
func Kinds() []Kind {
	return []Kind{Grey, RGB, XYZ, Spectrum8, Spectrum11, Spectrum18, Spectrum46, Spectrum500}
}

var fold = cases.Fold()

// ParseKind returns the representation with the given name.
// Matching is case-insensitive, and the short forms "S46" etc. are
// accepted for the spectral types.
func ParseKind(name string) (Kind, error) {
	key := fold.String(name)
	idx := slices.IndexFunc(kindNames, func(n string) bool {
		if n == "" {
			return false
		}
		f := fold.String(n)
		if f == key {
			return true
		}
		short, ok := strings.CutPrefix(f, "spectrum")
		return ok && "s"+short == key
	})
	if idx < 0 {
		return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
	}
	return Kind(idx), nil
}
