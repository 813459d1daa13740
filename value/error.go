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

import "errors"

// ErrNotSpectral is returned when an operation which needs spectral samples
// is applied to a Grey, RGB or XYZ value.
var ErrNotSpectral = errors.New("not a spectral representation")

// OpError records a failed operation on a colour value type.
type OpError struct {
	Op   string
	Type string
	Err  error
}

func (err *OpError) Error() string {
	return err.Op + " on " + err.Type + ": " + err.Err.Error()
}

func (err *OpError) Unwrap() error {
	return err.Err
}
