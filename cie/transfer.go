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

package cie

import (
	"fmt"
	"math"
)

// Transfer is the transfer function ("gamma") of an RGB colour space.
type Transfer interface {
	// Encode maps a linear value to the non-linear encoding used by the
	// colour space.
	Encode(v float64) float64

	// Decode maps an encoded value back to linear light.
	Decode(v float64) float64
}

// Linear is the identity transfer function.
var Linear Transfer = StandardGamma(1)

// StandardGamma is a pure power law transfer function.  Encoding computes
// v^(1/γ), decoding computes v^γ.  Negative values are mapped
// symmetrically.
type StandardGamma float64

// Encode implements the [Transfer] interface.
func (g StandardGamma) Encode(v float64) float64 {
	if g == 1 {
		return v
	}
	if v < 0 {
		return -math.Pow(-v, 1/float64(g))
	}
	return math.Pow(v, 1/float64(g))
}

// Decode implements the [Transfer] interface.
func (g StandardGamma) Decode(v float64) float64 {
	if g == 1 {
		return v
	}
	if v < 0 {
		return -math.Pow(-v, float64(g))
	}
	return math.Pow(v, float64(g))
}

func (g StandardGamma) String() string {
	return fmt.Sprintf("gamma %g", float64(g))
}

// SRGB is the transfer function of the sRGB colour space: a linear segment
// near black followed by a power law with exponent 2.4.
var SRGB Transfer = srgbTransfer{}

const (
	srgbLinearLimit  = 0.0031308
	srgbEncodedLimit = 0.04045
)

type srgbTransfer struct{}

// Encode implements the [Transfer] interface.
func (srgbTransfer) Encode(v float64) float64 {
	if v <= srgbLinearLimit {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// Decode implements the [Transfer] interface.
func (srgbTransfer) Decode(v float64) float64 {
	if v <= srgbEncodedLimit {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func (srgbTransfer) String() string {
	return "sRGB"
}
