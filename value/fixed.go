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
	"image/color"
	"math"
)

// GreyAlpha is a luminance channel followed by an alpha channel.
type GreyAlpha [2]float64

// RGBA is linear RGB followed by a non-premultiplied alpha channel.
type RGBA [4]float64

// XYZA is CIE XYZ followed by an alpha channel.
type XYZA [4]float64

// Grey returns the luminance channel of c.
func (c GreyAlpha) Grey() Grey { return Grey{c[0]} }

// Alpha returns the alpha channel of c.
func (c GreyAlpha) Alpha() float64 { return c[1] }

// RGB returns the colour channels of c.
func (c RGBA) RGB() RGB { return RGB{c[0], c[1], c[2]} }

// Alpha returns the alpha channel of c.
func (c RGBA) Alpha() float64 { return c[3] }

// XYZ returns the colour channels of c.
func (c XYZA) XYZ() XYZ { return XYZ{c[0], c[1], c[2]} }

// Alpha returns the alpha channel of c.
func (c XYZA) Alpha() float64 { return c[3] }

// WithAlpha returns c with an added alpha channel.
func (c RGB) WithAlpha(alpha float64) RGBA { return RGBA{c[0], c[1], c[2], alpha} }

// WithAlpha returns c with an added alpha channel.
func (c XYZ) WithAlpha(alpha float64) XYZA { return XYZA{c[0], c[1], c[2], alpha} }

// WithAlpha returns c with an added alpha channel.
func (c Grey) WithAlpha(alpha float64) GreyAlpha { return GreyAlpha{c[0], alpha} }

// Unsigned lists the integer types used for fixed-point colour channels.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// PackedRGB holds fixed-point RGB channels, where the largest value of T
// represents 1.
type PackedRGB[T Unsigned] [3]T

// PackedRGBA holds fixed-point RGBA channels, where the largest value of T
// represents 1.
type PackedRGBA[T Unsigned] [4]T

// Pack converts x from the range [0, 1] to fixed-point.
// Values outside the range are clamped.
func Pack[T Unsigned](x float64) T {
	full := ^T(0)
	switch {
	case !(x > 0):
		return 0
	case x >= 1:
		return full
	}
	return T(math.Round(x * float64(full)))
}

// Unpack converts a fixed-point channel value to the range [0, 1].
func Unpack[T Unsigned](p T) float64 {
	return float64(p) / float64(^T(0))
}

// PackRGB converts c to fixed-point.
func PackRGB[T Unsigned](c RGB) PackedRGB[T] {
	return PackedRGB[T]{Pack[T](c[0]), Pack[T](c[1]), Pack[T](c[2])}
}

// PackRGBA converts c to fixed-point.
func PackRGBA[T Unsigned](c RGBA) PackedRGBA[T] {
	return PackedRGBA[T]{Pack[T](c[0]), Pack[T](c[1]), Pack[T](c[2]), Pack[T](c[3])}
}

// Unpack converts p to floating point.
func (p PackedRGB[T]) Unpack() RGB {
	return RGB{Unpack(p[0]), Unpack(p[1]), Unpack(p[2])}
}

// Unpack converts p to floating point.
func (p PackedRGBA[T]) Unpack() RGBA {
	return RGBA{Unpack(p[0]), Unpack(p[1]), Unpack(p[2]), Unpack(p[3])}
}

// ToNRGBA64 converts c, which must be given in display (gamma encoded)
// coordinates, to a 16-bit non-premultiplied Go colour.
func ToNRGBA64(c RGBA) color.NRGBA64 {
	return color.NRGBA64{
		R: Pack[uint16](c[0]),
		G: Pack[uint16](c[1]),
		B: Pack[uint16](c[2]),
		A: Pack[uint16](c[3]),
	}
}

// FromColor converts a Go colour to non-premultiplied RGBA.
func FromColor(c color.Color) RGBA {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{Unpack(n.R), Unpack(n.G), Unpack(n.B), Unpack(n.A)}
}
