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


package isr

import (
	"fmt"
	"math"
	"sync"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/sampled"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

// The conversion methods below take a colour space argument.  This space
// defines the meaning of RGB values and the white point used for grey
// values.  If it is nil, sRGB is used.

var srgb = sync.OnceValue(func() *space.Space {
	return space.NewRegistry().Must(space.NameSRGB)
})

func orSRGB(s *space.Space) *space.Space {
	if s == nil {
		return srgb()
	}
	return s
}

// SetGrey sets z to the grey value c and returns z.
func (z *Spectrum) SetGrey(c value.Grey, s *space.Space) *Spectrum {
	return FromValue(z, c, s)
}

// Grey returns the luminance of x.
func (x *Spectrum) Grey(s *space.Space) value.Grey {
	return ToValue[value.Grey](x, s)
}

// SetGreyAlpha sets z to the grey value of c, ignoring alpha, and returns z.
func (z *Spectrum) SetGreyAlpha(c value.GreyAlpha, s *space.Space) *Spectrum {
	return FromValue(z, c.Grey(), s)
}

// GreyAlpha returns the luminance of x, with alpha set to 1.
func (x *Spectrum) GreyAlpha(s *space.Space) value.GreyAlpha {
	return x.Grey(s).WithAlpha(1)
}

// SetRGB sets z to the linear RGB value c in the space s and returns z.
func (z *Spectrum) SetRGB(c value.RGB, s *space.Space) *Spectrum {
	return FromValue(z, c, s)
}

// RGB returns x as linear RGB in the space s.
func (x *Spectrum) RGB(s *space.Space) value.RGB {
	return ToValue[value.RGB](x, s)
}

// SetRGBA sets z to the colour of c, ignoring alpha, and returns z.
func (z *Spectrum) SetRGBA(c value.RGBA, s *space.Space) *Spectrum {
	return FromValue(z, c.RGB(), s)
}

// RGBA returns x as linear RGB in the space s, with alpha set to 1.
func (x *Spectrum) RGBA(s *space.Space) value.RGBA {
	return x.RGB(s).WithAlpha(1)
}

// SetXYZ sets z to the tristimulus value c and returns z.
func (z *Spectrum) SetXYZ(c value.XYZ, s *space.Space) *Spectrum {
	return FromValue(z, c, s)
}

// XYZ returns the tristimulus value of x.
func (x *Spectrum) XYZ(s *space.Space) value.XYZ {
	return ToValue[value.XYZ](x, s)
}

// SetXYZA sets z to the colour of c, ignoring alpha, and returns z.
func (z *Spectrum) SetXYZA(c value.XYZA, s *space.Space) *Spectrum {
	return FromValue(z, c.XYZ(), s)
}

// XYZA returns the tristimulus value of x, with alpha set to 1.
func (x *Spectrum) XYZA(s *space.Space) value.XYZA {
	return x.XYZ(s).WithAlpha(1)
}

// SetCurve sets z to the projection of the sampled spectrum c onto the
// representation of z, and returns z.  For spectral representations each
// channel receives the mean of c over the channel.  Otherwise, c is
// integrated against the colour-matching functions.
func (z *Spectrum) SetCurve(c sampled.Curve, s *space.Space) *Spectrum {
	z.rep.setCurve(z, c, s)
	return z
}

// ToRSS returns the channels of x as a regularly-sampled spectrum, with
// samples at the channel centres.  For the non-spectral representations an
// error wrapping [value.ErrNotSpectral] is returned.
func (x *Spectrum) ToRSS() (*sampled.RSS, error) {
	return x.rep.toRSS(x)
}

// ToPSS returns the channels of x as a point-sampled spectrum.
// The result agrees with [Spectrum.ValueAt] inside the range of the
// layout.  For the non-spectral representations an error wrapping
// [value.ErrNotSpectral] is returned.
func (x *Spectrum) ToPSS() (*sampled.PSS, error) {
	rss, err := x.ToRSS()
	if err != nil {
		return nil, err
	}
	l := x.rep.Layout()
	pts := make([]sampled.Point, 0, len(rss.Values)+2)
	pts = append(pts, sampled.Point{Lambda: l.Lower(), Value: rss.Values[0]})
	for i, v := range rss.Values {
		pts = append(pts, sampled.Point{Lambda: l.Centres[i], Value: v})
	}
	last := rss.Values[len(rss.Values)-1]
	pts = append(pts, sampled.Point{Lambda: math.Nextafter(l.Upper(), 0), Value: last})
	return sampled.NewPSS(pts, 1)
}

// FromValue sets z to the colour value v and returns z.
func FromValue[V value.Channels](z *Spectrum, v V, s *space.Space) *Spectrum {
	z.rep.setFrom(z, kindOf[V](), value.ToSlice(v), s)
	return z
}

// ToValue converts x to the colour value type V.
func ToValue[V value.Channels](x *Spectrum, s *space.Space) V {
	return value.FromSlice[V](x.rep.convertTo(x, kindOf[V](), s))
}

// FromPackedRGB sets z to the fixed-point linear RGB value p and returns z.
func FromPackedRGB[T value.Unsigned](z *Spectrum, p value.PackedRGB[T], s *space.Space) *Spectrum {
	return z.SetRGB(p.Unpack(), s)
}

// ToPackedRGB converts x to fixed-point linear RGB.
// Channels outside [0, 1] are clamped.
func ToPackedRGB[T value.Unsigned](x *Spectrum, s *space.Space) value.PackedRGB[T] {
	return value.PackRGB[T](x.RGB(s))
}

// FromPackedRGBA sets z to the colour of p, ignoring alpha, and returns z.
func FromPackedRGBA[T value.Unsigned](z *Spectrum, p value.PackedRGBA[T], s *space.Space) *Spectrum {
	return z.SetRGBA(p.Unpack(), s)
}

// ToPackedRGBA converts x to fixed-point linear RGBA, with alpha set to 1.
func ToPackedRGBA[T value.Unsigned](x *Spectrum, s *space.Space) value.PackedRGBA[T] {
	return value.PackRGBA[T](x.RGBA(s))
}

func kindOf[V value.Channels]() Kind {
	switch any((*V)(nil)).(type) {
	case *value.Grey:
		return Grey
	case *value.RGB:
		return RGB
	case *value.XYZ:
		return XYZ
	case *value.Spectrum8:
		return Spectrum8
	case *value.Spectrum11:
		return Spectrum11
	case *value.Spectrum18:
		return Spectrum18
	case *value.Spectrum46:
		return Spectrum46
	case *value.Spectrum500:
		return Spectrum500
	}
	panic("unreachable")
}

func (r *rep[V]) setFrom(z *Spectrum, k Kind, data []float64, s *space.Space) {
	*r.dst(z) = convertFrom[V](k, data, orSRGB(s))
}

func (r *rep[V]) convertTo(x *Spectrum, k Kind, s *space.Space) []float64 {
	return convertTo(k, *r.get(x), orSRGB(s))
}

func (r *rep[V]) setCurve(z *Spectrum, c sampled.Curve, s *space.Space) {
	*r.dst(z) = fromCurve[V](c, orSRGB(s))
}

func (r *rep[V]) toRSS(x *Spectrum) (*sampled.RSS, error) {
	v := *r.get(x)
	l := r.layout
	if l == nil {
		return nil, &value.OpError{Op: "convert to RSS", Type: r.kind.String(), Err: value.ErrNotSpectral}
	}
	// All built-in layouts are regular.
	return sampled.NewRSS(l.Centres[0], l.Widths[0], value.ToSlice(v), 1)
}

// convertFrom converts the channels data of a value of kind k to type D.
func convertFrom[D value.Channels](k Kind, data []float64, s *space.Space) D {
	switch k {
	case Grey:
		return convert[D](value.FromSlice[value.Grey](data), s)
	case RGB:
		return convert[D](value.FromSlice[value.RGB](data), s)
	case XYZ:
		return convert[D](value.FromSlice[value.XYZ](data), s)
	case Spectrum8:
		return convert[D](value.FromSlice[value.Spectrum8](data), s)
	case Spectrum11:
		return convert[D](value.FromSlice[value.Spectrum11](data), s)
	case Spectrum18:
		return convert[D](value.FromSlice[value.Spectrum18](data), s)
	case Spectrum46:
		return convert[D](value.FromSlice[value.Spectrum46](data), s)
	case Spectrum500:
		return convert[D](value.FromSlice[value.Spectrum500](data), s)
	}
	panic(fmt.Sprintf("isr: invalid kind %d", int(k)))
}

// convertTo converts x to a value of kind k and returns its channels.
func convertTo[S value.Channels](k Kind, x S, s *space.Space) []float64 {
	switch k {
	case Grey:
		return value.ToSlice(convert[value.Grey](x, s))
	case RGB:
		return value.ToSlice(convert[value.RGB](x, s))
	case XYZ:
		return value.ToSlice(convert[value.XYZ](x, s))
	case Spectrum8:
		return value.ToSlice(convert[value.Spectrum8](x, s))
	case Spectrum11:
		return value.ToSlice(convert[value.Spectrum11](x, s))
	case Spectrum18:
		return value.ToSlice(convert[value.Spectrum18](x, s))
	case Spectrum46:
		return value.ToSlice(convert[value.Spectrum46](x, s))
	case Spectrum500:
		return value.ToSlice(convert[value.Spectrum500](x, s))
	}
	panic(fmt.Sprintf("isr: invalid kind %d", int(k)))
}

// convert converts the colour value x to type D.
//
// Grey values map to flat spectra and to neutral RGB, RGB values map to
// spectra using Smits' method, spectra are resampled between spectral
// types, and everything else goes through XYZ.
func convert[D, S value.Channels](x S, s *space.Space) D {
	if d, ok := any(x).(D); ok {
		return d
	}
	dLayout := value.LayoutOf[D]()
	_, toRGB := any((*D)(nil)).(*value.RGB)

	switch c := any(x).(type) {
	case value.Grey:
		if dLayout != nil || toRGB {
			return value.Fill[D](c[0])
		}
	case value.RGB:
		if dLayout != nil {
			return smits[D](c)
		}
	}
	if sLayout := value.LayoutOf[S](); sLayout != nil && dLayout != nil {
		return fromCurve[D](layoutCurve{l: sLayout, v: value.ToSlice(x)}, s)
	}
	return fromXYZ[D](toXYZ(x, s), s)
}

func toXYZ[S value.Channels](x S, s *space.Space) value.XYZ {
	switch c := any(x).(type) {
	case value.Grey:
		return value.MulScalar(s.WhiteXYZ(), c[0])
	case value.RGB:
		return s.RGBToXYZ(c)
	case value.XYZ:
		return c
	}
	t := tablesFor(value.LayoutOf[S]())
	var res value.XYZ
	for i := range len(x) {
		res = value.ScaleAdd(x[i], t.xyz[i], res)
	}
	return res
}

func fromXYZ[D value.Channels](c value.XYZ, s *space.Space) D {
	var res D
	switch p := any(&res).(type) {
	case *value.Grey:
		p[0] = c[1]
	case *value.RGB:
		*p = s.XYZToRGB(c)
	case *value.XYZ:
		*p = c
	default:
		return smits[D](s.XYZToRGB(c))
	}
	return res
}

// fromCurve projects the curve c onto type D.
func fromCurve[D value.Channels](c sampled.Curve, s *space.Space) D {
	var res D
	l := value.LayoutOf[D]()
	if l == nil {
		lo, hi := c.Bounds()
		lo = math.Max(lo, cie.CMFStart)
		hi = math.Min(hi, cie.CMFEnd)
		xyz := cie.SpectrumToXYZ(func(lambda float64) float64 {
			if lambda >= hi {
				lambda = math.Nextafter(hi, 0)
			}
			return c.Eval(lambda)
		}, lo, hi, 1)
		return fromXYZ[D](value.DivScalar(xyz, cie.YIntegral), s)
	}
	for i := range len(res) {
		lo, hi := l.Bounds[i], l.Bounds[i+1]
		if hi > lo {
			res[i] = sampled.Integrate(c, lo, hi) / (hi - lo)
		} else {
			res[i] = c.Eval(lo)
		}
	}
	return res
}

// layoutCurve presents the channels of a spectral value as a
// sampled.Curve, consistent with value.ValueAt.
type layoutCurve struct {
	l *value.Layout
	v []float64
}

func (c layoutCurve) Eval(lambda float64) float64 {
	return c.l.Interpolate(func(i int) float64 { return c.v[i] }, lambda)
}

func (c layoutCurve) Bounds() (lo, hi float64) {
	return c.l.Lower(), c.l.Upper()
}

func (c layoutCurve) Breakpoints() []float64 {
	res := make([]float64, 0, len(c.l.Centres)+2)
	res = append(res, c.l.Lower())
	res = append(res, c.l.Centres...)
	return append(res, c.l.Upper())
}
