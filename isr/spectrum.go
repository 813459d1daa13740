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

// Spectrum is a colour value in one of the internal spectral
// representations.  Spectra are allocated by [Representation.New].
//
// The arithmetic methods follow the conventions of math/big: the receiver
// z holds the result and is returned, so that calls can be chained.
// Operands may alias the receiver.  All spectra involved in one call must
// belong to the same representation; mixing representations, modifying
// the read-only spectra returned by Zero and Unit, or using a spectrum
// after [Spectrum.Release] are programming errors and cause a panic.
//
// Distinct spectra can be used concurrently, but a single spectrum must
// not be modified concurrently.
type Spectrum struct {
	rep      Representation
	v        any // *V, nil after Release
	constant bool
}

// Representation returns the representation which z belongs to.
func (z *Spectrum) Representation() Representation {
	return z.rep
}

// Channels returns the number of channels of z.
func (z *Spectrum) Channels() int {
	return z.rep.Channels()
}

// Release returns the storage of z to its representation.
// The spectrum must not be used afterwards.
func (z *Spectrum) Release() {
	z.rep.release(z)
}

// Clone returns a new spectrum with the same value as x.
func (x *Spectrum) Clone() *Spectrum {
	z := x.rep.New()
	x.rep.set(z, x)
	return z
}

// Set sets z to x and returns z.
func (z *Spectrum) Set(x *Spectrum) *Spectrum {
	z.rep.set(z, x)
	return z
}

// SetFloat sets all channels of z to d and returns z.
func (z *Spectrum) SetFloat(d float64) *Spectrum {
	z.rep.fill(z, d)
	return z
}

// Channel returns channel i of x.
func (x *Spectrum) Channel(i int) float64 {
	return x.rep.channel(x, i)
}

// SetChannel sets channel i of z to d and returns z.
func (z *Spectrum) SetChannel(i int, d float64) *Spectrum {
	z.rep.setChannel(z, i, d)
	return z
}

// Add sets z to x+y and returns z.
func (z *Spectrum) Add(x, y *Spectrum) *Spectrum {
	z.rep.binary(z, x, y, opAdd)
	return z
}

// Sub sets z to x-y and returns z.
func (z *Spectrum) Sub(x, y *Spectrum) *Spectrum {
	z.rep.binary(z, x, y, opSub)
	return z
}

// Mul sets z to the channel-wise product x*y and returns z.
func (z *Spectrum) Mul(x, y *Spectrum) *Spectrum {
	z.rep.binary(z, x, y, opMul)
	return z
}

// Div sets z to the channel-wise quotient x/y and returns z.
// Division by zero follows [value.SafeDiv].
func (z *Spectrum) Div(x, y *Spectrum) *Spectrum {
	z.rep.binary(z, x, y, opDiv)
	return z
}

// AddScalar sets z to x+d and returns z.
func (z *Spectrum) AddScalar(x *Spectrum, d float64) *Spectrum {
	z.rep.scalar(z, x, d, opAddScalar)
	return z
}

// SubScalar sets z to x-d and returns z.
func (z *Spectrum) SubScalar(x *Spectrum, d float64) *Spectrum {
	z.rep.scalar(z, x, d, opSubScalar)
	return z
}

// MulScalar sets z to d*x and returns z.
func (z *Spectrum) MulScalar(x *Spectrum, d float64) *Spectrum {
	z.rep.scalar(z, x, d, opMulScalar)
	return z
}

// DivScalar sets z to x/d and returns z.
func (z *Spectrum) DivScalar(x *Spectrum, d float64) *Spectrum {
	z.rep.scalar(z, x, d, opDivScalar)
	return z
}

// Inv sets z to the channel-wise reciprocal of x and returns z.
func (z *Spectrum) Inv(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opInv)
	return z
}

// FastInv is like Inv, but uses a reduced-precision reciprocal.
func (z *Spectrum) FastInv(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opFastInv)
	return z
}

// Sqrt sets z to the channel-wise square root of x and returns z.
func (z *Spectrum) Sqrt(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opSqrt)
	return z
}

// Abs sets z to the channel-wise absolute value of x and returns z.
func (z *Spectrum) Abs(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opAbs)
	return z
}

// Exp sets z to exp(x) and returns z.
func (z *Spectrum) Exp(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opExp)
	return z
}

// NegExp sets z to exp(-x) and returns z.
func (z *Spectrum) NegExp(x *Spectrum) *Spectrum {
	z.rep.unary(z, x, opNegExp)
	return z
}

// Pow sets z to x^p and returns z.
func (z *Spectrum) Pow(x *Spectrum, p float64) *Spectrum {
	z.rep.pow(z, x, p, false)
	return z
}

// NegPow sets z to x^(-p) and returns z.
func (z *Spectrum) NegPow(x *Spectrum, p float64) *Spectrum {
	z.rep.pow(z, x, p, true)
	return z
}

// Interpol sets z to (1-t)*a + t*b and returns z.
func (z *Spectrum) Interpol(t float64, a, b *Spectrum) *Spectrum {
	z.rep.interpol(z, t, a, b)
	return z
}

// Clamp limits all channels of x to [lo, hi], stores the result in z and
// returns z.
func (z *Spectrum) Clamp(x *Spectrum, lo, hi float64) *Spectrum {
	z.rep.clamp(z, x, lo, hi)
	return z
}

// ScaleAdd sets z to d*a + b and returns z.
func (z *Spectrum) ScaleAdd(d float64, a, b *Spectrum) *Spectrum {
	z.rep.scaleAdd(z, d, a, b)
	return z
}

// ScaleScaleAdd sets z to d1*a + d2*b and returns z.
func (z *Spectrum) ScaleScaleAdd(d1 float64, a *Spectrum, d2 float64, b *Spectrum) *Spectrum {
	z.rep.linear(z, d1, a, d2, b, 0, nil)
	return z
}

// ScaleScaleScaleAdd sets z to d1*a + d2*b + d3*c and returns z.
func (z *Spectrum) ScaleScaleScaleAdd(d1 float64, a *Spectrum, d2 float64, b *Spectrum, d3 float64, c *Spectrum) *Spectrum {
	z.rep.linear(z, d1, a, d2, b, d3, c)
	return z
}

// Max returns the largest channel value of x.
func (x *Spectrum) Max() float64 { return x.rep.reduce(x, opMax) }

// Min returns the smallest channel value of x.
func (x *Spectrum) Min() float64 { return x.rep.reduce(x, opMin) }

// Sum returns the sum of all channels of x.
func (x *Spectrum) Sum() float64 { return x.rep.reduce(x, opSum) }

// Avg returns the mean channel value of x.
func (x *Spectrum) Avg() float64 { return x.rep.reduce(x, opAvg) }

// L1Norm returns the sum of the absolute channel values of x.
func (x *Spectrum) L1Norm() float64 { return x.rep.reduce(x, opL1) }

// L1NormVisible is like L1Norm, but ignores channels below the visible
// range.
func (x *Spectrum) L1NormVisible() float64 { return x.rep.reduce(x, opL1Visible) }

// L2Norm returns the Euclidean norm of x.
func (x *Spectrum) L2Norm() float64 { return x.rep.reduce(x, opL2) }

// LInfNorm returns the largest absolute channel value of x.
func (x *Spectrum) LInfNorm() float64 { return x.rep.reduce(x, opLInf) }

// Equal reports whether all channels of x and y differ by at most tol.
func (x *Spectrum) Equal(y *Spectrum, tol float64) bool {
	return x.rep.equal(x, y, tol, false)
}

// EqualRel reports whether all channels of x and y agree up to the
// relative tolerance rel.
func (x *Spectrum) EqualRel(y *Spectrum, rel float64) bool {
	return x.rep.equal(x, y, rel, true)
}

// Convolve returns the integral of the product of x and y over all
// wavelengths.  For the non-spectral representations an error wrapping
// [value.ErrNotSpectral] is returned.
func (x *Spectrum) Convolve(y *Spectrum) (float64, error) {
	return x.rep.convolve(x, y)
}

// ValueAt returns the value of the spectrum x at the wavelength lambda
// (in nm).  For the non-spectral representations an error wrapping
// [value.ErrNotSpectral] is returned.
func (x *Spectrum) ValueAt(lambda float64) (float64, error) {
	return x.rep.valueAt(x, lambda)
}

// SetSampleAt sets z to a spectrum which is zero everywhere except near
// the wavelength lambda, with total value d.  For the non-spectral
// representations an error wrapping [value.ErrNotSpectral] is returned
// and z is unchanged.
func (z *Spectrum) SetSampleAt(lambda, d float64) error {
	return z.rep.sampleAt(z, lambda, d)
}

// Check returns an error if any channel of x is NaN or infinite.
func (x *Spectrum) Check() error {
	return x.rep.check(x)
}

// Valid reports whether all channels of x are finite.
func (x *Spectrum) Valid() bool {
	return x.Check() == nil
}

// String returns a human-readable representation of x.
func (x *Spectrum) String() string {
	if x.v == nil {
		return "<released spectrum>"
	}
	return x.rep.format(x, false)
}

// FormatPairs returns x as a list of (wavelength, value) pairs.
// See [value.FormatPairs].
func (x *Spectrum) FormatPairs() string {
	return x.rep.format(x, true)
}
