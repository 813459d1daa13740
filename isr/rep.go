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
	"sync"

	"seehuhn.de/go/spectra/sampled"
	"seehuhn.de/go/spectra/space"
	"seehuhn.de/go/spectra/value"
)

// Representation describes one concrete colour value type used as the
// internal spectral representation.  Representations are obtained using
// [For]; they cannot be implemented outside this package.
//
// A Representation is safe for concurrent use.
type Representation interface {
	// Kind returns the concrete type used by this representation.
	Kind() Kind

	// Channels returns the number of channels of each spectrum.
	Channels() int

	// Layout returns the channel layout for spectral representations,
	// and nil for Grey, RGB and XYZ.
	Layout() *value.Layout

	// New returns a new spectrum with all channels set to zero.
	// The spectrum should be returned using [Spectrum.Release] once it is
	// no longer needed.
	New() *Spectrum

	// Zero returns a read-only spectrum with all channels set to zero.
	Zero() *Spectrum

	// Unit returns a read-only spectrum with all channels set to one.
	Unit() *Spectrum

	ops
}

// ops is the dispatch table used by the methods of Spectrum.
type ops interface {
	release(z *Spectrum)
	set(z, x *Spectrum)
	fill(z *Spectrum, d float64)
	channel(x *Spectrum, i int) float64
	setChannel(z *Spectrum, i int, d float64)

	binary(z, x, y *Spectrum, op binaryOp)
	scalar(z, x *Spectrum, d float64, op scalarOp)
	unary(z, x *Spectrum, op unaryOp)
	pow(z, x *Spectrum, p float64, neg bool)
	interpol(z *Spectrum, t float64, a, b *Spectrum)
	clamp(z, x *Spectrum, lo, hi float64)
	scaleAdd(z *Spectrum, d float64, a, b *Spectrum)
	linear(z *Spectrum, d1 float64, a *Spectrum, d2 float64, b *Spectrum, d3 float64, c *Spectrum)
	reduce(x *Spectrum, op reduceOp) float64
	equal(x, y *Spectrum, tol float64, relative bool) bool

	convolve(x, y *Spectrum) (float64, error)
	valueAt(x *Spectrum, lambda float64) (float64, error)
	sampleAt(z *Spectrum, lambda, d float64) error

	check(x *Spectrum) error
	format(x *Spectrum, pairs bool) string

	setFrom(z *Spectrum, k Kind, data []float64, s *space.Space)
	convertTo(x *Spectrum, k Kind, s *space.Space) []float64
	setCurve(z *Spectrum, c sampled.Curve, s *space.Space)
	toRSS(x *Spectrum) (*sampled.RSS, error)
}

type binaryOp int

const (
	opAdd binaryOp = iota
	opSub
	opMul
	opDiv
)

type scalarOp int

const (
	opAddScalar scalarOp = iota
	opSubScalar
	opMulScalar
	opDivScalar
)

type unaryOp int

const (
	opInv unaryOp = iota
	opFastInv
	opSqrt
	opAbs
	opExp
	opNegExp
)

type reduceOp int

const (
	opMax reduceOp = iota
	opMin
	opSum
	opAvg
	opL1
	opL1Visible
	opL2
	opLInf
)

var reps = map[Kind]Representation{
	Grey:        newRep[value.Grey](Grey),
	RGB:         newRep[value.RGB](RGB),
	XYZ:         newRep[value.XYZ](XYZ),
	Spectrum8:   newRep[value.Spectrum8](Spectrum8),
	Spectrum11:  newRep[value.Spectrum11](Spectrum11),
	Spectrum18:  newRep[value.Spectrum18](Spectrum18),
	Spectrum46:  newRep[value.Spectrum46](Spectrum46),
	Spectrum500: newRep[value.Spectrum500](Spectrum500),
}

// For returns the representation for the given kind.
func For(k Kind) (Representation, error) {
	r, ok := reps[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, k)
	}
	return r, nil
}

// rep implements Representation for the value type V.
type rep[V value.Channels] struct {
	kind   Kind
	layout *value.Layout
	pool   sync.Pool
	zero   *Spectrum
	unit   *Spectrum
}

func newRep[V value.Channels](k Kind) *rep[V] {
	r := &rep[V]{
		kind:   k,
		layout: value.LayoutOf[V](),
	}
	r.pool.New = func() any { return new(V) }

	zero := value.Fill[V](0)
	unit := value.Unit[V]()
	r.zero = &Spectrum{rep: r, v: &zero, constant: true}
	r.unit = &Spectrum{rep: r, v: &unit, constant: true}
	return r
}

func (r *rep[V]) Kind() Kind            { return r.kind }
func (r *rep[V]) Channels() int         { return value.Len[V]() }
func (r *rep[V]) Layout() *value.Layout { return r.layout }
func (r *rep[V]) Zero() *Spectrum       { return r.zero }
func (r *rep[V]) Unit() *Spectrum       { return r.unit }
func (r *rep[V]) String() string        { return r.kind.String() }

func (r *rep[V]) New() *Spectrum {
	v := r.pool.Get().(*V)
	*v = value.Fill[V](0)
	return &Spectrum{rep: r, v: v}
}

// get returns the value stored in x.
// It panics if x belongs to a different representation or has been
// released.
func (r *rep[V]) get(x *Spectrum) *V {
	if x.v == nil {
		panic("isr: use of released spectrum")
	}
	if x.rep != Representation(r) {
		panic(fmt.Sprintf("isr: mixing %s and %s spectra", r.kind, x.rep.Kind()))
	}
	return x.v.(*V)
}

// dst is like get, but additionally panics if z is read-only.
func (r *rep[V]) dst(z *Spectrum) *V {
	if z.constant {
		panic("isr: modifying a read-only spectrum")
	}
	return r.get(z)
}

func (r *rep[V]) release(z *Spectrum) {
	v := r.dst(z)
	z.v = nil
	r.pool.Put(v)
}

func (r *rep[V]) set(z, x *Spectrum) {
	*r.dst(z) = *r.get(x)
}

func (r *rep[V]) fill(z *Spectrum, d float64) {
	*r.dst(z) = value.Fill[V](d)
}

func (r *rep[V]) channel(x *Spectrum, i int) float64 {
	return (*r.get(x))[i]
}

func (r *rep[V]) setChannel(z *Spectrum, i int, d float64) {
	(*r.dst(z))[i] = d
}

func (r *rep[V]) binary(z, x, y *Spectrum, op binaryOp) {
	a, b := *r.get(x), *r.get(y)
	var res V
	switch op {
	case opAdd:
		res = value.Add(a, b)
	case opSub:
		res = value.Sub(a, b)
	case opMul:
		res = value.Mul(a, b)
	case opDiv:
		res = value.Div(a, b)
	}
	*r.dst(z) = res
}

func (r *rep[V]) scalar(z, x *Spectrum, d float64, op scalarOp) {
	a := *r.get(x)
	var res V
	switch op {
	case opAddScalar:
		res = value.AddScalar(a, d)
	case opSubScalar:
		res = value.SubScalar(a, d)
	case opMulScalar:
		res = value.MulScalar(a, d)
	case opDivScalar:
		res = value.DivScalar(a, d)
	}
	*r.dst(z) = res
}

func (r *rep[V]) unary(z, x *Spectrum, op unaryOp) {
	a := *r.get(x)
	var res V
	switch op {
	case opInv:
		res = value.Inv(a)
	case opFastInv:
		res = value.FastInv(a)
	case opSqrt:
		res = value.Sqrt(a)
	case opAbs:
		res = value.Abs(a)
	case opExp:
		res = value.Exp(a)
	case opNegExp:
		res = value.NegExp(a)
	}
	*r.dst(z) = res
}

func (r *rep[V]) pow(z, x *Spectrum, p float64, neg bool) {
	a := *r.get(x)
	if neg {
		*r.dst(z) = value.NegPow(a, p)
	} else {
		*r.dst(z) = value.Pow(a, p)
	}
}

func (r *rep[V]) interpol(z *Spectrum, t float64, a, b *Spectrum) {
	*r.dst(z) = value.Interpol(t, *r.get(a), *r.get(b))
}

func (r *rep[V]) clamp(z, x *Spectrum, lo, hi float64) {
	*r.dst(z) = value.Clamp(*r.get(x), lo, hi)
}

func (r *rep[V]) scaleAdd(z *Spectrum, d float64, a, b *Spectrum) {
	*r.dst(z) = value.ScaleAdd(d, *r.get(a), *r.get(b))
}

// linear sets z to d1*a + d2*b + d3*c.  If c is nil, the third term is
// omitted.
func (r *rep[V]) linear(z *Spectrum, d1 float64, a *Spectrum, d2 float64, b *Spectrum, d3 float64, c *Spectrum) {
	var res V
	if c != nil {
		res = value.ScaleScaleScaleAdd(d1, *r.get(a), d2, *r.get(b), d3, *r.get(c))
	} else {
		res = value.ScaleScaleAdd(d1, *r.get(a), d2, *r.get(b))
	}
	*r.dst(z) = res
}

func (r *rep[V]) reduce(x *Spectrum, op reduceOp) float64 {
	a := *r.get(x)
	switch op {
	case opMax:
		return value.Max(a)
	case opMin:
		return value.Min(a)
	case opSum:
		return value.Sum(a)
	case opAvg:
		return value.Avg(a)
	case opL1:
		return value.L1Norm(a)
	case opL1Visible:
		return value.L1NormVisible(a)
	case opL2:
		return value.L2Norm(a)
	case opLInf:
		return value.LInfNorm(a)
	}
	panic("unreachable")
}

func (r *rep[V]) equal(x, y *Spectrum, tol float64, relative bool) bool {
	if relative {
		return value.EqualRel(*r.get(x), *r.get(y), tol)
	}
	return value.Equal(*r.get(x), *r.get(y), tol)
}

func (r *rep[V]) convolve(x, y *Spectrum) (float64, error) {
	return value.Convolve(*r.get(x), *r.get(y))
}

func (r *rep[V]) valueAt(x *Spectrum, lambda float64) (float64, error) {
	return value.ValueAt(*r.get(x), lambda)
}

func (r *rep[V]) sampleAt(z *Spectrum, lambda, d float64) error {
	v, err := value.SampleAt[V](lambda, d)
	if err != nil {
		return err
	}
	*r.dst(z) = v
	return nil
}

func (r *rep[V]) check(x *Spectrum) error {
	return value.Check(*r.get(x))
}

func (r *rep[V]) format(x *Spectrum, pairs bool) string {
	if pairs {
		return value.FormatPairs(*r.get(x))
	}
	return value.Format(*r.get(x))
}
