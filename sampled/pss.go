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

package sampled

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Point is one vertex of a point-sampled spectrum.
type Point struct {
	Lambda float64
	Value  float64
}

// PSS is a point-sampled spectrum: a piecewise linear curve through a
// list of vertices, sorted by wavelength.  The curve is zero outside the
// range of the vertices.
type PSS struct {
	Points []Point

	// Scale is applied to all values when the curve is read.
	Scale float64
}

// NewPSS returns a point-sampled spectrum with the given vertices.
// The vertices are multiplied by 1/max when the curve is read, so that max
// is the declared maximum of the data.  Wavelengths must be strictly
// increasing.
func NewPSS(points []Point, max float64) (*PSS, error) {
	if len(points) == 0 {
		return nil, errors.New("PSS: no vertices")
	}
	if !(max > 0) {
		return nil, fmt.Errorf("PSS: invalid maximum %g", max)
	}
	for i := 1; i < len(points); i++ {
		if !(points[i].Lambda > points[i-1].Lambda) {
			return nil, fmt.Errorf("PSS: vertex %d out of order", i)
		}
	}
	return &PSS{Points: points, Scale: 1 / max}, nil
}

// Len returns the number of vertices.
func (p *PSS) Len() int {
	return len(p.Points)
}

// Bounds implements the [Curve] interface.
func (p *PSS) Bounds() (lo, hi float64) {
	return p.Points[0].Lambda, p.Points[len(p.Points)-1].Lambda
}

// Breakpoints implements the [Curve] interface.
func (p *PSS) Breakpoints() []float64 {
	res := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		res[i] = pt.Lambda
	}
	return res
}

// Eval implements the [Curve] interface.
func (p *PSS) Eval(lambda float64) float64 {
	pts := p.Points
	n := len(pts)
	if n == 0 || !(lambda >= pts[0].Lambda && lambda <= pts[n-1].Lambda) {
		return 0
	}
	k := sort.Search(n, func(i int) bool { return pts[i].Lambda > lambda })
	if k == n {
		return clip(pts[n-1].Value) * p.Scale
	}
	a, b := pts[k-1], pts[k]
	t := (lambda - a.Lambda) / (b.Lambda - a.Lambda)
	return clip(a.Value+t*(b.Value-a.Value)) * p.Scale
}

// Integrate returns the integral of the curve over [lo, hi].
func (p *PSS) Integrate(lo, hi float64) float64 {
	return Integrate(p, lo, hi)
}

// Inner returns the inner product of p with another curve.
func (p *PSS) Inner(other Curve) float64 {
	return Inner(p, other)
}

// Max returns the largest value of the curve.
func (p *PSS) Max() float64 {
	var m float64
	for _, pt := range p.Points {
		m = math.Max(m, pt.Value)
	}
	return m * p.Scale
}

// Check verifies that p is well formed.  Malformed spectra can still be
// evaluated; it is up to the caller to decide whether the problem is fatal.
func (p *PSS) Check() error {
	if len(p.Points) == 0 {
		return errors.New("PSS: no vertices")
	}
	if err := checkScale("PSS", p.Scale); err != nil {
		return err
	}
	values := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		if math.IsNaN(pt.Lambda) || math.IsInf(pt.Lambda, 0) {
			return fmt.Errorf("PSS: vertex %d has invalid wavelength", i)
		}
		if i > 0 && !(pt.Lambda > p.Points[i-1].Lambda) {
			return fmt.Errorf("PSS: vertex %d out of order", i)
		}
		values[i] = pt.Value
	}
	return checkSamples("PSS", values)
}

// Release frees the vertex buffer.  The spectrum must not be used afterwards.
func (p *PSS) Release() {
	p.Points = nil
}
