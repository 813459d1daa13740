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
)

// RSS is a regularly-sampled spectrum.  Sample i is located at wavelength
// Start + i*Step; between samples the curve is interpolated linearly, and
// after the last sample the curve stays constant up to the end of the
// domain [Start, Start+Step*len(Values)).
type RSS struct {
	Start  float64
	Step   float64
	Scale  float64
	Values []float64
}

// NewRSS returns a regularly-sampled spectrum.
// The values are multiplied by 1/max when the curve is read.
func NewRSS(start, step float64, values []float64, max float64) (*RSS, error) {
	r := &RSS{Start: start, Step: step, Values: values}
	if max > 0 {
		r.Scale = 1 / max
	}
	if len(values) == 0 {
		return nil, errors.New("RSS: no samples")
	}
	if !(step > 0) {
		return nil, fmt.Errorf("RSS: invalid step %g", step)
	}
	if err := checkScale("RSS", r.Scale); err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of samples.
func (r *RSS) Len() int {
	return len(r.Values)
}

// Bounds implements the [Curve] interface.
func (r *RSS) Bounds() (lo, hi float64) {
	return r.Start, r.Start + r.Step*float64(len(r.Values))
}

// Breakpoints implements the [Curve] interface.
func (r *RSS) Breakpoints() []float64 {
	res := make([]float64, len(r.Values))
	for i := range res {
		res[i] = r.Start + float64(i)*r.Step
	}
	return res
}

// At returns the value of the spectrum at lambda.
// If lambda is outside the domain of r, an error wrapping [ErrOutOfDomain]
// is returned.
func (r *RSS) At(lambda float64) (float64, error) {
	lo, hi := r.Bounds()
	if !(lambda >= lo && lambda < hi) {
		return 0, fmt.Errorf("RSS: %w: %g nm not in [%g, %g)", ErrOutOfDomain, lambda, lo, hi)
	}
	return r.Eval(lambda), nil
}

// Eval implements the [Curve] interface.
func (r *RSS) Eval(lambda float64) float64 {
	lo, hi := r.Bounds()
	if !(lambda >= lo && lambda < hi) {
		return 0
	}
	pos := (lambda - r.Start) / r.Step
	i := int(pos)
	n := len(r.Values)
	if i >= n-1 {
		return clip(r.Values[n-1]) * r.Scale
	}
	t := pos - float64(i)
	v := r.Values[i] + t*(r.Values[i+1]-r.Values[i])
	return clip(v) * r.Scale
}

// Integrate returns the integral of the curve over [lo, hi].
func (r *RSS) Integrate(lo, hi float64) float64 {
	return Integrate(r, lo, hi)
}

// Inner returns the inner product of r with another curve.
func (r *RSS) Inner(other Curve) float64 {
	return Inner(r, other)
}

// Max returns the largest value of the curve.
func (r *RSS) Max() float64 {
	var m float64
	for _, v := range r.Values {
		m = math.Max(m, v)
	}
	return m * r.Scale
}

// ToPSS converts r to a point-sampled spectrum with the same values.
func (r *RSS) ToPSS() *PSS {
	n := len(r.Values)
	pts := make([]Point, n, n+1)
	for i, v := range r.Values {
		pts[i] = Point{Lambda: r.Start + float64(i)*r.Step, Value: v}
	}
	// keep the constant piece after the last sample
	_, hi := r.Bounds()
	pts = append(pts, Point{Lambda: math.Nextafter(hi, math.Inf(-1)), Value: r.Values[n-1]})
	return &PSS{Points: pts, Scale: r.Scale}
}

// Check verifies that r is well formed.
func (r *RSS) Check() error {
	if len(r.Values) == 0 {
		return errors.New("RSS: no samples")
	}
	if !(r.Step > 0) || math.IsInf(r.Step, 0) {
		return fmt.Errorf("RSS: invalid step %g", r.Step)
	}
	if math.IsNaN(r.Start) || math.IsInf(r.Start, 0) {
		return fmt.Errorf("RSS: invalid start %g", r.Start)
	}
	if err := checkScale("RSS", r.Scale); err != nil {
		return err
	}
	return checkSamples("RSS", r.Values)
}

// Release frees the sample buffer.  The spectrum must not be used afterwards.
func (r *RSS) Release() {
	r.Values = nil
}

// RSS2D is a regularly-sampled two-dimensional spectrum, describing the
// re-radiation of a fluorescent material.  Values holds ExcitationSize rows
// of EmissionSize samples each; row i belongs to the excitation wavelength
// ExcitationStart + i*ExcitationStep.
type RSS2D struct {
	ExcitationStart float64
	ExcitationStep  float64
	ExcitationSize  int

	EmissionStart float64
	EmissionStep  float64
	EmissionSize  int

	Scale  float64
	Values []float64
}

// NewRSS2D returns a new two-dimensional spectrum.
func NewRSS2D(excStart, excStep float64, excSize int, emStart, emStep float64, emSize int, values []float64, max float64) (*RSS2D, error) {
	r := &RSS2D{
		ExcitationStart: excStart,
		ExcitationStep:  excStep,
		ExcitationSize:  excSize,
		EmissionStart:   emStart,
		EmissionStep:    emStep,
		EmissionSize:    emSize,
		Values:          values,
	}
	if max > 0 {
		r.Scale = 1 / max
	}
	if excSize <= 0 || emSize <= 0 {
		return nil, errors.New("RSS2D: empty grid")
	}
	if !(excStep > 0) || !(emStep > 0) {
		return nil, errors.New("RSS2D: invalid step")
	}
	if len(values) != excSize*emSize {
		return nil, fmt.Errorf("RSS2D: expected %d samples, got %d", excSize*emSize, len(values))
	}
	if err := checkScale("RSS2D", r.Scale); err != nil {
		return nil, err
	}
	return r, nil
}

// Emission returns the emission spectrum for the given excitation
// wavelength, interpolated linearly between the rows of the grid.
func (r *RSS2D) Emission(excitation float64) (*RSS, error) {
	i, t, err := r.excitationPos(excitation)
	if err != nil {
		return nil, err
	}
	row := make([]float64, r.EmissionSize)
	for j := range row {
		v := r.Values[i*r.EmissionSize+j]
		if t > 0 {
			v += t * (r.Values[(i+1)*r.EmissionSize+j] - v)
		}
		row[j] = v
	}
	return &RSS{
		Start:  r.EmissionStart,
		Step:   r.EmissionStep,
		Scale:  r.Scale,
		Values: row,
	}, nil
}

// At returns the value at the given excitation and emission wavelengths.
// Errors wrap [ErrOutOfDomain].
func (r *RSS2D) At(excitation, emission float64) (float64, error) {
	row, err := r.Emission(excitation)
	if err != nil {
		return 0, err
	}
	v, err := row.At(emission)
	if err != nil {
		return 0, fmt.Errorf("RSS2D emission: %w", err)
	}
	return v, nil
}

func (r *RSS2D) excitationPos(excitation float64) (int, float64, error) {
	lo := r.ExcitationStart
	hi := lo + r.ExcitationStep*float64(r.ExcitationSize)
	if !(excitation >= lo && excitation < hi) {
		return 0, 0, fmt.Errorf("RSS2D excitation: %w: %g nm not in [%g, %g)",
			ErrOutOfDomain, excitation, lo, hi)
	}
	pos := (excitation - lo) / r.ExcitationStep
	i := int(pos)
	if i >= r.ExcitationSize-1 {
		return r.ExcitationSize - 1, 0, nil
	}
	return i, pos - float64(i), nil
}

// Check verifies that r is well formed.
func (r *RSS2D) Check() error {
	if r.ExcitationSize <= 0 || r.EmissionSize <= 0 {
		return errors.New("RSS2D: empty grid")
	}
	if !(r.ExcitationStep > 0) || !(r.EmissionStep > 0) {
		return errors.New("RSS2D: invalid step")
	}
	if len(r.Values) != r.ExcitationSize*r.EmissionSize {
		return fmt.Errorf("RSS2D: expected %d samples, got %d",
			r.ExcitationSize*r.EmissionSize, len(r.Values))
	}
	if err := checkScale("RSS2D", r.Scale); err != nil {
		return err
	}
	return checkSamples("RSS2D", r.Values)
}

// Release frees the sample buffer.  The spectrum must not be used afterwards.
func (r *RSS2D) Release() {
	r.Values = nil
}
