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
	"math"
	"sync"

	"seehuhn.de/go/spectra/cie"
	"seehuhn.de/go/spectra/value"
)

// Smits' basis spectra for converting RGB to spectra, from Brian Smits,
// "An RGB-to-spectrum conversion for reflectances", 1999.  The ten bins
// cover 380nm to 720nm in equal steps.
const (
	smitsStart = 380.0
	smitsStep  = 34.0
)

const (
	basisWhite = iota
	basisCyan
	basisMagenta
	basisYellow
	basisRed
	basisGreen
	basisBlue
	numBasis
)

var smitsBasis = [numBasis][10]float64{
	basisWhite:   {1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	basisCyan:    {0.9710, 0.9426, 1.0007, 1.0007, 1.0007, 1.0007, 0.1564, 0, 0, 0},
	basisMagenta: {1, 1, 0.9685, 0.2229, 0, 0.0458, 0.8369, 1, 1, 0.9959},
	basisYellow:  {0.0001, 0, 0.1088, 0.6651, 1, 1, 0.9996, 0.9586, 0.9685, 0.9840},
	basisRed:     {0.1012, 0.0515, 0, 0, 0, 0, 0.8325, 1.0149, 1.0149, 1.0149},
	basisGreen:   {0, 0, 0.0273, 0.7937, 1, 0.9418, 0.1719, 0, 0, 0.0025},
	basisBlue:    {1, 1, 0.8916, 0.3323, 0, 0, 0.0003, 0.0369, 0.0483, 0.0496},
}

// layoutTables holds precomputed data for one spectral layout.
type layoutTables struct {
	// xyz[i] is the contribution of a unit value in channel i to the
	// tristimulus values, normalised so that a constant unit spectrum
	// has luminance close to 1.
	xyz []value.XYZ

	// basis[k][i] is the mean of Smits' basis spectrum k over channel i.
	basis [numBasis][]float64
}

var tableCache sync.Map // *value.Layout -> *layoutTables

func tablesFor(l *value.Layout) *layoutTables {
	if t, ok := tableCache.Load(l); ok {
		return t.(*layoutTables)
	}
	t, _ := tableCache.LoadOrStore(l, computeTables(l))
	return t.(*layoutTables)
}

func computeTables(l *value.Layout) *layoutTables {
	n := l.Channels()
	t := &layoutTables{xyz: make([]value.XYZ, n)}
	for k := range t.basis {
		t.basis[k] = make([]float64, n)
	}
	one := func(float64) float64 { return 1 }
	for i := range n {
		lo, hi := l.Bounds[i], l.Bounds[i+1]
		if hi > lo {
			c := cie.SpectrumToXYZ(one, lo, hi, math.Min(1, (hi-lo)/4))
			t.xyz[i] = value.DivScalar(c, cie.YIntegral)
		}
		for k := range t.basis {
			t.basis[k][i] = binMean(&smitsBasis[k], lo, hi)
		}
	}
	return t
}

// binMean returns the mean of the step function given by bins over
// [lo, hi].  The first and last bins extend to infinity.
func binMean(bins *[10]float64, lo, hi float64) float64 {
	n := len(bins)
	binOf := func(lambda float64) int {
		k := int(math.Floor((lambda - smitsStart) / smitsStep))
		return min(max(k, 0), n-1)
	}
	if !(hi > lo) {
		return bins[binOf(lo)]
	}
	var sum float64
	for k := binOf(lo); k <= binOf(hi); k++ {
		bLo := smitsStart + float64(k)*smitsStep
		bHi := bLo + smitsStep
		if k == 0 {
			bLo = math.Inf(-1)
		}
		if k == n-1 {
			bHi = math.Inf(+1)
		}
		w := math.Min(hi, bHi) - math.Max(lo, bLo)
		if w > 0 {
			sum += w * bins[k]
		}
	}
	return sum / (hi - lo)
}

// smits converts linear RGB to a spectrum of type V, using Smits'
// algorithm.  The white basis spectrum is constant, so that grey values map
// to flat spectra.
func smits[V value.Channels](c value.RGB) V {
	t := tablesFor(value.LayoutOf[V]())
	r, g, b := c[0], c[1], c[2]

	var res V
	add := func(d float64, k int) {
		if d == 0 {
			return
		}
		for i := range len(res) {
			res[i] += d * t.basis[k][i]
		}
	}
	switch {
	case r <= g && r <= b:
		add(r, basisWhite)
		if g <= b {
			add(g-r, basisCyan)
			add(b-g, basisBlue)
		} else {
			add(b-r, basisCyan)
			add(g-b, basisGreen)
		}
	case g <= r && g <= b:
		add(g, basisWhite)
		if r <= b {
			add(r-g, basisMagenta)
			add(b-r, basisBlue)
		} else {
			add(b-g, basisMagenta)
			add(r-b, basisRed)
		}
	default:
		add(b, basisWhite)
		if r <= g {
			add(r-b, basisYellow)
			add(g-r, basisGreen)
		} else {
			add(g-b, basisYellow)
			add(r-g, basisRed)
		}
	}
	return res
}
