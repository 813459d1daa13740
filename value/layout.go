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
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// VisibleStart is the shortest wavelength (in nm) counted as visible light.
const VisibleStart = 380.0

// Layout describes the channels of a spectral colour value type.
// Channel i covers the wavelength interval [Bounds[i], Bounds[i+1]).
// All wavelengths are given in nanometres.
type Layout struct {
	Name    string
	Bounds  []float64
	Centres []float64
	Widths  []float64

	// Weights are the per-channel integration weights used by [Convolve].
	// A zero-width channel has weight 0.
	Weights []float64

	// FirstVisible is the index of the first channel which lies completely
	// inside the visible range.
	FirstVisible int
}

// NewLayout returns a channel layout with the given channel boundaries.
// The boundaries must be finite and non-decreasing; channels of width zero
// are allowed but are ignored by [Convolve], and a warning is logged.
func NewLayout(name string, bounds []float64) (*Layout, error) {
	if len(bounds) < 2 {
		return nil, errors.New("spectral layout needs at least one channel")
	}
	n := len(bounds) - 1
	l := &Layout{
		Name:         name,
		Bounds:       bounds,
		Centres:      make([]float64, n),
		Widths:       make([]float64, n),
		Weights:      make([]float64, n),
		FirstVisible: n,
	}
	for i := range n {
		lo, hi := bounds[i], bounds[i+1]
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
			return nil, fmt.Errorf("%s: channel %d has non-finite bounds", name, i)
		}
		if hi < lo {
			return nil, fmt.Errorf("%s: channel %d has negative width", name, i)
		}
		l.Centres[i] = (lo + hi) / 2
		l.Widths[i] = hi - lo
		if l.Widths[i] == 0 {
			slog.Warn("zero-width spectral channel, weight set to 0",
				"layout", name, "channel", i, "wavelength", lo)
		} else {
			l.Weights[i] = l.Widths[i]
		}
		if lo >= VisibleStart-1e-9 && l.FirstVisible == n {
			l.FirstVisible = i
		}
	}
	return l, nil
}

// Regular returns a layout of n channels of equal width, starting at start.
func Regular(name string, start, width float64, n int) *Layout {
	bounds := make([]float64, n+1)
	for i := range bounds {
		bounds[i] = start + float64(i)*width
	}
	l, err := NewLayout(name, bounds)
	if err != nil {
		panic(err)
	}
	return l
}

// Channels returns the number of channels.
func (l *Layout) Channels() int {
	return len(l.Centres)
}

// Lower returns the lower end of the wavelength range covered by l.
func (l *Layout) Lower() float64 {
	return l.Bounds[0]
}

// Upper returns the upper end of the wavelength range covered by l.
func (l *Layout) Upper() float64 {
	return l.Bounds[len(l.Bounds)-1]
}

// Index returns the channel which contains the wavelength lambda,
// or -1 if lambda is outside the range of the layout.
func (l *Layout) Index(lambda float64) int {
	if !(lambda >= l.Lower() && lambda < l.Upper()) {
		return -1
	}
	lo, hi := 0, l.Channels()
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if l.Bounds[mid] <= lambda {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Interpolate evaluates the piecewise linear curve through the points
// (Centres[i], get(i)) at lambda.  Between the outer channel bounds and the
// outermost centres the curve is constant.  Outside the range of the layout
// the result is zero.
func (l *Layout) Interpolate(get func(int) float64, lambda float64) float64 {
	i0, w0, i1, w1 := l.Split(lambda)
	if i0 < 0 {
		return 0
	}
	res := w0 * get(i0)
	if i1 >= 0 {
		res += w1 * get(i1)
	}
	return res
}

// Split returns the channels and linear weights used to represent the
// wavelength lambda.  If lambda is outside the layout, i0 is -1.  If only
// one channel is needed, i1 is -1.
func (l *Layout) Split(lambda float64) (i0 int, w0 float64, i1 int, w1 float64) {
	if l.Index(lambda) < 0 {
		return -1, 0, -1, 0
	}
	n := l.Channels()
	if lambda <= l.Centres[0] {
		return 0, 1, -1, 0
	}
	if lambda >= l.Centres[n-1] {
		return n - 1, 1, -1, 0
	}
	k := l.Index(lambda)
	if lambda < l.Centres[k] {
		k--
	}
	// Now Centres[k] <= lambda < Centres[k+1].
	d := l.Centres[k+1] - l.Centres[k]
	if d <= 0 {
		return k, 1, -1, 0
	}
	t := (lambda - l.Centres[k]) / d
	return k, 1 - t, k + 1, t
}

var (
	layout8   = Regular("Spectrum8", 380, 50, 8)
	layout11  = Regular("Spectrum11", 400, 30, 11)
	layout18  = Regular("Spectrum18", 380, 20, 18)
	layout46  = Regular("Spectrum46", 360, 10, 46)
	layout500 = Regular("Spectrum500", 360, 1, 500)
)

// LayoutOf returns the channel layout of the spectral type V.
// For the non-spectral types Grey, RGB and XYZ the result is nil.
func LayoutOf[V Channels]() *Layout {
	switch any((*V)(nil)).(type) {
	case *Spectrum8:
		return layout8
	case *Spectrum11:
		return layout11
	case *Spectrum18:
		return layout18
	case *Spectrum46:
		return layout46
	case *Spectrum500:
		return layout500
	}
	return nil
}

// FirstVisible returns the index of the first visible channel of V.
// For non-spectral types this is 0.
func FirstVisible[V Channels]() int {
	if l := LayoutOf[V](); l != nil {
		return l.FirstVisible
	}
	return 0
}
