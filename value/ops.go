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

import "math"

// Add returns the channel-wise sum a+b.
func Add[V Channels](a, b V) V {
	for i := range len(a) {
		a[i] += b[i]
	}
	return a
}

// Sub returns the channel-wise difference a-b.
func Sub[V Channels](a, b V) V {
	for i := range len(a) {
		a[i] -= b[i]
	}
	return a
}

// Mul returns the channel-wise product a*b.
func Mul[V Channels](a, b V) V {
	for i := range len(a) {
		a[i] *= b[i]
	}
	return a
}

// Div returns the channel-wise quotient a/b, using [SafeDiv].
func Div[V Channels](a, b V) V {
	for i := range len(a) {
		a[i] = SafeDiv(a[i], b[i])
	}
	return a
}

// AddScalar adds d to every channel of a.
func AddScalar[V Channels](a V, d float64) V {
	for i := range len(a) {
		a[i] += d
	}
	return a
}

// SubScalar subtracts d from every channel of a.
func SubScalar[V Channels](a V, d float64) V {
	for i := range len(a) {
		a[i] -= d
	}
	return a
}

// MulScalar multiplies every channel of a by d.
func MulScalar[V Channels](a V, d float64) V {
	for i := range len(a) {
		a[i] *= d
	}
	return a
}

// DivScalar divides every channel of a by d, using [SafeDiv].
func DivScalar[V Channels](a V, d float64) V {
	for i := range len(a) {
		a[i] = SafeDiv(a[i], d)
	}
	return a
}

// Max returns the largest channel value.
func Max[V Channels](a V) float64 {
	m := a[0]
	for i := 1; i < len(a); i++ {
		if a[i] > m {
			m = a[i]
		}
	}
	return m
}

// Min returns the smallest channel value.
func Min[V Channels](a V) float64 {
	m := a[0]
	for i := 1; i < len(a); i++ {
		if a[i] < m {
			m = a[i]
		}
	}
	return m
}

// Sum returns the sum of all channels.
func Sum[V Channels](a V) float64 {
	var s float64
	for i := range len(a) {
		s += a[i]
	}
	return s
}

// Avg returns the mean channel value.
func Avg[V Channels](a V) float64 {
	return Sum(a) / float64(len(a))
}

// L1Norm returns the sum of the absolute channel values.
func L1Norm[V Channels](a V) float64 {
	var s float64
	for i := range len(a) {
		s += math.Abs(a[i])
	}
	return s
}

// L1NormVisible returns the sum of the absolute values of the channels
// starting at the first visible channel.
func L1NormVisible[V Channels](a V) float64 {
	var s float64
	for i := FirstVisible[V](); i < len(a); i++ {
		s += math.Abs(a[i])
	}
	return s
}

// L2Norm returns the Euclidean norm of the channel vector.
func L2Norm[V Channels](a V) float64 {
	var s float64
	for i := range len(a) {
		s = math.FMA(a[i], a[i], s)
	}
	return math.Sqrt(s)
}

// LInfNorm returns the largest absolute channel value.
func LInfNorm[V Channels](a V) float64 {
	var m float64
	for i := range len(a) {
		m = math.Max(m, math.Abs(a[i]))
	}
	return m
}

// Inv returns the channel-wise reciprocal 1/a, using [SafeDiv].
func Inv[V Channels](a V) V {
	for i := range len(a) {
		a[i] = SafeDiv(1, a[i])
	}
	return a
}

// FastInv returns the channel-wise reciprocal, computed in single precision.
// Zero channels are treated as in [SafeDiv].
func FastInv[V Channels](a V) V {
	for i := range len(a) {
		if a[i] == 0 {
			a[i] = SafeDiv(1, 0)
			continue
		}
		a[i] = float64(1 / float32(a[i]))
	}
	return a
}

// Sqrt returns the channel-wise square root.
func Sqrt[V Channels](a V) V {
	for i := range len(a) {
		a[i] = math.Sqrt(a[i])
	}
	return a
}

// Abs returns the channel-wise absolute value.
func Abs[V Channels](a V) V {
	for i := range len(a) {
		a[i] = math.Abs(a[i])
	}
	return a
}

// Exp returns the channel-wise exponential e^a.
func Exp[V Channels](a V) V {
	for i := range len(a) {
		a[i] = math.Exp(a[i])
	}
	return a
}

// NegExp returns the channel-wise exponential e^(-a).
func NegExp[V Channels](a V) V {
	for i := range len(a) {
		a[i] = math.Exp(-a[i])
	}
	return a
}

// Pow returns the channel-wise power a^p.
func Pow[V Channels](a V, p float64) V {
	for i := range len(a) {
		a[i] = math.Pow(a[i], p)
	}
	return a
}

// NegPow returns the channel-wise power a^(-p).
func NegPow[V Channels](a V, p float64) V {
	for i := range len(a) {
		a[i] = math.Pow(a[i], -p)
	}
	return a
}

// Interpol returns a + t*(b-a), computed channel by channel.
func Interpol[V Channels](t float64, a, b V) V {
	for i := range len(a) {
		a[i] = math.FMA(t, b[i]-a[i], a[i])
	}
	return a
}

// Clamp limits every channel of a to the interval [lo, hi].
func Clamp[V Channels](a V, lo, hi float64) V {
	for i := range len(a) {
		if a[i] < lo {
			a[i] = lo
		} else if a[i] > hi {
			a[i] = hi
		}
	}
	return a
}

// ScaleAdd returns d*a + b with a fused multiply-add per channel.
func ScaleAdd[V Channels](d float64, a, b V) V {
	for i := range len(a) {
		a[i] = math.FMA(d, a[i], b[i])
	}
	return a
}

// ScaleScaleAdd returns d1*a + d2*b with a fused multiply-add per channel.
func ScaleScaleAdd[V Channels](d1 float64, a V, d2 float64, b V) V {
	for i := range len(a) {
		a[i] = math.FMA(d1, a[i], d2*b[i])
	}
	return a
}

// ScaleScaleScaleAdd returns d1*a + d2*b + d3*c with fused multiply-adds.
func ScaleScaleScaleAdd[V Channels](d1 float64, a V, d2 float64, b V, d3 float64, c V) V {
	for i := range len(a) {
		a[i] = math.FMA(d1, a[i], math.FMA(d2, b[i], d3*c[i]))
	}
	return a
}

// Equal reports whether all channels of a and b differ by at most tol.
func Equal[V Channels](a, b V, tol float64) bool {
	for i := range len(a) {
		if !(math.Abs(a[i]-b[i]) <= tol) {
			return false
		}
	}
	return true
}

// EqualRel reports whether all channels of a and b agree up to the relative
// error rel.  Two channels which are both zero are always equal.
func EqualRel[V Channels](a, b V, rel float64) bool {
	for i := range len(a) {
		diff := math.Abs(a[i] - b[i])
		scale := math.Max(math.Abs(a[i]), math.Abs(b[i]))
		if !(diff <= rel*scale) {
			return false
		}
	}
	return true
}
