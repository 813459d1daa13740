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

// Package mat3 implements the small amount of 3x3 linear algebra needed for
// colour space conversions.
//
// Matrices are stored in row-major order in a [f64.Mat3]:
//
//	/ m0 m1 m2 \
//	| m3 m4 m5 |
//	\ m6 m7 m8 /
//
// A column vector v is mapped to M·v by [Apply].
package mat3

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Identity is the 3x3 identity matrix.
var Identity = f64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}

// FromColumns returns the matrix with the given column vectors.
func FromColumns(c0, c1, c2 f64.Vec3) f64.Mat3 {
	return f64.Mat3{
		c0[0], c1[0], c2[0],
		c0[1], c1[1], c2[1],
		c0[2], c1[2], c2[2],
	}
}

// Column returns column i of M.
func Column(M f64.Mat3, i int) f64.Vec3 {
	return f64.Vec3{M[i], M[3+i], M[6+i]}
}

// Apply returns the matrix-vector product M·v.
func Apply(M f64.Mat3, v f64.Vec3) f64.Vec3 {
	return f64.Vec3{
		M[0]*v[0] + M[1]*v[1] + M[2]*v[2],
		M[3]*v[0] + M[4]*v[1] + M[5]*v[2],
		M[6]*v[0] + M[7]*v[1] + M[8]*v[2],
	}
}

// Mul returns the matrix product A·B.
// Applying the result to a vector is equivalent to first applying B and then A.
func Mul(A, B f64.Mat3) f64.Mat3 {
	var C f64.Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			C[3*i+j] = A[3*i]*B[j] + A[3*i+1]*B[3+j] + A[3*i+2]*B[6+j]
		}
	}
	return C
}

// Transpose returns the transpose of M.
func Transpose(M f64.Mat3) f64.Mat3 {
	return f64.Mat3{
		M[0], M[3], M[6],
		M[1], M[4], M[7],
		M[2], M[5], M[8],
	}
}

// Scale returns the matrix M with column i multiplied by s[i].
func Scale(M f64.Mat3, s f64.Vec3) f64.Mat3 {
	return f64.Mat3{
		M[0] * s[0], M[1] * s[1], M[2] * s[2],
		M[3] * s[0], M[4] * s[1], M[5] * s[2],
		M[6] * s[0], M[7] * s[1], M[8] * s[2],
	}
}

// Diag returns the diagonal matrix with entries d.
func Diag(d f64.Vec3) f64.Mat3 {
	return f64.Mat3{d[0], 0, 0, 0, d[1], 0, 0, 0, d[2]}
}

// Det returns the determinant of M.
func Det(M f64.Mat3) float64 {
	return M[0]*(M[4]*M[8]-M[5]*M[7]) -
		M[1]*(M[3]*M[8]-M[5]*M[6]) +
		M[2]*(M[3]*M[7]-M[4]*M[6])
}

// Invertible reports whether M can be inverted safely.  Matrices whose
// determinant is tiny compared to the product of the row lengths are
// treated as singular.
func Invertible(M f64.Mat3) bool {
	det := Det(M)
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return false
	}
	scale := 1.0
	for i := 0; i < 9; i += 3 {
		scale *= math.Sqrt(M[i]*M[i] + M[i+1]*M[i+1] + M[i+2]*M[i+2])
	}
	return math.Abs(det) > 1e-12*scale
}

// Inv computes the inverse of M.
// The function panics if M is singular; use [Invertible] to check first.
func Inv(M f64.Mat3) f64.Mat3 {
	det := Det(M)
	if det == 0 {
		panic("singular matrix")
	}
	invDet := 1 / det
	return f64.Mat3{
		(M[4]*M[8] - M[5]*M[7]) * invDet,
		(M[2]*M[7] - M[1]*M[8]) * invDet,
		(M[1]*M[5] - M[2]*M[4]) * invDet,
		(M[5]*M[6] - M[3]*M[8]) * invDet,
		(M[0]*M[8] - M[2]*M[6]) * invDet,
		(M[2]*M[3] - M[0]*M[5]) * invDet,
		(M[3]*M[7] - M[4]*M[6]) * invDet,
		(M[1]*M[6] - M[0]*M[7]) * invDet,
		(M[0]*M[4] - M[1]*M[3]) * invDet,
	}
}

// MaxAbsDiff returns the largest absolute difference between corresponding
// entries of A and B.
func MaxAbsDiff(A, B f64.Mat3) float64 {
	var d float64
	for i := range A {
		d = math.Max(d, math.Abs(A[i]-B[i]))
	}
	return d
}
