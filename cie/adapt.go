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

package cie

import (
	"golang.org/x/image/math/f64"

	"seehuhn.de/go/spectra/internal/mat3"
	"seehuhn.de/go/spectra/value"
)

// Bradford is the cone response matrix of the Bradford (Lam-Rigg)
// chromatic adaptation transform.
var Bradford = f64.Mat3{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
}

// BradfordMatrix returns the matrix which maps XYZ values seen under the
// white point from to the corresponding values under the white point to.
func BradfordMatrix(from, to value.XYZ) f64.Mat3 {
	src := mat3.Apply(Bradford, f64.Vec3(from))
	dst := mat3.Apply(Bradford, f64.Vec3(to))
	var scale f64.Vec3
	for i := range scale {
		scale[i] = value.SafeDiv(dst[i], src[i])
	}
	cone := mat3.Mul(mat3.Diag(scale), Bradford)
	return mat3.Mul(mat3.Inv(Bradford), cone)
}

// Adapt converts c from the white point from to the white point to, using
// the Bradford transform.
func Adapt(c value.XYZ, from, to value.XYZ) value.XYZ {
	if from == to {
		return c
	}
	return value.XYZ(mat3.Apply(BradfordMatrix(from, to), f64.Vec3(c)))
}
