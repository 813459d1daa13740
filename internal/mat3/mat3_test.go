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

package mat3

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/image/math/f64"
)

func TestIdentity(t *testing.T) {
	for i, A := range testMatrices {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			B := Mul(A, Identity)
			if d := cmp.Diff(A, B); d != "" {
				t.Error(d)
			}
			C := Mul(Identity, A)
			if d := cmp.Diff(A, C); d != "" {
				t.Error(d)
			}
		})
	}
}

// TestInverse1 checks that a matrix multiplied by its inverse is the
// identity matrix.
func TestInverse1(t *testing.T) {
	for i, A := range testMatrices {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			Ainv := Inv(A)

			B := Mul(Ainv, A)
			if d := cmp.Diff(Identity, B, cmpopts.EquateApprox(1e-9, 1e-9)); d != "" {
				t.Error(d)
			}

			B = Mul(A, Ainv)
			if d := cmp.Diff(Identity, B, cmpopts.EquateApprox(1e-9, 1e-9)); d != "" {
				t.Error(d)
			}
		})
	}
}

// TestInverse2 checks that the inverse of the inverse of a matrix is the
// original matrix.
func TestInverse2(t *testing.T) {
	for i, A := range testMatrices {
		t.Run(fmt.Sprintf("mat%d", i), func(t *testing.T) {
			B := Inv(Inv(A))
			if d := cmp.Diff(A, B, cmpopts.EquateApprox(1e-9, 1e-9)); d != "" {
				t.Error(d)
			}
		})
	}
}

func TestApplyColumns(t *testing.T) {
	c0 := f64.Vec3{1, 2, 3}
	c1 := f64.Vec3{4, 5, 6}
	c2 := f64.Vec3{7, 8, 10}
	M := FromColumns(c0, c1, c2)

	if d := cmp.Diff(c1, Apply(M, f64.Vec3{0, 1, 0})); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(c2, Column(M, 2)); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(M, Transpose(Transpose(M))); d != "" {
		t.Error(d)
	}

	S := Scale(M, f64.Vec3{2, 3, 4})
	if d := cmp.Diff(Mul(M, Diag(f64.Vec3{2, 3, 4})), S); d != "" {
		t.Error(d)
	}
}

func TestSingular(t *testing.T) {
	M := f64.Mat3{1, 2, 3, 2, 4, 6, 0, 0, 1}
	if Invertible(M) {
		t.Fatal("singular matrix reported as invertible")
	}
	defer func() {
		if recover() == nil {
			t.Error("Inv did not panic for a singular matrix")
		}
	}()
	Inv(M)
}

var testMatrices = []f64.Mat3{
	Identity,
	{2, 0, 0, 0, 3, 0, 0, 0, 4},
	{0.4124, 0.3576, 0.1805, 0.2126, 0.7152, 0.0722, 0.0193, 0.1192, 0.9505},
	{1, 2, 3, 0, 1, 4, 5, 6, 0},
	{0.8951, 0.2664, -0.1614, -0.7502, 1.7135, 0.0367, 0.0389, -0.0685, 1.0296},
}
