/*
 * v3_test.go
 *
 * Copyright 2013 Raul Mera <rmera@zinc>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 *
 *
 */

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Returns an identity matrix spanning span cols and rows
func gnEye(span int) *mat.Dense {
	A := mat.NewDense(span, span, nil)
	for i := 0; i < span; i++ {
		A.Set(i, i, 1.0)
	}
	return A
}

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	T := Zeros(3)
	T.Mul(A, gnEye(3))
	assert.True(Te, T.EqualApprox(A, 1e-12))
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
	assert.Equal(Te, []float64{100, 5, 6}, A.Vec(1))
}

func TestSomeVecs(Te *testing.T) {
	A, err := NewMatrix([]float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	require.NoError(Te, err)
	B, err := A.SomeVecs([]int{3, 0})
	require.NoError(Te, err)
	assert.Equal(Te, [][]float64{{10, 11, 12}, {1, 2, 3}}, B.Rows())
	_, err = A.SomeVecs([]int{4})
	assert.Error(Te, err)
}

func TestDivideAndDet(Te *testing.T) {
	cell, err := FromRows([][]float64{{2.6, 0, 0}, {0, 2.6, 0}, {0, 0, 2.6}})
	require.NoError(Te, err)
	assert.InDelta(Te, 17.576, cell.Det(), 1e-12)
	bohr := Zeros(3)
	bohr.Divide(0.52917721067, cell)
	//must be the correctly rounded quotient
	assert.Equal(Te, 4.913287926190353, bohr.At(0, 0))
	assert.False(Te, bohr.HasNaN())
	_, err = FromRows([][]float64{{1, 2}})
	assert.Error(Te, err)
}
