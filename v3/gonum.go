/*
 * gonum.go, part of gospx.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//gonum.go wraps the gonum dense matrix so the rest of the library can
//talk about "vectors in 3D space" instead of rows and columns.

package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. Within the package it is
//understood that a "vector" is a row vector, i.e. the cartesian (or
//fractional) coordinates of a point, or one lattice vector of a cell.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is used as backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(l/cols, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	if vecs <= 0 {
		panic(ErrShape)
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//FromRows builds a Matrix from a slice of 3D vectors, copying them.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, Error{"No vectors given", []string{"FromRows"}, true}
	}
	data := make([]float64, 0, 3*len(rows))
	for i, r := range rows {
		if len(r) != 3 {
			return nil, Error{fmt.Sprintf("Vector %d has %d components, 3 expected", i, len(r)), []string{"FromRows"}, true}
		}
		data = append(data, r...)
	}
	return NewMatrix(data)
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Vec returns a copy of the ith vector as a slice.
func (F *Matrix) Vec(i int) []float64 {
	return mat.Row(nil, i, F.Dense)
}

//Rows returns a copy of all the vectors of F.
func (F *Matrix) Rows() [][]float64 {
	n := F.NVecs()
	ret := make([][]float64, n)
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

//SomeVecs returns a new matrix with the vectors of F whose indexes are
//given in order, in that order.
func (F *Matrix) SomeVecs(order []int) (*Matrix, error) {
	if len(order) == 0 {
		return nil, Error{"Empty index list", []string{"SomeVecs"}, true}
	}
	n := F.NVecs()
	ret := Zeros(len(order))
	for i, v := range order {
		if v < 0 || v >= n {
			return nil, Error{fmt.Sprintf("Index %d out of range for %d vectors", v, n), []string{"SomeVecs"}, true}
		}
		ret.SetRow(i, F.Vec(v))
	}
	return ret, nil
}

//Mul puts the product AxB in the receiver. Matrix arguments are
//unwrapped so gonum can see when the receiver is also an operand.
func (F *Matrix) Mul(A, B mat.Matrix) {
	if a, ok := A.(*Matrix); ok {
		A = a.Dense
	}
	if b, ok := B.(*Matrix); ok {
		B = b.Dense
	}
	F.Dense.Mul(A, B)
}

//Scale multiplies every element of A by f and puts the result in F.
func (F *Matrix) Scale(f float64, A *Matrix) {
	F.Dense.Scale(f, A.Dense)
}

//Divide divides every element of A by d and puts the result in F.
//Unlike Scale(1/d, A) this gives the correctly-rounded quotient,
//which matters when the numbers are written to text.
func (F *Matrix) Divide(d float64, A *Matrix) {
	r, c := A.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			F.Set(i, j, A.At(i, j)/d)
		}
	}
}

//Det returns the determinant of a 3x3 matrix, i.e. the (signed) volume
//of the cell spanned by its 3 vectors.
func (F *Matrix) Det() float64 {
	if F.NVecs() != 3 {
		panic(ErrShape)
	}
	return mat.Det(F.Dense)
}

//EqualApprox returns true if A and F have the same shape and all their
//elements are within tol of each other.
func (F *Matrix) EqualApprox(A *Matrix, tol float64) bool {
	fr, fc := F.Dims()
	ar, ac := A.Dims()
	if fr != ar || fc != ac {
		return false
	}
	return floats.EqualApprox(F.Vecs(), A.Vecs(), tol)
}

//Vecs returns all the elements of F, vector after vector, in a new slice.
func (F *Matrix) Vecs() []float64 {
	r, c := F.Dims()
	ret := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		ret = append(ret, F.Vec(i)...)
	}
	return ret
}

//HasNaN returns true if any element of F is NaN or infinite.
func (F *Matrix) HasNaN() bool {
	for _, v := range F.Vecs() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

//Errors

//Error is the same as chem.Error but avoids a circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate adds dec to the decoration slice of the error, if dec is not
//empty, and returns the slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns true if the error is critical.
func (err Error) Critical() bool { return err.critical }

//PanicMsg is the type used for all the panics raised in the package.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix = PanicMsg("gospx/v3: A v3.Matrix should have 3 columns")
	ErrShape        = PanicMsg("gospx/v3: Invalid shape")
)
