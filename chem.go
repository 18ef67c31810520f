/*
 * chem.go, part of gospx.
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

package chem

import (
	"fmt"

	v3 "github.com/rmera/gospx/v3"
)

//Atom contains the per-atom data a plane-wave calculation needs, except
//for the coordinates, which are kept in a matrix.
type Atom struct {
	Symbol   string  //The element
	Species  string  //Species label, i.e. "Fe_up". If empty, Symbol is the label.
	Spin     float64 //Initial/constrained spin, only meaningful if Magnetic is true.
	Magnetic bool
}

//Atom methods

//Label returns the species label of the atom.
func (A *Atom) Label() string {
	if A.Species == "" {
		return A.Symbol
	}
	return A.Species
}

/*****Crystal type***/

//Crystal is a periodic structure: a list of atoms, the cell that contains
//them and their fractional (scaled) coordinates.
type Crystal struct {
	Atoms  []*Atom
	cell   *v3.Matrix
	scaled *v3.Matrix
}

//NewCrystal returns a Crystal with the atoms ats, the lattice vectors (rows of
//cell, in A) and the fractional coordinates scaled. The slices are not
//copied. It returns an error if the shapes do not match or an element is
//unknown.
func NewCrystal(ats []*Atom, cell, scaled *v3.Matrix) (*Crystal, error) {
	if ats == nil || cell == nil {
		return nil, CError{ErrNilData, "NewCrystal", []string{"NewCrystal"}, true}
	}
	if cell.NVecs() != 3 {
		return nil, CError{fmt.Sprintf("cell has %d vectors, 3 expected", cell.NVecs()), "NewCrystal", []string{"NewCrystal"}, true}
	}
	if math0(cell.Det()) {
		return nil, CError{"cell vectors are linearly dependent", "NewCrystal", []string{"NewCrystal"}, true}
	}
	if len(ats) > 0 && (scaled == nil || scaled.NVecs() != len(ats)) {
		return nil, CError{ErrMismatch, "NewCrystal", []string{"NewCrystal"}, true}
	}
	for i, at := range ats {
		if at == nil {
			return nil, CError{fmt.Sprintf("atom %d is nil", i), "NewCrystal", []string{"NewCrystal"}, true}
		}
		if _, ok := symbolZ[at.Symbol]; !ok {
			return nil, CError{fmt.Sprintf("atom %d: unknown element %q", i, at.Symbol), "NewCrystal", []string{"NewCrystal"}, true}
		}
	}
	return &Crystal{Atoms: ats, cell: cell, scaled: scaled}, nil
}

func math0(f float64) bool {
	return f < 1e-12 && f > -1e-12
}

/*Crystal methods*/

//Atom returns the ith atom. It panics if out of range.
func (C *Crystal) Atom(i int) *Atom {
	return C.Atoms[i]
}

//Len returns the number of atoms.
func (C *Crystal) Len() int {
	return len(C.Atoms)
}

//Cell returns the lattice vectors, one per row, in A.
func (C *Crystal) Cell() *v3.Matrix {
	return C.cell
}

//Scaled returns the fractional coordinates. nil for an empty crystal.
func (C *Crystal) Scaled() *v3.Matrix {
	return C.scaled
}

//Positions returns the cartesian positions of the atoms in A, computed
//from the fractional coordinates and the cell.
func (C *Crystal) Positions() *v3.Matrix {
	if C.Len() == 0 {
		return nil
	}
	pos := v3.Zeros(C.Len())
	pos.Mul(C.scaled, C.cell)
	return pos
}

//Volume returns the volume of the cell in A^3.
func (C *Crystal) Volume() float64 {
	v := C.cell.Det()
	if v < 0 {
		return -v
	}
	return v
}

//Labels returns the species label of each atom, in order.
func (C *Crystal) Labels() []string {
	ret := make([]string, C.Len())
	for i, at := range C.Atoms {
		ret[i] = at.Label()
	}
	return ret
}

//Magnetic returns true if at least one atom carries a spin.
func (C *Crystal) Magnetic() bool {
	for _, at := range C.Atoms {
		if at.Magnetic {
			return true
		}
	}
	return false
}
