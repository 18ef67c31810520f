/*
 * order.go, part of gospx.
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

package sphinx

import (
	"fmt"

	v3 "github.com/rmera/gospx/v3"
)

//AtomOrder relates the order of the atoms in a structure (canonical
//order) to the order in which SPHInX gets them, where all the atoms of a
//species are together (solver order).
//
//ToSolver[k] is the canonical index of the atom in the k-th solver
//position, so solver[k] = canonical[ToSolver[k]]. ToCanonical is its
//inverse, canonical[i] = solver[ToCanonical[i]]. Both are permutations
//of 0..Len()-1 and ToCanonical[ToSolver[k]] == k for every k.
type AtomOrder struct {
	ToSolver    []int
	ToCanonical []int
	species     []string
}

//NewAtomOrder returns the order obtained by grouping the atoms with the
//given species labels. Species come in the order in which they first
//appear and, within a species, atoms keep their relative order.
func NewAtomOrder(labels []string) *AtomOrder {
	O := &AtomOrder{
		ToSolver:    make([]int, 0, len(labels)),
		ToCanonical: make([]int, len(labels)),
	}
	groups := make(map[string][]int)
	for i, l := range labels {
		if _, ok := groups[l]; !ok {
			O.species = append(O.species, l)
		}
		groups[l] = append(groups[l], i)
	}
	for _, s := range O.species {
		O.ToSolver = append(O.ToSolver, groups[s]...)
	}
	for k, i := range O.ToSolver {
		O.ToCanonical[i] = k
	}
	return O
}

//Len returns the number of atoms.
func (O *AtomOrder) Len() int {
	return len(O.ToSolver)
}

//Species returns the species labels in the order in which SPHInX gets them.
func (O *AtomOrder) Species() []string {
	return append([]string(nil), O.species...)
}

//Identity is true if both orders are the same.
func (O *AtomOrder) Identity() bool {
	for k, i := range O.ToSolver {
		if k != i {
			return false
		}
	}
	return true
}

//Solver returns the values in vals, given in canonical order, in
//solver order.
func (O *AtomOrder) Solver(vals []float64) ([]float64, error) {
	if len(vals) != O.Len() {
		return nil, fmt.Errorf("sphinx: %d values for %d atoms", len(vals), O.Len())
	}
	ret := make([]float64, len(vals))
	for k, i := range O.ToSolver {
		ret[k] = vals[i]
	}
	return ret, nil
}

//Canonical returns the values in vals, given in solver order, in
//canonical order.
func (O *AtomOrder) Canonical(vals []float64) ([]float64, error) {
	if len(vals) != O.Len() {
		return nil, fmt.Errorf("sphinx: %d values for %d atoms", len(vals), O.Len())
	}
	ret := make([]float64, len(vals))
	for i, k := range O.ToCanonical {
		ret[i] = vals[k]
	}
	return ret, nil
}

//SolverVecs returns a new matrix with the vectors of m, one per atom in
//canonical order, in solver order.
func (O *AtomOrder) SolverVecs(m *v3.Matrix) (*v3.Matrix, error) {
	if m.NVecs() != O.Len() {
		return nil, fmt.Errorf("sphinx: %d vectors for %d atoms", m.NVecs(), O.Len())
	}
	return m.SomeVecs(O.ToSolver)
}

//CanonicalVecs returns a new matrix with the vectors of m, one per atom in
//solver order, in canonical order.
func (O *AtomOrder) CanonicalVecs(m *v3.Matrix) (*v3.Matrix, error) {
	if m.NVecs() != O.Len() {
		return nil, fmt.Errorf("sphinx: %d vectors for %d atoms", m.NVecs(), O.Len())
	}
	return m.SomeVecs(O.ToCanonical)
}
