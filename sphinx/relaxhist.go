/*
 * relaxhist.go, part of gospx.
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
	"io"

	chem "github.com/rmera/gospx"
	"github.com/rmera/gospx/sx"
	v3 "github.com/rmera/gospx/v3"
)

//Snapshot is one step of a relaxation: the cell, the positions and,
//if SPHInX wrote them, the forces. Atoms are in the order of the
//structure when an AtomOrder was available, otherwise in the file order.
type Snapshot struct {
	Cell      *v3.Matrix //A
	Positions *v3.Matrix //A
	Forces    *v3.Matrix //eV/A, nil if not in the file
	Elements  []string
}

//ReadHistory reads a relaxation history, as written by SPHInX in
//relaxHist.sx: one structure group per step, with the cell and the
//atoms, in bohr, and the forces, in Hartree/bohr. If order is not nil,
//it must have as many atoms as each step.
func ReadHistory(r io.Reader, order *AtomOrder, filename string) ([]*Snapshot, error) {
	g, err := sx.Parse(r)
	if err != nil {
		return nil, Error{"can't parse history", ErrMalformed, filename, err, []string{"ReadHistory"}, true}
	}
	structures := g.Groups("structure")
	if len(structures) == 0 {
		return nil, newError(ErrMalformed, filename, "no structure found", "ReadHistory")
	}
	ret := make([]*Snapshot, 0, len(structures))
	for i, s := range structures {
		snap, err := readSnapshot(s, order)
		if err != nil {
			return nil, Error{fmt.Sprintf("step %d", i), ErrMalformed, filename, err, []string{"readSnapshot", "ReadHistory"}, true}
		}
		ret = append(ret, snap)
	}
	return ret, nil
}

func readSnapshot(s *sx.Group, order *AtomOrder) (*Snapshot, error) {
	v, ok := s.Get("cell")
	if !ok {
		return nil, fmt.Errorf("no cell")
	}
	rows, ok := sx.AsMatrix(v)
	if !ok || len(rows) != 3 {
		return nil, fmt.Errorf("cell is not a 3x3 matrix")
	}
	cell, err := v3.FromRows(rows)
	if err != nil {
		return nil, err
	}
	cell.Scale(chem.Bohr2A, cell)
	snap := &Snapshot{Cell: cell}
	var coords, forces [][]float64
	for _, sp := range s.Groups("species") {
		el := ""
		if e, ok := sp.Get("element"); ok {
			if str, ok := e.(sx.String); ok {
				el = string(str)
			}
		}
		for _, at := range sp.Groups("atom") {
			c, ok := at.Get("coords")
			if !ok {
				return nil, fmt.Errorf("atom %d without coordinates", len(coords))
			}
			pos, ok := sx.AsFloats(c)
			if !ok || len(pos) != 3 {
				return nil, fmt.Errorf("bad coordinates for atom %d", len(coords))
			}
			coords = append(coords, pos)
			snap.Elements = append(snap.Elements, el)
			if f, ok := at.Get("force"); ok {
				force, ok := sx.AsFloats(f)
				if !ok || len(force) != 3 {
					return nil, fmt.Errorf("bad force for atom %d", len(coords)-1)
				}
				forces = append(forces, force)
			}
		}
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("no atoms")
	}
	if len(forces) != 0 && len(forces) != len(coords) {
		return nil, fmt.Errorf("%d forces for %d atoms", len(forces), len(coords))
	}
	if snap.Positions, err = v3.FromRows(coords); err != nil {
		return nil, err
	}
	snap.Positions.Scale(chem.Bohr2A, snap.Positions)
	if len(forces) > 0 {
		if snap.Forces, err = v3.FromRows(forces); err != nil {
			return nil, err
		}
		snap.Forces.Scale(chem.HBohr2eVA(1), snap.Forces)
	}
	if order == nil {
		return snap, nil
	}
	if snap.Positions, err = order.CanonicalVecs(snap.Positions); err != nil {
		return nil, err
	}
	if snap.Forces != nil {
		if snap.Forces, err = order.CanonicalVecs(snap.Forces); err != nil {
			return nil, err
		}
	}
	el := make([]string, len(snap.Elements))
	for i, k := range order.ToCanonical {
		el[i] = snap.Elements[k]
	}
	snap.Elements = el
	return snap, nil
}
