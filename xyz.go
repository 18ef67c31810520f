/*
 * xyz.go, part of gospx.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/gospx/v3"
)

//Reading and writing of crystals in the extended XYZ format: the usual
//XYZ file, with the lattice vectors in the comment line, as in
//  Lattice="a1x a1y a1z a2x a2y a2z a3x a3y a3z"
//Atom lines have the species label, the cartesian coordinates in A and,
//optionally, the spin of the atom. A label like Fe_up gives an atom of
//the element Fe with the species Fe_up.

//Fractional returns the fractional coordinates, in the cell, of the
//cartesian positions pos.
func Fractional(pos, cell *v3.Matrix) (*v3.Matrix, error) {
	var inv mat.Dense
	if err := inv.Inverse(cell.Dense); err != nil {
		return nil, CError{"cell can't be inverted: " + err.Error(), "Fractional", []string{"Fractional"}, true}
	}
	ret := v3.Zeros(pos.NVecs())
	ret.Mul(pos, &inv)
	return ret, nil
}

//XYZFileRead reads the first structure of the extended XYZ file xyzname.
func XYZFileRead(xyzname string) (*Crystal, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, CError{err.Error(), "XYZFileRead", []string{"XYZFileRead"}, true}
	}
	defer xyzfile.Close()
	return XYZRead(xyzfile)
}

//XYZRead reads the first structure in an extended XYZ stream.
func XYZRead(r io.Reader) (*Crystal, error) {
	xyz := bufio.NewReader(r)
	errf := func(format string, a ...interface{}) error {
		return CError{fmt.Sprintf(format, a...), "XYZRead", []string{"XYZRead"}, true}
	}
	line, err := xyz.ReadString('\n')
	if err != nil && line == "" {
		return nil, errf("empty XYZ file")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 1 {
		return nil, errf("bad number of atoms %q", strings.TrimSpace(line))
	}
	comment, err := xyz.ReadString('\n')
	if err != nil {
		return nil, errf("truncated XYZ file")
	}
	cell, err := lattice(comment)
	if err != nil {
		return nil, errf("%v", err)
	}
	ats := make([]*Atom, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && line == "" {
			return nil, errf("%d atoms expected, %d found", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, errf("atom %d: line ill formed", i)
		}
		ats[i] = labelAtom(fields[0])
		for _, f := range fields[1:4] {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errf("atom %d: bad coordinate %q", i, f)
			}
			coords = append(coords, c)
		}
		if len(fields) > 4 {
			spin, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, errf("atom %d: bad spin %q", i, fields[4])
			}
			ats[i].Spin, ats[i].Magnetic = spin, true
		}
	}
	pos, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	scaled, err := Fractional(pos, cell)
	if err != nil {
		return nil, err
	}
	return NewCrystal(ats, cell, scaled)
}

//labelAtom returns an atom with the given species label.
func labelAtom(label string) *Atom {
	at := &Atom{Symbol: label}
	if i := strings.Index(label, "_"); i > 0 {
		at.Symbol = label[:i]
		at.Species = label
	}
	return at
}

//lattice reads the lattice vectors from the comment line of an extended
//XYZ file.
func lattice(comment string) (*v3.Matrix, error) {
	const key = `Lattice="`
	i := strings.Index(comment, key)
	if i < 0 {
		return nil, fmt.Errorf("no lattice in the comment line")
	}
	rest := comment[i+len(key):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return nil, fmt.Errorf("unterminated lattice")
	}
	fields := strings.Fields(rest[:end])
	if len(fields) != 9 {
		return nil, fmt.Errorf("the lattice has %d numbers, 9 expected", len(fields))
	}
	data := make([]float64, 9)
	for j, f := range fields {
		var err error
		if data[j], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("bad lattice number %q", f)
		}
	}
	return v3.NewMatrix(data)
}

//XYZWrite writes S to w in the extended XYZ format. The spins are
//written only if some atom is magnetic.
func XYZWrite(w io.Writer, S Periodic) error {
	labels := make([]string, S.Len())
	var spins []float64
	for i := range labels {
		at := S.Atom(i)
		labels[i] = at.Label()
		if at.Magnetic && spins == nil {
			spins = make([]float64, S.Len())
		}
	}
	if spins != nil {
		for i := range spins {
			spins[i] = S.Atom(i).Spin
		}
	}
	return XYZFrameWrite(w, labels, S.Cell(), S.Positions(), spins, "")
}

//XYZFrameWrite writes one structure with the given labels, cell and
//cartesian positions (A) to w, in the extended XYZ format. spins can be
//nil. comment is added to the comment line. Several frames written one
//after the other make a trajectory.
func XYZFrameWrite(w io.Writer, labels []string, cell, pos *v3.Matrix, spins []float64, comment string) error {
	if pos == nil || cell == nil || len(labels) != pos.NVecs() || (spins != nil && len(spins) != len(labels)) {
		return CError{ErrMismatch, "XYZFrameWrite", []string{"XYZFrameWrite"}, true}
	}
	lat := make([]string, 0, 9)
	for _, v := range cell.Vecs() {
		lat = append(lat, strconv.FormatFloat(v, 'f', -1, 64))
	}
	props := "species:S:1:pos:R:3"
	if spins != nil {
		props += ":spin:R:1"
	}
	header := fmt.Sprintf("%d\nLattice=\"%s\" Properties=%s", len(labels), strings.Join(lat, " "), props)
	if comment != "" {
		header += " " + comment
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for i, l := range labels {
		c := pos.Vec(i)
		line := fmt.Sprintf("%-6s %14.8f %14.8f %14.8f", l, c[0], c[1], c[2])
		if spins != nil {
			line += fmt.Sprintf(" %8.4f", spins[i])
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
