/*
 * chem_test.go, part of gospx.
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
	"bytes"
	"strings"
	"testing"

	v3 "github.com/rmera/gospx/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubic(Te *testing.T, a float64) *v3.Matrix {
	cell, err := v3.FromRows([][]float64{{a, 0, 0}, {0, a, 0}, {0, 0, a}})
	require.NoError(Te, err)
	return cell
}

func TestCrystal(Te *testing.T) {
	scaled, err := v3.FromRows([][]float64{{0, 0, 0}, {0.5, 0.5, 0.5}})
	require.NoError(Te, err)
	ats := []*Atom{{Symbol: "Fe"}, {Symbol: "Ni", Species: "Ni_up", Spin: 0.5, Magnetic: true}}
	C, err := NewCrystal(ats, cubic(Te, 2.83), scaled)
	require.NoError(Te, err)
	assert.Equal(Te, 2, C.Len())
	assert.Equal(Te, []string{"Fe", "Ni_up"}, C.Labels())
	assert.True(Te, C.Magnetic())
	assert.InDelta(Te, 2.83*2.83*2.83, C.Volume(), 1e-10)
	pos := C.Positions()
	assert.Equal(Te, []float64{1.415, 1.415, 1.415}, pos.Vec(1))
}

func TestCrystalErrors(Te *testing.T) {
	scaled, err := v3.FromRows([][]float64{{0, 0, 0}})
	require.NoError(Te, err)
	_, err = NewCrystal([]*Atom{{Symbol: "Xx"}}, cubic(Te, 3), scaled)
	require.Error(Te, err)
	_, ok := err.(Error)
	assert.True(Te, ok)
	_, err = NewCrystal([]*Atom{{Symbol: "Fe"}, {Symbol: "Fe"}}, cubic(Te, 3), scaled)
	assert.Error(Te, err)
	flat, err := v3.FromRows([][]float64{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}})
	require.NoError(Te, err)
	_, err = NewCrystal([]*Atom{{Symbol: "Fe"}}, flat, scaled)
	assert.Error(Te, err)
}

func TestUnits(Te *testing.T) {
	z, ok := AtomicNumber("Fe")
	assert.True(Te, ok)
	assert.Equal(Te, 26, z)
	assert.InDelta(Te, 0.1481847113, Bohr3A3(), 1e-9)
	assert.InDelta(Te, 51.422067072, HBohr2eVA(1), 1e-8)
}

const fe2XYZ = `2
Lattice="2.6 0.0 0.0 0.0 2.6 0.0 0.0 0.0 2.6" Properties=species:S:1:pos:R:3:spin:R:1
Fe_up 0.0 0.0 0.0 0.5
Fe_up 1.3 1.3 1.3 0.5
`

func TestXYZ(Te *testing.T) {
	C, err := XYZRead(strings.NewReader(fe2XYZ))
	require.NoError(Te, err)
	require.Equal(Te, 2, C.Len())
	assert.Equal(Te, "Fe", C.Atom(1).Symbol)
	assert.Equal(Te, "Fe_up", C.Atom(1).Label())
	assert.True(Te, C.Atom(1).Magnetic)
	assert.Equal(Te, 0.5, C.Atom(1).Spin)
	assert.InDeltaSlice(Te, []float64{0.5, 0.5, 0.5}, C.Scaled().Vec(1), 1e-12)
	var buf bytes.Buffer
	require.NoError(Te, XYZWrite(&buf, C))
	again, err := XYZRead(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, C.Labels(), again.Labels())
	assert.True(Te, C.Positions().EqualApprox(again.Positions(), 1e-8))
	assert.True(Te, C.Cell().EqualApprox(again.Cell(), 1e-12))
}

func TestXYZErrors(Te *testing.T) {
	for name, text := range map[string]string{
		"empty":      "",
		"natoms":     "two\n",
		"no lattice": "1\nplain comment\nFe 0 0 0\n",
		"lattice":    "1\nLattice=\"1 0 0 0 1 0\"\nFe 0 0 0\n",
		"truncated":  "2\nLattice=\"1 0 0 0 1 0 0 0 1\"\nFe 0 0 0\n",
		"coords":     "1\nLattice=\"1 0 0 0 1 0 0 0 1\"\nFe 0 x 0\n",
		"element":    "1\nLattice=\"1 0 0 0 1 0 0 0 1\"\nQq 0 0 0\n",
	} {
		_, err := XYZRead(strings.NewReader(text))
		assert.Error(Te, err, name)
	}
	_, err := XYZFileRead("testdata/nothere.xyz")
	assert.Error(Te, err)
}
