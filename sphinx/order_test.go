/*
 * order_test.go, part of gospx.
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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/rmera/gospx/v3"
)

func TestAtomOrder(Te *testing.T) {
	O := NewAtomOrder([]string{"Fe", "Ni", "Fe", "O", "Ni"})
	assert.Equal(Te, []int{0, 2, 1, 4, 3}, O.ToSolver)
	assert.Equal(Te, []string{"Fe", "Ni", "O"}, O.Species())
	for k := range O.ToSolver {
		assert.Equal(Te, k, O.ToCanonical[O.ToSolver[k]])
	}
	assert.False(Te, O.Identity())
	solver, err := O.Solver([]float64{10, 11, 12, 13, 14})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{10, 12, 11, 14, 13}, solver)
	back, err := O.Canonical(solver)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{10, 11, 12, 13, 14}, back)
	_, err = O.Canonical([]float64{1})
	assert.Error(Te, err)
}

func TestAtomOrderDegenerate(Te *testing.T) {
	empty := NewAtomOrder(nil)
	assert.Equal(Te, 0, empty.Len())
	assert.Empty(Te, empty.ToSolver)
	assert.Empty(Te, empty.ToCanonical)
	assert.True(Te, empty.Identity())
	one := NewAtomOrder([]string{"Si", "Si", "Si", "Si"})
	assert.True(Te, one.Identity())
	assert.Equal(Te, []int{0, 1, 2, 3}, one.ToCanonical)
}

//TestAtomOrderBijection checks both maps are inverse permutations for
//random structures, and that atoms of one species end up together.
func TestAtomOrderBijection(Te *testing.T) {
	rng := rand.New(rand.NewSource(42))
	elements := []string{"Fe", "Fe_up", "Ni", "O", "H"}
	for trial := 0; trial < 200; trial++ {
		labels := make([]string, rng.Intn(40))
		for i := range labels {
			labels[i] = elements[rng.Intn(len(elements))]
		}
		O := NewAtomOrder(labels)
		require.Equal(Te, len(labels), O.Len())
		seen := make([]bool, len(labels))
		for i := range labels {
			require.Equal(Te, i, O.ToSolver[O.ToCanonical[i]])
			require.Equal(Te, i, O.ToCanonical[O.ToSolver[i]])
			seen[O.ToSolver[i]] = true
		}
		for _, s := range seen {
			require.True(Te, s)
		}
		done := make(map[string]bool)
		for k := range O.ToSolver {
			l := labels[O.ToSolver[k]]
			if k > 0 && labels[O.ToSolver[k-1]] != l {
				require.False(Te, done[l], "species %s split in %v", l, labels)
				done[labels[O.ToSolver[k-1]]] = true
			}
			//stable within a species
			if k > 0 && labels[O.ToSolver[k-1]] == l {
				require.Less(Te, O.ToSolver[k-1], O.ToSolver[k])
			}
		}
	}
}

func TestAtomOrderVecs(Te *testing.T) {
	O := NewAtomOrder([]string{"Fe", "Ni", "Fe"})
	m, err := v3.NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2})
	require.NoError(Te, err)
	s, err := O.SolverVecs(m)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 0, 0, 2, 2, 2, 1, 1, 1}, s.Vecs())
	c, err := O.CanonicalVecs(s)
	require.NoError(Te, err)
	assert.True(Te, c.EqualApprox(m, 0))
}
