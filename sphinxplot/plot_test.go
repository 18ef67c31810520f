/*
 * plot_test.go, part of gospx.
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

package sphinxplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gospx/sphinx"
)

func record(Te *testing.T, dir string) *sphinx.Record {
	Te.Helper()
	H := sphinx.NewHandle()
	rec, err := H.Collect(filepath.Join("../sphinx/testdata", dir))
	require.NoError(Te, err)
	return rec
}

func TestConvergencePlot(Te *testing.T) {
	rec := record(Te, "fe2")
	p, err := Convergence(rec, 0, "Fe2")
	require.NoError(Te, err)
	name := filepath.Join(Te.TempDir(), "scf")
	require.NoError(Te, Save(p, name))
	info, err := os.Stat(name + ".png")
	require.NoError(Te, err)
	assert.NotZero(Te, info.Size())
	_, err = Convergence(rec, 1, "Fe2")
	assert.ErrorIs(Te, err, ErrNoData)
	_, err = Convergence(nil, 0, "")
	assert.ErrorIs(Te, err, ErrNoData)
}

func TestEnergiesPlot(Te *testing.T) {
	rec := record(Te, "feni")
	p, err := Energies(rec, 1, "FeNi")
	require.NoError(Te, err)
	var buf bytes.Buffer
	require.NoError(Te, WriteTo(p, &buf, "SVG"))
	assert.Contains(Te, buf.String(), "<svg")
	//eBand is only printed in the first loop
	_, err = Energies(rec, 1, "FeNi", sphinx.SCFEnergyBand)
	assert.ErrorIs(Te, err, ErrNoData)
	_, err = Energies(rec, 0, "FeNi", sphinx.SCFEnergyBand)
	assert.NoError(Te, err)
	_, err = Energies(rec, 0, "FeNi", sphinx.Volume)
	assert.Error(Te, err)
}

func TestEigenvaluesPlot(Te *testing.T) {
	rec := record(Te, "feni")
	for step := 0; step < rec.Steps(); step++ {
		p, err := Eigenvalues(rec, step, "FeNi")
		require.NoError(Te, err)
		require.NoError(Te, Save(p, filepath.Join(Te.TempDir(), "bands.svg")))
	}
}

func TestColors(Te *testing.T) {
	r, g, b := colors(0, 4)
	assert.Equal(Te, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 4; i++ {
		r, g, b := colors(i, 4)
		seen[[3]uint8{r, g, b}] = true
	}
	assert.Len(Te, seen, 4)
}
