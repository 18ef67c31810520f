/*
 * input_test.go, part of gospx.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gospx/sx"
)

func TestPlaneWaveCutoff(Te *testing.T) {
	Q := NewInput()
	err := Q.SetPlaneWaveCutoff(-1)
	assert.ErrorIs(Te, err, ErrConfiguration)
	assert.Equal(Te, 340.0, Q.PlaneWaveCutoff())
	require.NoError(Te, Q.SetPlaneWaveCutoff(340))
	assert.Equal(Te, 340.0, Q.PlaneWaveCutoff())
	v, _ := Q.Get("EnCut")
	assert.Equal(Te, sx.Int(340), v)
	require.NoError(Te, Q.SetPlaneWaveCutoff(412.5))
	v, _ = Q.Get("EnCut")
	assert.Equal(Te, sx.Float(412.5), v)
}

func TestMixingParameters(Te *testing.T) {
	Q := NewInput()
	assert.ErrorIs(Te, Q.SetMixingParameters("LDA", 7, 1, 1), ErrPrecondition)
	assert.ErrorIs(Te, Q.SetMixingParameters("PULAY", 7, -0.1, 1), ErrConfiguration)
	assert.ErrorIs(Te, Q.SetMixingParameters("PULAY", 7, 1, 2), ErrConfiguration)
	m, n := Q.MixingMethod()
	assert.Equal(Te, "", m)
	assert.Equal(Te, 0, n)
	require.NoError(Te, Q.SetMixingParameters("PULAY", 7, 0.5, 0.2))
	v, _ := Q.Get("rhoMixing")
	assert.Equal(Te, sx.Float(0.5), v)
	v, _ = Q.Get("spinMixing")
	assert.Equal(Te, sx.Float(0.2), v)
	m, n = Q.MixingMethod()
	assert.Equal(Te, "PULAY", m)
	assert.Equal(Te, 7, n)
}

func TestExchangeCorrelation(Te *testing.T) {
	Q := NewInput()
	adv, err := Q.SetExchangeCorrelation("llda")
	require.NoError(Te, err)
	require.NotNil(Te, adv)
	assert.Equal(Te, "LDA", Q.ExchangeCorrelation())
	adv, err = Q.SetExchangeCorrelation("pbe")
	require.NoError(Te, err)
	assert.Nil(Te, adv)
	assert.Equal(Te, "PBE", Q.ExchangeCorrelation())
	_, err = Q.SetExchangeCorrelation(" ")
	assert.ErrorIs(Te, err, ErrConfiguration)
}

func TestCalcModes(Te *testing.T) {
	Q := NewInput()
	adv := Q.CalcStatic("wrong_algorithm")
	require.NotNil(Te, adv)
	assert.Equal(Te, "blockCCG", Q.Algorithm())
	assert.Empty(Te, Q.RestartFiles())
	Q.AddRestartFile("randomfile")
	assert.Nil(Te, Q.CalcStatic("ccg"))
	assert.Equal(Te, "CCG", Q.Algorithm())
	v, _ := Q.Get("Estep")
	assert.Equal(Te, sx.Int(400), v)
	assert.False(Te, Q.Minimize())

	assert.ErrorIs(Te, Q.CalcMinimize(0, 10), ErrConfiguration)
	require.NoError(Te, Q.CalcMinimize(100, 50))
	assert.True(Te, Q.Minimize())
	v, _ = Q.Get("Estep")
	assert.Equal(Te, sx.Int(100), v)
	v, _ = Q.Get("Istep")
	assert.Equal(Te, sx.Int(50), v)
	Q.CalcStatic("")
	assert.False(Te, Q.Parameters().Has("Istep"))
}

func TestFixSpinConstraint(Te *testing.T) {
	Q := NewInput()
	fix, set := Q.FixSpinConstraint()
	assert.False(Te, fix)
	assert.False(Te, set)
	Q.SetFixSpinConstraint(false)
	fix, set = Q.FixSpinConstraint()
	assert.False(Te, fix)
	assert.True(Te, set)
}

func TestSetupChecks(Te *testing.T) {
	Q := NewInput()
	ok, adv := Q.CheckSetup()
	assert.False(Te, ok)
	assert.Len(Te, adv, 3)
	require.NoError(Te, Q.Validate())
	require.NoError(Te, Q.SetPlaneWaveCutoff(500))
	require.NoError(Te, Q.SetKpoints([3]int{6, 6, 6}, [3]float64{0.5, 0.5, 0.5}))
	require.NoError(Te, Q.SetEmptyStates(10))
	ok, adv = Q.CheckSetup()
	assert.True(Te, ok)
	assert.Empty(Te, adv)
	assert.Equal(Te, 10, Q.EmptyStates(100))

	assert.ErrorIs(Te, Q.SetKpoints([3]int{0, 1, 1}, [3]float64{}), ErrConfiguration)
	assert.ErrorIs(Te, Q.SetSigma(-0.1), ErrConfiguration)
	assert.ErrorIs(Te, Q.SetEnergyConvergence(0), ErrConfiguration)
	assert.ErrorIs(Te, Q.SetThreads(0), ErrConfiguration)
	assert.ErrorIs(Te, Q.SetEmptyStates(-1), ErrConfiguration)
	//values given with Set are only checked by Validate
	Q.Set("rhoMixing", sx.Float(3))
	assert.ErrorIs(Te, Q.Validate(), ErrConfiguration)
	Q.SetDefaults()
	Q.Set("KpointFolding", sx.Raw("oops"))
	assert.ErrorIs(Te, Q.Validate(), ErrConfiguration)
}

func TestEmptyStatesAuto(Te *testing.T) {
	Q := NewInput()
	assert.Equal(Te, 6, Q.EmptyStates(2))
	assert.Equal(Te, 51, Q.EmptyStates(32))
	p := Q.variables(2)
	v, _ := p.Get("EmptyStates")
	assert.Equal(Te, sx.Int(6), v)
	//the Input itself keeps "auto"
	v, _ = Q.Get("EmptyStates")
	assert.Equal(Te, sx.Raw(EmptyStatesAuto), v)
}
