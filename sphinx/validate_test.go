/*
 * validate_test.go, part of gospx.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chem "github.com/rmera/gospx"
)

func TestCheckCutoff(Te *testing.T) {
	for _, e := range []float64{-1, 0, math.NaN(), math.Inf(1)} {
		err := CheckCutoff(e)
		require.Error(Te, err, "cutoff %v", e)
		assert.True(Te, errors.Is(err, ErrConfiguration))
		assert.False(Te, errors.Is(err, ErrPrecondition))
	}
	assert.NoError(Te, CheckCutoff(340))
}

func TestCheckMixing(Te *testing.T) {
	_, err := CheckMixing("LDA", 7, 1, 1)
	assert.ErrorIs(Te, err, ErrPrecondition)
	_, err = CheckMixing("PULAY", 0, 1, 1)
	assert.ErrorIs(Te, err, ErrPrecondition)
	_, err = CheckMixing("PULAY", 7, -0.1, 1)
	assert.ErrorIs(Te, err, ErrConfiguration)
	_, err = CheckMixing("PULAY", 7, 1, 2)
	assert.ErrorIs(Te, err, ErrConfiguration)
	_, err = CheckMixing("PULAY", 7, math.NaN(), 1)
	assert.ErrorIs(Te, err, ErrConfiguration)
	m, err := CheckMixing("linear", 1, 0, 1)
	require.NoError(Te, err)
	assert.Equal(Te, "LINEAR", m)
	//the error keeps the trace of where it went through
	_, err = CheckMixing("PULAY", 7, 1, 2)
	assert.Equal(Te, "checkUnit <- CheckMixing", chem.ErrorTrace(err))
}

func TestNormalizeXC(Te *testing.T) {
	xc, adv := NormalizeXC("pbe")
	assert.Equal(Te, "PBE", xc)
	assert.Nil(Te, adv)
	xc, adv = NormalizeXC("PBE_LDA")
	assert.Equal(Te, "PBE_LDA", xc)
	assert.Nil(Te, adv)
	xc, adv = NormalizeXC("llda")
	assert.Equal(Te, "LDA", xc)
	require.NotNil(Te, adv)
	assert.Equal(Te, "Xcorr", adv.Field)
	assert.Equal(Te, "LDA", adv.Resolved)
	assert.Contains(Te, adv.String(), `"llda" taken as "LDA"`)
	xc, adv = NormalizeXC("scan")
	assert.Equal(Te, "SCAN", xc)
	require.NotNil(Te, adv)
}
