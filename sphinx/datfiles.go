/*
 * datfiles.go, part of gospx.
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
	"bufio"
	"io"
	"strconv"
	"strings"

	chem "github.com/rmera/gospx"
)

//EnergyFile is written by SPHInX during geometry optimizations, with the
//free energy, in Hartree, after each ionic step.
const EnergyFile = "energy-structOpt.dat"

//ReadEnergies reads the free energies in an energy-structOpt.dat file,
//and returns them in eV. Each line has the step number and the energy.
//Empty lines and lines starting with # are skipped.
func ReadEnergies(r io.Reader, filename string) ([]float64, error) {
	ret := []float64{}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, newError(ErrMalformed, filename, "line "+strconv.Itoa(n)+": 2 columns expected", "ReadEnergies")
		}
		e, err := parseFinite(fields[1])
		if err != nil {
			return nil, Error{"line " + strconv.Itoa(n) + ": bad energy", ErrMalformed, filename, err, []string{"ReadEnergies"}, true}
		}
		ret = append(ret, e*chem.H2eV)
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{"can't read energies", ErrMalformed, filename, err, []string{"ReadEnergies"}, true}
	}
	return ret, nil
}
