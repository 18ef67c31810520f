/*
 * logparse.go, part of gospx.
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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	chem "github.com/rmera/gospx"
)

//Markers in the SPHInX log.
const (
	markAbort     = "ABORT"
	markMainLoop  = "Enter Main Loop"
	markLoop      = "+ SCF loop"
	markLoopEnd   = "+ SCF loop end"
	markCycle     = "cycle "
	markEigen     = "Eigenvalues"
	markKpoint    = "k-point "
	markFermi     = "Fermi energy:"
	markOmega     = "Omega:"
	markConverged = "convergence reached"
)

//cycleKeys maps the names printed in each SCF cycle to quantities, and
//says whether the value is an energy in Hartree.
var cycleKeys = map[string]struct {
	q      Quantity
	energy bool
}{
	"eTot":  {SCFEnergyInt, true},
	"F":     {SCFEnergyFree, true},
	"E0":    {SCFEnergyZero, true},
	"eBand": {SCFEnergyBand, true},
	"-TS":   {SCFElectronicEntropy, true},
	"R":     {SCFResidue, false},
	"M":     {SCFMagneticMoment, false},
}

//step accumulates the values of one SCF loop.
type step struct {
	cycles     [nCycleQuantities][]float64
	seen       [nCycleQuantities]bool
	spins      [][]float64
	cycleSpins map[int]float64
	eigen      [][]float64
	fermi      float64
	hasFermi   bool
}

type logParser struct {
	filename string
	order    *AtomOrder
	rec      *Record
	line     int
	mainLoop bool
	inStep   bool
	inCycle  bool
	inEigen  bool
	cur      *step
}

//ParseLog reads a SPHInX log. If order is not nil, the atomic spins are
//put in the order of the structure with it. filename is only used in
//error messages. It returns an error matching ErrParseIncomplete if the
//run was aborted or did not complete any SCF loop, and one matching
//ErrMalformed if the log can't be understood. No Record is returned with
//an error.
func ParseLog(r io.Reader, order *AtomOrder, filename string) (*Record, error) {
	P := &logParser{filename: filename, order: order, rec: new(Record)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		P.line++
		if err := P.parseLine(scanner.Text()); err != nil {
			return nil, errDecorate(err, "ParseLog")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, Error{"can't read log", ErrMalformed, filename, err, []string{"ParseLog"}, true}
	}
	if !P.mainLoop {
		return nil, newError(ErrParseIncomplete, filename, "the main loop was never reached", "ParseLog")
	}
	if P.inStep {
		log.Warn().Str("file", filename).Int("step", P.rec.steps).Msg("sphinx: last SCF loop incomplete, ignored")
	}
	if P.rec.steps == 0 {
		return nil, newError(ErrParseIncomplete, filename, "no SCF loop completed", "ParseLog")
	}
	return P.rec, nil
}

func (P *logParser) errorf(format string, a ...interface{}) error {
	msg := fmt.Sprintf("line %d: ", P.line) + fmt.Sprintf(format, a...)
	return newError(ErrMalformed, P.filename, msg, "parseLine")
}

func (P *logParser) parseLine(raw string) error {
	if strings.Contains(raw, markAbort) {
		return newError(ErrParseIncomplete, P.filename, fmt.Sprintf("line %d: run aborted", P.line), "parseLine")
	}
	line := strings.TrimSpace(strings.TrimLeft(raw, "| \t"))
	if P.inEigen && !strings.HasPrefix(line, markKpoint) {
		P.inEigen = false
	}
	switch {
	case line == "":
		return nil
	case strings.HasPrefix(line, markOmega):
		return P.omega(line)
	case strings.Contains(line, markMainLoop):
		P.mainLoop = true
	case strings.HasPrefix(line, markLoopEnd):
		return P.endStep(line)
	case strings.HasPrefix(line, markLoop):
		if P.inStep {
			return P.errorf("SCF loop started inside another one")
		}
		P.inStep = true
		P.inCycle = false
		P.cur = &step{cycleSpins: make(map[int]float64), fermi: math.NaN()}
	case !P.inStep:
		//everything else happens inside SCF loops.
		return nil
	case strings.HasPrefix(line, markCycle):
		return P.cycle(line)
	case strings.HasPrefix(line, markEigen):
		P.inEigen = true
		P.cur.eigen = P.cur.eigen[:0]
	case strings.HasPrefix(line, markKpoint):
		return P.kpoint(line)
	case strings.HasPrefix(line, markFermi):
		v, err := firstFloat(strings.TrimPrefix(line, markFermi))
		if err != nil {
			return P.errorf("bad Fermi energy: %v", err)
		}
		P.cur.fermi, P.cur.hasFermi = v, true
	case P.inCycle && strings.Contains(line, "="):
		return P.value(line)
	}
	return nil
}

//firstFloat parses the first field of s.
func firstFloat(s string) (float64, error) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return 0, fmt.Errorf("no value")
	}
	return parseFinite(f[0])
}

//parseFinite is strconv.ParseFloat, but NaN and infinities, which a
//diverged run can print, are errors.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %s", s)
	}
	return v, nil
}

func (P *logParser) omega(line string) error {
	v, err := firstFloat(strings.TrimPrefix(line, markOmega))
	if err != nil {
		return P.errorf("bad cell volume: %v", err)
	}
	P.rec.volume = v * chem.Bohr3A3()
	P.rec.hasVolume = true
	return nil
}

func (P *logParser) cycle(line string) error {
	if err := P.endCycle(); err != nil {
		return err
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return P.errorf("cycle without time")
	}
	t, err := firstFloat(parts[1])
	if err != nil {
		return P.errorf("bad cycle time: %v", err)
	}
	P.add(SCFComputationTime, t)
	P.inCycle = true
	return nil
}

func (P *logParser) add(q Quantity, v float64) {
	P.cur.cycles[q] = append(P.cur.cycles[q], v)
	P.cur.seen[q] = true
}

func (P *logParser) value(line string) error {
	parts := strings.SplitN(line, "=", 2)
	key := strings.TrimSpace(parts[0])
	v, err := firstFloat(parts[1])
	if err != nil {
		return P.errorf("bad value for %s: %v", key, err)
	}
	if strings.HasPrefix(key, "spin(") && strings.HasSuffix(key, ")") {
		args := strings.Split(key[len("spin("):len(key)-1], ",")
		if len(args) != 2 {
			return P.errorf("bad spin key %s", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil || n < 1 {
			return P.errorf("bad atom index in %s", key)
		}
		P.cur.cycleSpins[n-1] = v
		return nil
	}
	k, ok := cycleKeys[key]
	if !ok {
		return P.errorf("unknown quantity %q", key)
	}
	if k.energy {
		v *= chem.H2eV
	}
	P.add(k.q, v)
	return nil
}

func (P *logParser) kpoint(line string) error {
	if !P.inEigen {
		return P.errorf("k-point outside an eigenvalue table")
	}
	parts := strings.SplitN(strings.TrimPrefix(line, markKpoint), ":", 2)
	if len(parts) != 2 {
		return P.errorf("bad k-point line")
	}
	k, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || k != len(P.cur.eigen)+1 {
		return P.errorf("k-point %q out of sequence", parts[0])
	}
	fields := strings.Fields(parts[1])
	if len(fields) == 0 {
		return P.errorf("k-point %d without eigenvalues", k)
	}
	row := make([]float64, len(fields))
	for i, f := range fields {
		if row[i], err = parseFinite(f); err != nil {
			return P.errorf("bad eigenvalue %q", f)
		}
	}
	if len(P.cur.eigen) > 0 && len(row) != len(P.cur.eigen[0]) {
		return P.errorf("k-point %d has %d bands, k-point 1 has %d", k, len(row), len(P.cur.eigen[0]))
	}
	P.cur.eigen = append(P.cur.eigen, row)
	return nil
}

//endCycle stores the spins printed in the cycle being closed.
func (P *logParser) endCycle() error {
	if !P.inCycle || len(P.cur.cycleSpins) == 0 {
		return nil
	}
	n := len(P.cur.cycleSpins)
	row := make([]float64, n)
	for i := range row {
		v, ok := P.cur.cycleSpins[i]
		if !ok {
			return P.errorf("spin of atom %d missing", i+1)
		}
		row[i] = v
	}
	if P.order != nil {
		var err error
		if row, err = P.order.Canonical(row); err != nil {
			return P.errorf("%v", err)
		}
	}
	if len(P.cur.spins) > 0 && len(P.cur.spins[0]) != n {
		return P.errorf("%d spins, previous cycles had %d", n, len(P.cur.spins[0]))
	}
	P.cur.spins = append(P.cur.spins, row)
	P.cur.cycleSpins = make(map[int]float64)
	return nil
}

func (P *logParser) endStep(line string) error {
	if !P.inStep {
		return P.errorf("SCF loop end without start")
	}
	if err := P.endCycle(); err != nil {
		return err
	}
	if len(P.cur.cycles[SCFComputationTime]) == 0 {
		log.Warn().Str("file", P.filename).Int("line", P.line).Msg("sphinx: SCF loop without cycles, ignored")
		P.inStep, P.inCycle, P.inEigen = false, false, false
		P.cur = nil
		return nil
	}
	R, S := P.rec, P.cur
	for q := range S.cycles {
		if !S.seen[q] && R.cycles[q] == nil {
			continue
		}
		for len(R.cycles[q]) < R.steps {
			R.cycles[q] = append(R.cycles[q], []float64{})
		}
		vals := S.cycles[q]
		if vals == nil {
			vals = []float64{}
		}
		R.cycles[q] = append(R.cycles[q], vals)
	}
	status := ""
	if i := strings.Index(line, ":"); i >= 0 {
		status = line[i+1:]
	}
	R.convergence = append(R.convergence, strings.Contains(status, markConverged))
	if len(S.spins) > 0 {
		R.hasSpins = true
		for len(R.spins) < R.steps {
			R.spins = append(R.spins, nil)
		}
		R.spins = append(R.spins, mat.NewDense(len(S.spins), len(S.spins[0]), flatten(S.spins)))
	} else if R.hasSpins {
		R.spins = append(R.spins, nil)
	}
	if len(S.eigen) > 0 {
		R.hasEigen = true
		for len(R.eigen) < R.steps {
			R.eigen = append(R.eigen, nil)
		}
		R.eigen = append(R.eigen, mat.NewDense(len(S.eigen), len(S.eigen[0]), flatten(S.eigen)))
	} else if R.hasEigen {
		R.eigen = append(R.eigen, nil)
	}
	if S.hasFermi {
		R.hasFermi = true
		for len(R.fermi) < R.steps {
			R.fermi = append(R.fermi, math.NaN())
		}
		R.fermi = append(R.fermi, S.fermi)
	} else if R.hasFermi {
		R.fermi = append(R.fermi, math.NaN())
	}
	R.steps++
	P.inStep, P.inCycle, P.inEigen = false, false, false
	P.cur = nil
	return nil
}

func flatten(rows [][]float64) []float64 {
	ret := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		ret = append(ret, r...)
	}
	return ret
}
