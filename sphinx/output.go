/*
 * output.go, part of gospx.
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
	"math"

	"gonum.org/v1/gonum/mat"
)

//Quantity identifies one of the results read from a SPHInX run.
type Quantity int

const (
	SCFEnergyInt         Quantity = iota //internal energy, eV, per SCF cycle
	SCFEnergyFree                        //free energy, eV, per SCF cycle
	SCFEnergyZero                        //energy extrapolated to zero smearing, eV, per SCF cycle
	SCFEnergyBand                        //band energy, eV, per SCF cycle
	SCFElectronicEntropy                 //-TS, eV, per SCF cycle
	SCFResidue                           //density residue, per SCF cycle
	SCFMagneticMoment                    //total magnetic moment, per SCF cycle
	SCFComputationTime                   //wall time in s, per SCF cycle
	SCFConvergence                       //whether the SCF loop converged
	AtomSCFSpins                         //atomic spins, per SCF cycle and atom
	BandsEigenValues                     //eigenvalues in eV, per k-point and band
	BandsEFermi                          //Fermi energy, eV
	EnergyFree                           //free energy per ionic step, eV, from energy-structOpt.dat
	Volume                               //cell volume, A^3
)

//number of quantities with one value per SCF cycle.
const nCycleQuantities = int(SCFComputationTime) + 1

var quantityNames = [...]string{
	SCFEnergyInt:         "scf_energy_int",
	SCFEnergyFree:        "scf_energy_free",
	SCFEnergyZero:        "scf_energy_zero",
	SCFEnergyBand:        "scf_energy_band",
	SCFElectronicEntropy: "scf_electronic_entropy",
	SCFResidue:           "scf_residue",
	SCFMagneticMoment:    "scf_magnetic_moment",
	SCFComputationTime:   "scf_computation_time",
	SCFConvergence:       "scf_convergence",
	AtomSCFSpins:         "atom_scf_spins",
	BandsEigenValues:     "bands_eigen_values",
	BandsEFermi:          "bands_e_fermi",
	EnergyFree:           "energy_free",
	Volume:               "volume",
}

//Quantities lists all the quantities.
var Quantities = []Quantity{SCFEnergyInt, SCFEnergyFree, SCFEnergyZero, SCFEnergyBand,
	SCFElectronicEntropy, SCFResidue, SCFMagneticMoment, SCFComputationTime, SCFConvergence,
	AtomSCFSpins, BandsEigenValues, BandsEFermi, EnergyFree, Volume}

func (q Quantity) String() string {
	if q < 0 || int(q) >= len(quantityNames) {
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
	return quantityNames[q]
}

//QuantityByName returns the Quantity with the given name, i.e.
//"scf_residue".
func QuantityByName(name string) (Quantity, bool) {
	for i, n := range quantityNames {
		if n == name {
			return Quantity(i), true
		}
	}
	return -1, false
}

//StepScoped returns true for the quantities with one entry per SCF loop.
func (q Quantity) StepScoped() bool {
	return q >= SCFEnergyInt && q <= BandsEFermi
}

//PerCycle returns true for the quantities with one value per SCF cycle.
func (q Quantity) PerCycle() bool {
	return q >= SCFEnergyInt && int(q) < nCycleQuantities
}

//Record contains the results read from a SPHInX log. Every step-scoped
//quantity found in the log has exactly one entry per SCF loop (step),
//an empty one for the steps where it was not printed. Quantities never
//printed are absent, see Has.
//
//The values returned by the methods are not copies, and should not be
//modified.
type Record struct {
	steps       int
	cycles      [nCycleQuantities][][]float64
	convergence []bool
	spins       []*mat.Dense
	eigen       []*mat.Dense
	fermi       []float64
	hasSpins    bool
	hasEigen    bool
	hasFermi    bool
	energyFree  []float64
	volume      float64
	hasVolume   bool
}

//Steps returns the number of completed SCF loops.
func (R *Record) Steps() int {
	return R.steps
}

//Has returns true if the quantity q was found.
func (R *Record) Has(q Quantity) bool {
	switch {
	case q.PerCycle():
		return R.cycles[q] != nil
	case q == SCFConvergence:
		return R.steps > 0
	case q == AtomSCFSpins:
		return R.hasSpins
	case q == BandsEigenValues:
		return R.hasEigen
	case q == BandsEFermi:
		return R.hasFermi
	case q == EnergyFree:
		return R.energyFree != nil
	case q == Volume:
		return R.hasVolume
	}
	return false
}

//Cycles returns, for a per-cycle quantity, one slice of values per step.
//It returns nil for other quantities or if q was not found.
func (R *Record) Cycles(q Quantity) [][]float64 {
	if !q.PerCycle() {
		return nil
	}
	return R.cycles[q]
}

//Last returns the last value of a per-cycle quantity in each step, NaN
//for the steps in which it was not printed.
func (R *Record) Last(q Quantity) []float64 {
	c := R.Cycles(q)
	if c == nil {
		return nil
	}
	ret := make([]float64, len(c))
	for i, s := range c {
		ret[i] = math.NaN()
		if len(s) > 0 {
			ret[i] = s[len(s)-1]
		}
	}
	return ret
}

//Convergence returns, for each step, whether its SCF loop converged.
func (R *Record) Convergence() []bool {
	return R.convergence
}

//Spins returns, for each step, a matrix with one row per SCF cycle that
//printed the atomic spins, and one column per atom, in the order of the
//structure. Cycles without spins have no row, so row i is not always
//cycle i. Steps with no spins give nil.
func (R *Record) Spins() []*mat.Dense {
	if !R.hasSpins {
		return nil
	}
	return R.spins
}

//Eigenvalues returns, for each step, a matrix with one row per k-point
//and one column per band, in eV. Steps with no eigenvalues give nil.
func (R *Record) Eigenvalues() []*mat.Dense {
	if !R.hasEigen {
		return nil
	}
	return R.eigen
}

//Fermi returns the Fermi energy of each step in eV, NaN for steps that
//did not print it.
func (R *Record) Fermi() []float64 {
	if !R.hasFermi {
		return nil
	}
	return R.fermi
}

//EnergyFree returns the free energy at each ionic step, in eV.
func (R *Record) EnergyFree() []float64 {
	return R.energyFree
}

//Volume returns the volume of the cell in A^3, and false if the log
//didn't give it.
func (R *Record) Volume() (float64, bool) {
	return R.volume, R.hasVolume
}

//Check verifies that every step-scoped quantity found has one entry per
//step, and that the per-atom and per-band tables have the same number of
//columns in every step. It returns an error matching ErrMalformed if not.
func (R *Record) Check() error {
	lengths := make(map[Quantity]int)
	for q := SCFEnergyInt; int(q) < nCycleQuantities; q++ {
		if R.cycles[q] != nil {
			lengths[q] = len(R.cycles[q])
		}
	}
	lengths[SCFConvergence] = len(R.convergence)
	if R.hasSpins {
		lengths[AtomSCFSpins] = len(R.spins)
	}
	if R.hasEigen {
		lengths[BandsEigenValues] = len(R.eigen)
	}
	if R.hasFermi {
		lengths[BandsEFermi] = len(R.fermi)
	}
	for _, q := range Quantities {
		if l, ok := lengths[q]; ok && l != R.steps {
			return newError(ErrMalformed, "", fmt.Sprintf("%s has %d steps, %d expected", q, l, R.steps), "Check")
		}
	}
	if err := sameColumns(R.spins); err != nil {
		return Error{"atoms per step differ", ErrMalformed, "", err, []string{"Check"}, true}
	}
	if err := sameColumns(R.eigen); err != nil {
		return Error{"bands per step differ", ErrMalformed, "", err, []string{"Check"}, true}
	}
	return nil
}

func sameColumns(m []*mat.Dense) error {
	cols := -1
	for i, d := range m {
		if d == nil {
			continue
		}
		_, c := d.Dims()
		if cols >= 0 && c != cols {
			return fmt.Errorf("step %d has %d columns, previous ones %d", i, c, cols)
		}
		cols = c
	}
	return nil
}

func denseRows(d *mat.Dense) [][]float64 {
	if d == nil {
		return [][]float64{}
	}
	r, _ := d.Dims()
	ret := make([][]float64, r)
	for i := range ret {
		ret[i] = mat.Row(nil, i, d)
	}
	return ret
}

//Map returns the quantities found, keyed by name, as plain slices that
//can be given to a JSON or YAML encoder. Missing Fermi energies are nil.
func (R *Record) Map() map[string]interface{} {
	ret := make(map[string]interface{})
	for q := SCFEnergyInt; int(q) < nCycleQuantities; q++ {
		if R.cycles[q] != nil {
			ret[q.String()] = R.cycles[q]
		}
	}
	if R.steps > 0 {
		ret[SCFConvergence.String()] = R.convergence
	}
	if R.hasSpins {
		s := make([][][]float64, len(R.spins))
		for i, d := range R.spins {
			s[i] = denseRows(d)
		}
		ret[AtomSCFSpins.String()] = s
	}
	if R.hasEigen {
		e := make([][][]float64, len(R.eigen))
		for i, d := range R.eigen {
			e[i] = denseRows(d)
		}
		ret[BandsEigenValues.String()] = e
	}
	if R.hasFermi {
		f := make([]interface{}, len(R.fermi))
		for i, v := range R.fermi {
			if !math.IsNaN(v) {
				f[i] = v
			}
		}
		ret[BandsEFermi.String()] = f
	}
	if R.energyFree != nil {
		ret[EnergyFree.String()] = R.energyFree
	}
	if R.hasVolume {
		ret[Volume.String()] = R.volume
	}
	return ret
}
