/*
 * input.go, part of gospx.
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
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rmera/gospx/sx"
)

//Input holds the settings of a SPHInX calculation. The numeric settings
//are kept as SPHInX variables, in the order in which they are written to
//userparameters.sx, and the other sections refer to them by name.
//
//Setters check their arguments and return an error matching
//ErrConfiguration for values out of their domain, so an invalid Input
//never reaches the files.
type Input struct {
	params       *sx.Group
	explicit     map[string]bool
	algorithm    string
	minimize     bool
	mixingMethod string
	nHistory     int
	fixSpin      bool
	fixSpinSet   bool
	restart      []string
}

//EmptyStatesAuto is the value of the EmptyStates parameter until
//SetEmptyStates is called. It is replaced, when the files are written,
//by 3 plus 1.5 times the number of atoms.
const EmptyStatesAuto = "auto"

//The SCF algorithms that CalcStatic understands, with the name of the
//group that selects them in control.sx.
var scfAlgorithms = map[string]string{
	"blockccg": "blockCCG",
	"ccg":      "CCG",
}

//NewInput returns an Input with the default settings.
func NewInput() *Input {
	Q := new(Input)
	Q.SetDefaults()
	return Q
}

//SetDefaults restores all the settings to their defaults: a static
//calculation with the blockCCG algorithm, a 340 eV cutoff, 4x4x4
//k-points and PBE.
func (Q *Input) SetDefaults() {
	p := sx.NewGroup()
	p.Set("EnCut", sx.Int(340))
	p.Set("KpointCoords", sx.Floats([]float64{0.5, 0.5, 0.5}))
	p.Set("KpointFolding", sx.Ints([]int{4, 4, 4}))
	p.Set("EmptyStates", sx.Raw(EmptyStatesAuto))
	p.Set("Sigma", sx.Float(0.2))
	p.Set("Xcorr", sx.Raw("PBE"))
	p.Set("Estep", sx.Int(400))
	p.Set("Ediff", sx.Float(0.0001))
	p.Set("WriteWaves", sx.Bool(true))
	p.Set("KJxc", sx.Bool(false))
	p.Set("SaveMemory", sx.Bool(true))
	p.Set("CoarseRun", sx.Bool(false))
	p.Set("rhoMixing", sx.Float(1))
	p.Set("spinMixing", sx.Float(1))
	p.Set("CheckOverlap", sx.Bool(true))
	p.Set("THREADS", sx.Int(1))
	Q.params = p
	Q.explicit = make(map[string]bool)
	Q.algorithm = "blockCCG"
	Q.minimize = false
	Q.mixingMethod = ""
	Q.nHistory = 0
	Q.fixSpin, Q.fixSpinSet = false, false
	Q.restart = nil
}

//Parameters returns a copy of the SPHInX variables, in order.
func (Q *Input) Parameters() *sx.Group {
	return Q.params.Copy()
}

//Get returns the value of the variable name.
func (Q *Input) Get(name string) (sx.Value, bool) {
	return Q.params.Get(name)
}

//Set sets the variable name to v, appending it if it is new. It is meant
//for variables with no dedicated setter; the values are not checked.
func (Q *Input) Set(name string, v sx.Value) {
	if _, ok := v.(*sx.Group); ok {
		panic("sphinx: a parameter can't be a group")
	}
	Q.params.Set(name, v)
	Q.explicit[name] = true
}

func (Q *Input) number(name string) float64 {
	v, ok := Q.params.Get(name)
	if !ok {
		return math.NaN()
	}
	f, ok := sx.AsFloat(v)
	if !ok {
		return math.NaN()
	}
	return f
}

func (Q *Input) flag(name string) bool {
	v, ok := Q.params.Get(name)
	if !ok {
		return false
	}
	b, ok := v.(sx.Bool)
	return ok && bool(b)
}

//SetPlaneWaveCutoff sets the plane-wave energy cutoff, in eV.
func (Q *Input) SetPlaneWaveCutoff(e float64) error {
	if err := CheckCutoff(e); err != nil {
		return errDecorate(err, "SetPlaneWaveCutoff")
	}
	if e == math.Trunc(e) && math.Abs(e) < 1<<53 {
		Q.Set("EnCut", sx.Int(int64(e)))
	} else {
		Q.Set("EnCut", sx.Float(e))
	}
	return nil
}

//PlaneWaveCutoff returns the plane-wave energy cutoff, in eV.
func (Q *Input) PlaneWaveCutoff() float64 {
	return Q.number("EnCut")
}

//SetKpoints sets the Monkhorst-Pack folding and the offset of the
//k-point mesh, in relative coordinates.
func (Q *Input) SetKpoints(folding [3]int, coords [3]float64) error {
	for _, v := range folding {
		if v < 1 {
			return newError(ErrConfiguration, "", fmt.Sprintf("k-point folding must be positive, got %v", folding), "SetKpoints")
		}
	}
	Q.Set("KpointFolding", sx.Ints(folding[:]))
	Q.Set("KpointCoords", sx.Floats(coords[:]))
	return nil
}

//SetEmptyStates sets the number of empty bands.
func (Q *Input) SetEmptyStates(n int) error {
	if n < 0 {
		return newError(ErrConfiguration, "", fmt.Sprintf("number of empty states can't be negative, got %d", n), "SetEmptyStates")
	}
	Q.Set("EmptyStates", sx.Int(n))
	return nil
}

//EmptyStates returns the number of empty bands for a structure with
//natoms atoms.
func (Q *Input) EmptyStates(natoms int) int {
	v, _ := Q.params.Get("EmptyStates")
	if n, ok := v.(sx.Int); ok {
		return int(n)
	}
	return int(1.5*float64(natoms)) + 3
}

//SetSigma sets the electronic smearing, in eV.
func (Q *Input) SetSigma(sigma float64) error {
	if !(sigma >= 0) || math.IsInf(sigma, 0) {
		return newError(ErrConfiguration, "", fmt.Sprintf("smearing can't be negative, got %v", sigma), "SetSigma")
	}
	Q.Set("Sigma", sx.Float(sigma))
	return nil
}

//SetEnergyConvergence sets the SCF energy convergence criterion, in eV.
func (Q *Input) SetEnergyConvergence(ediff float64) error {
	if !(ediff > 0) || math.IsInf(ediff, 0) {
		return newError(ErrConfiguration, "", fmt.Sprintf("energy convergence must be positive, got %v", ediff), "SetEnergyConvergence")
	}
	Q.Set("Ediff", sx.Float(ediff))
	return nil
}

//SetThreads sets the number of threads SPHInX will use.
func (Q *Input) SetThreads(n int) error {
	if n < 1 {
		return newError(ErrConfiguration, "", fmt.Sprintf("number of threads must be positive, got %d", n), "SetThreads")
	}
	Q.Set("THREADS", sx.Int(n))
	return nil
}

//SetWriteWaves sets whether SPHInX writes the wave functions at the end.
func (Q *Input) SetWriteWaves(w bool) {
	Q.Set("WriteWaves", sx.Bool(w))
}

//SetSaveMemory sets whether SPHInX trades speed for memory in the basis.
func (Q *Input) SetSaveMemory(s bool) {
	Q.Set("SaveMemory", sx.Bool(s))
}

//SetMixingParameters sets the density mixing method (PULAY or LINEAR),
//the number of previous steps used by the mixer and the density and spin
//mixing coefficients. A bad method or history length gives an error
//matching ErrPrecondition, a coefficient out of [0,1], ErrConfiguration.
func (Q *Input) SetMixingParameters(method string, nHistory int, rho, spin float64) error {
	m, err := CheckMixing(method, nHistory, rho, spin)
	if err != nil {
		return errDecorate(err, "SetMixingParameters")
	}
	Q.mixingMethod = m
	Q.nHistory = nHistory
	Q.Set("rhoMixing", sx.Float(rho))
	Q.Set("spinMixing", sx.Float(spin))
	return nil
}

//MixingMethod returns the mixing method and history length set with
//SetMixingParameters, or an empty string if it was never called.
func (Q *Input) MixingMethod() (string, int) {
	return Q.mixingMethod, Q.nHistory
}

//SetExchangeCorrelation sets the exchange-correlation functional. Names
//that are not recognized are accepted on a best-effort basis, and the
//returned Advisory says what was done with them.
func (Q *Input) SetExchangeCorrelation(xc string) (*Advisory, error) {
	if strings.TrimSpace(xc) == "" {
		return nil, newError(ErrConfiguration, "", "empty exchange-correlation functional", "SetExchangeCorrelation")
	}
	name, adv := NormalizeXC(xc)
	if adv != nil {
		log.Warn().Str("given", xc).Str("used", name).Msg(adv.Message)
	}
	Q.Set("Xcorr", sx.Raw(name))
	return adv, nil
}

//ExchangeCorrelation returns the exchange-correlation functional.
func (Q *Input) ExchangeCorrelation() string {
	v, _ := Q.params.Get("Xcorr")
	if r, ok := v.(sx.Raw); ok {
		return string(r)
	}
	return ""
}

//CalcStatic sets up a single-point calculation with the given SCF
//algorithm, blockCCG or ccg. An empty string selects blockCCG. Other
//names also give blockCCG, plus an Advisory.
func (Q *Input) CalcStatic(algorithm string) *Advisory {
	Q.minimize = false
	Q.params.Delete("Istep")
	if algorithm == "" {
		Q.algorithm = "blockCCG"
		return nil
	}
	if a, ok := scfAlgorithms[strings.ToLower(algorithm)]; ok {
		Q.algorithm = a
		return nil
	}
	Q.algorithm = "blockCCG"
	adv := &Advisory{Field: "algorithm", Given: algorithm, Resolved: Q.algorithm, Message: "SCF algorithm not recognized"}
	log.Warn().Str("given", algorithm).Str("used", Q.algorithm).Msg(adv.Message)
	return adv
}

//CalcMinimize sets up a geometry optimization with at most ionicSteps
//steps, each with at most electronicSteps SCF cycles.
func (Q *Input) CalcMinimize(electronicSteps, ionicSteps int) error {
	if electronicSteps < 1 || ionicSteps < 1 {
		return newError(ErrConfiguration, "", fmt.Sprintf("steps must be positive, got %d electronic and %d ionic", electronicSteps, ionicSteps), "CalcMinimize")
	}
	Q.Set("Estep", sx.Int(electronicSteps))
	Q.Set("Istep", sx.Int(ionicSteps))
	Q.minimize = true
	return nil
}

//Minimize returns true if the Input describes a geometry optimization.
func (Q *Input) Minimize() bool {
	return Q.minimize
}

//Algorithm returns the SCF algorithm.
func (Q *Input) Algorithm() string {
	return Q.algorithm
}

//AddRestartFile registers a file from a previous calculation to start
//from. The density is then kept fixed at the beginning of the SCF, and
//the files called rho.sxb and waves.sxb replace the initial guess.
func (Q *Input) AddRestartFile(name string) {
	Q.restart = append(Q.restart, name)
}

//RestartFiles returns the registered restart files.
func (Q *Input) RestartFiles() []string {
	return append([]string(nil), Q.restart...)
}

//SetFixSpinConstraint sets whether the atomic spins are constrained to
//their initial values during the calculation.
func (Q *Input) SetFixSpinConstraint(fix bool) {
	Q.fixSpin = fix
	Q.fixSpinSet = true
}

//FixSpinConstraint returns the spin constraint setting, and whether it
//was ever set.
func (Q *Input) FixSpinConstraint() (fix, set bool) {
	return Q.fixSpin, Q.fixSpinSet
}

//Validate checks the whole Input, including values given with Set, and
//returns the first problem found, matching ErrConfiguration.
func (Q *Input) Validate() error {
	if err := CheckCutoff(Q.number("EnCut")); err != nil {
		return errDecorate(err, "Validate")
	}
	v, _ := Q.params.Get("KpointFolding")
	fold, ok := sx.AsFloats(v)
	if !ok || len(fold) != 3 {
		return newError(ErrConfiguration, "", "k-point folding must be 3 integers", "Validate")
	}
	for _, f := range fold {
		if f < 1 || f != math.Trunc(f) {
			return newError(ErrConfiguration, "", fmt.Sprintf("k-point folding must be 3 positive integers, got %v", fold), "Validate")
		}
	}
	v, _ = Q.params.Get("KpointCoords")
	if c, ok := sx.AsFloats(v); !ok || len(c) != 3 {
		return newError(ErrConfiguration, "", "k-point coordinates must be 3 numbers", "Validate")
	}
	if e := Q.number("Estep"); !(e >= 1) {
		return newError(ErrConfiguration, "", "Estep must be positive", "Validate")
	}
	if Q.minimize && !(Q.number("Istep") >= 1) {
		return newError(ErrConfiguration, "", "Istep must be positive", "Validate")
	}
	if e := Q.number("Ediff"); !(e > 0) {
		return newError(ErrConfiguration, "", "Ediff must be positive", "Validate")
	}
	if s := Q.number("Sigma"); !(s >= 0) {
		return newError(ErrConfiguration, "", "Sigma can't be negative", "Validate")
	}
	for _, m := range []string{"rhoMixing", "spinMixing"} {
		if err := checkUnit(m, Q.number(m)); err != nil {
			return errDecorate(err, "Validate")
		}
	}
	if Q.ExchangeCorrelation() == "" {
		return newError(ErrConfiguration, "", "no exchange-correlation functional", "Validate")
	}
	return nil
}

//CheckSetup returns true if the settings the results depend most on (the
//cutoff, the k-points and the number of empty states) were given
//explicitly. If not, it returns false and one Advisory per setting left
//at its default.
func (Q *Input) CheckSetup() (bool, []*Advisory) {
	var adv []*Advisory
	if !Q.explicit["EnCut"] {
		adv = append(adv, &Advisory{Field: "EnCut", Message: "plane-wave cutoff not set, default used"})
	}
	if !Q.explicit["KpointFolding"] {
		adv = append(adv, &Advisory{Field: "KpointFolding", Message: "k-point mesh not set, default used"})
	}
	if !Q.explicit["EmptyStates"] {
		adv = append(adv, &Advisory{Field: "EmptyStates", Message: "number of empty states not set, 3+1.5*natoms used"})
	}
	return len(adv) == 0, adv
}

func isAuto(v sx.Value) bool {
	r, ok := v.(sx.Raw)
	return ok && r == EmptyStatesAuto
}

//variables returns the SPHInX variables for a structure with natoms atoms.
func (Q *Input) variables(natoms int) *sx.Group {
	p := Q.params.Copy()
	if v, _ := p.Get("EmptyStates"); v == nil || isAuto(v) {
		p.Set("EmptyStates", sx.Int(Q.EmptyStates(natoms)))
	}
	return p
}
