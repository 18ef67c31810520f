/*
 * sections.go, part of gospx.
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
	"path/filepath"
	"strings"

	chem "github.com/rmera/gospx"
	"github.com/rmera/gospx/sx"
	v3 "github.com/rmera/gospx/v3"
)

//Section is one of the files that make up a SPHInX input.
type Section int

const (
	Basis Section = iota
	Control
	Structure
	Potentials
	Guess
	UserParameters
	Hamiltonian
	Top
)

//Sections lists all the sections, in the order they are written.
var Sections = []Section{Basis, Control, Structure, Potentials, Guess, UserParameters, Hamiltonian, Top}

var sectionFiles = [...]string{
	Basis:          "basis.sx",
	Control:        "control.sx",
	Structure:      "structure.sx",
	Potentials:     "potentials.sx",
	Guess:          "guess.sx",
	UserParameters: "userparameters.sx",
	Hamiltonian:    "hamilton.sx",
	Top:            "input.sx",
}

var sectionNames = [...]string{"basis", "control", "structure", "potentials", "guess", "userparameters", "hamiltonian", "top"}

//FileName returns the name of the file the section is written to.
func (s Section) FileName() string {
	if s < 0 || int(s) >= len(sectionFiles) {
		return ""
	}
	return sectionFiles[s]
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("Section(%d)", int(s))
	}
	return sectionNames[s]
}

//SpinsFile is written, with the spin of each atom in solver order, when
//the spins are constrained.
const SpinsFile = "spins.in"

//The parameters file shipped with SPHInX, included but not written.
const parametersFile = "parameters.sx"

//job gathers what the sections are built from.
type job struct {
	H     *Handle
	Q     *Input
	S     chem.Periodic
	order *AtomOrder
	spin  bool
}

func newJob(H *Handle, S chem.Periodic, Q *Input) *job {
	labels := make([]string, S.Len())
	spin := false
	for i := range labels {
		at := S.Atom(i)
		labels[i] = at.Label()
		spin = spin || at.Magnetic
	}
	return &job{H: H, Q: Q, S: S, order: NewAtomOrder(labels), spin: spin}
}

//spinLabel is the label SPHInX uses to tell atoms of one species with
//different spins apart.
func spinLabel(spin float64) string {
	return "spin_" + sx.FormatFloat(spin)
}

//solverAtoms returns the atoms in solver order.
func (J *job) solverAtoms() []*chem.Atom {
	ret := make([]*chem.Atom, J.order.Len())
	for k, i := range J.order.ToSolver {
		ret[k] = J.S.Atom(i)
	}
	return ret
}

func (J *job) spinOf(at *chem.Atom) float64 {
	if at.Magnetic {
		return at.Spin
	}
	return 0
}

func (J *job) group(s Section) (*sx.Group, error) {
	switch s {
	case Basis:
		return J.basis(), nil
	case Control:
		return J.control(), nil
	case Structure:
		return J.structure()
	case Potentials:
		return J.potentials(), nil
	case Guess:
		return J.guess(), nil
	case Hamiltonian:
		return J.hamiltonian(), nil
	case Top:
		return J.top(), nil
	}
	return nil, newError(ErrPrecondition, s.FileName(), fmt.Sprintf("no group for section %s", s), "group")
}

//render returns the text of the section s.
func (J *job) render(s Section) ([]byte, error) {
	if s == UserParameters {
		b, err := sx.MarshalVariables(J.Q.variables(J.S.Len()))
		if err != nil {
			return nil, Error{"can't write the parameters", ErrConfiguration, s.FileName(), err, []string{"render"}, true}
		}
		return b, nil
	}
	g, err := J.group(s)
	if err != nil {
		return nil, errDecorate(err, "render")
	}
	return sx.Marshal(g), nil
}

func (J *job) basis() *sx.Group {
	g := sx.NewGroup()
	g.Set("eCut", sx.Raw("EnCut/13.606"))
	k := g.Group("kPoint")
	k.Set("coords", sx.Raw("KpointCoords"))
	k.Set("weight", sx.Int(1))
	k.Flag("relative")
	g.Set("folding", sx.Raw("KpointFolding"))
	if J.Q.flag("SaveMemory") {
		g.Flag("saveMemory")
	}
	return g
}

func (J *job) scfDiag() *sx.Group {
	Q := J.Q
	scf := sx.NewGroup()
	scf.Set("rhoMixing", sx.Float(Q.number("rhoMixing")))
	scf.Set("spinMixing", sx.Float(Q.number("spinMixing")))
	if Q.mixingMethod != "" {
		scf.Set("mixingMethod", sx.Raw(Q.mixingMethod))
		scf.Set("nPulaySteps", sx.Int(Q.nHistory))
	}
	scf.Set("dEnergy", sx.Raw("Ediff/"+sx.FormatFloat(chem.H2eV)))
	scf.Set("maxSteps", sx.Int(int64(Q.number("Estep"))))
	if len(Q.restart) > 0 {
		scf.Flag("keepRho")
	}
	scf.Group(Q.algorithm)
	return scf
}

func (J *job) control() *sx.Group {
	g := sx.NewGroup()
	if J.Q.minimize {
		lin := g.Group("linQN")
		lin.Set("maxSteps", sx.Int(int64(J.Q.number("Istep"))))
		lin.Set("dEnergy", sx.Raw("Ediff/"+sx.FormatFloat(chem.H2eV)))
		lin.Group("bornOppenheimer").Add("scfDiag", J.scfDiag())
	} else {
		g.Add("scfDiag", J.scfDiag())
	}
	g.Group("evalForces").Set("file", sx.String(J.H.historyName))
	return g
}

func (J *job) hamiltonian() *sx.Group {
	g := sx.NewGroup()
	g.Set("nEmptyStates", sx.Raw("EmptyStates"))
	g.Set("ekt", sx.Raw("Sigma"))
	g.Set("MethfesselPaxton", sx.Int(1))
	g.Set("xc", sx.Raw("Xcorr"))
	if J.spin {
		g.Flag("spinPolarized")
	}
	if fix, _ := J.Q.FixSpinConstraint(); fix {
		g.Group("spinConstraint").Set("file", sx.String(SpinsFile))
	}
	return g
}

//restartFile returns the registered restart file called base, if any.
func (J *job) restartFile(base string) (string, bool) {
	for _, r := range J.Q.restart {
		if filepath.Base(r) == base {
			return r, true
		}
	}
	return "", false
}

func (J *job) guess() *sx.Group {
	g := sx.NewGroup()
	waves := g.Group("waves")
	if f, ok := J.restartFile("waves.sxb"); ok {
		waves.Set("file", sx.String(f))
	} else {
		waves.Group("lcao")
	}
	waves.Flag("pawBasis")
	rho := g.Group("rho")
	if f, ok := J.restartFile("rho.sxb"); ok {
		rho.Set("file", sx.String(f))
		return g
	}
	rho.Flag("atomicOrbitals")
	if !J.spin {
		return g
	}
	for _, at := range J.solverAtoms() {
		s := J.spinOf(at)
		as := rho.AddGroup("atomicSpin")
		as.Set("label", sx.String(spinLabel(s)))
		as.Set("spin", sx.Float(s))
	}
	return g
}

//symbols returns, for each species in solver order, the element.
func (J *job) symbols() []string {
	ret := make([]string, 0, len(J.order.species))
	seen := make(map[string]bool)
	for _, at := range J.solverAtoms() {
		if !seen[at.Label()] {
			seen[at.Label()] = true
			ret = append(ret, at.Symbol)
		}
	}
	return ret
}

func (J *job) potentials() *sx.Group {
	g := sx.NewGroup()
	species := J.order.Species()
	for i, sym := range J.symbols() {
		s := g.AddGroup("species")
		s.Set("name", sx.String(sym))
		s.Set("potType", sx.String(J.H.potType))
		s.Set("element", sx.String(sym))
		s.Set("potential", sx.String(J.H.Potential(species[i], sym)))
	}
	return g
}

func (J *job) structure() (*sx.Group, error) {
	g := sx.NewGroup()
	cell := J.S.Cell()
	if cell == nil || cell.NVecs() != 3 {
		return nil, newError(ErrConfiguration, Structure.FileName(), "the structure needs 3 cell vectors", "structure")
	}
	bohr := v3.Zeros(3)
	bohr.Divide(chem.Bohr2A, cell)
	g.Set("cell", sx.Matrix(bohr.Rows()))
	if J.S.Len() == 0 {
		return g, nil
	}
	pos := J.S.Positions()
	if pos == nil || pos.NVecs() != J.S.Len() {
		return nil, newError(ErrConfiguration, Structure.FileName(), chem.ErrMismatch, "structure")
	}
	solver, err := J.order.SolverVecs(pos)
	if err != nil {
		return nil, Error{"can't order the atoms", ErrConfiguration, Structure.FileName(), err, []string{"structure"}, true}
	}
	solver.Divide(chem.Bohr2A, solver)
	if solver.HasNaN() {
		return nil, newError(ErrConfiguration, Structure.FileName(), "positions contain NaN or Inf", "structure")
	}
	var sp *sx.Group
	prev := ""
	for k, at := range J.solverAtoms() {
		if sp == nil || at.Label() != prev {
			sp = g.AddGroup("species")
			sp.Set("element", sx.String(at.Symbol))
			prev = at.Label()
		}
		a := sp.AddGroup("atom")
		if J.spin {
			a.Set("label", sx.String(spinLabel(J.spinOf(at))))
		}
		a.Set("coords", sx.Floats(solver.Vec(k)))
	}
	return g, nil
}

func (J *job) top() *sx.Group {
	g := sx.NewGroup()
	g.Comment(J.H.name)
	g.Comment("SPHinX input file generated by " + J.H.generator)
	g.Add("format", sx.Word("paw"))
	g.Add("include", include(parametersFile))
	g.Add("include", include(UserParameters.FileName()))
	wrappers := []struct {
		name string
		s    Section
	}{
		{"pawPot", Potentials},
		{"structure", Structure},
		{"basis", Basis},
		{"PAWHamiltonian", Hamiltonian},
		{"initialGuess", Guess},
		{"main", Control},
	}
	for _, w := range wrappers {
		g.Group(w.name).Add("include", include(w.s.FileName()))
	}
	return g
}

func include(file string) sx.Word {
	return sx.Word("<" + file + ">")
}

//spins returns the content of the spins.in file.
func (J *job) spins() []byte {
	var b strings.Builder
	for _, at := range J.solverAtoms() {
		b.WriteString(sx.FormatFloat(J.spinOf(at)) + "\n")
	}
	return []byte(b.String())
}
