/*
 * job.go, part of gospx.
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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	chem "github.com/rmera/gospx"
	"github.com/rmera/gospx/sphinx"
	v3 "github.com/rmera/gospx/v3"
)

//Job is the description of a calculation, as read from a YAML file.
type Job struct {
	Name        string            `yaml:"name"`
	Structure   JobStructure      `yaml:"structure"`
	Parameters  JobParameters     `yaml:"parameters"`
	Calculation JobCalculation    `yaml:"calculation"`
	Potentials  map[string]string `yaml:"potentials"`
	Restart     []string          `yaml:"restart"`
	dir         string
}

//JobStructure is a periodic structure. The cell vectors and the
//cartesian positions are in A. If XYZ is given, the structure is read
//from that extended XYZ file instead, relative to the job file.
type JobStructure struct {
	XYZ    string      `yaml:"xyz"`
	Cell   [][]float64 `yaml:"cell"`
	Scaled bool        `yaml:"scaled"` //positions are fractional
	Atoms  []JobAtom   `yaml:"atoms"`
}

type JobAtom struct {
	Element  string    `yaml:"element"`
	Species  string    `yaml:"species"`
	Spin     *float64  `yaml:"spin"`
	Position []float64 `yaml:"position"`
}

//JobParameters are the electronic settings. Zero values leave the
//defaults alone, except for the cutoff, where only a missing value does.
type JobParameters struct {
	Cutoff      *float64    `yaml:"cutoff"`
	Kpoints     *JobKpoints `yaml:"kpoints"`
	EmptyStates int         `yaml:"empty_states"`
	Sigma       float64     `yaml:"sigma"`
	Ediff       float64     `yaml:"ediff"`
	Threads     int         `yaml:"threads"`
	XC          string      `yaml:"xc"`
	Mixing      *JobMixing  `yaml:"mixing"`
	FixSpins    *bool       `yaml:"fix_spins"`
	WriteWaves  *bool       `yaml:"write_waves"`
	SaveMemory  *bool       `yaml:"save_memory"`
}

type JobKpoints struct {
	Folding [3]int     `yaml:"folding"`
	Coords  [3]float64 `yaml:"coords"`
}

type JobMixing struct {
	Method  string  `yaml:"method"`
	History int     `yaml:"history"`
	Rho     float64 `yaml:"rho"`
	Spin    float64 `yaml:"spin"`
}

//JobCalculation selects a static calculation (the default) or a
//geometry optimization.
type JobCalculation struct {
	Mode            string `yaml:"mode"` //static or minimize
	Algorithm       string `yaml:"algorithm"`
	ElectronicSteps int    `yaml:"electronic_steps"`
	IonicSteps      int    `yaml:"ionic_steps"`
}

//ReadJob decodes a job from r. Unknown keys are rejected.
func ReadJob(r io.Reader) (*Job, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	J := new(Job)
	if err := dec.Decode(J); err != nil {
		return nil, fmt.Errorf("reading job: %w", err)
	}
	return J, nil
}

//ReadJobFile reads the job in the file name.
func ReadJobFile(name string) (*Job, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	J, err := ReadJob(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	J.dir = filepath.Dir(name)
	return J, nil
}

//Crystal builds the structure of the job.
func (J *Job) Crystal() (*chem.Crystal, error) {
	S := J.Structure
	if S.XYZ != "" {
		name := S.XYZ
		if !filepath.IsAbs(name) {
			name = filepath.Join(J.dir, name)
		}
		return chem.XYZFileRead(name)
	}
	if len(S.Atoms) == 0 {
		return nil, fmt.Errorf("job has no atoms")
	}
	cell, err := v3.FromRows(S.Cell)
	if err != nil {
		return nil, fmt.Errorf("cell: %w", err)
	}
	ats := make([]*chem.Atom, len(S.Atoms))
	rows := make([][]float64, len(S.Atoms))
	for i, a := range S.Atoms {
		ats[i] = &chem.Atom{Symbol: a.Element, Species: a.Species}
		if a.Spin != nil {
			ats[i].Spin = *a.Spin
			ats[i].Magnetic = true
		}
		rows[i] = a.Position
	}
	pos, err := v3.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	if !S.Scaled {
		if pos, err = chem.Fractional(pos, cell); err != nil {
			return nil, err
		}
	}
	return chem.NewCrystal(ats, cell, pos)
}

//Input builds the settings of the job. The advisories are the
//adjustments made to the values given.
func (J *Job) Input() (*sphinx.Input, []*sphinx.Advisory, error) {
	Q := sphinx.NewInput()
	var adv []*sphinx.Advisory
	P := J.Parameters
	if P.Cutoff != nil {
		if err := Q.SetPlaneWaveCutoff(*P.Cutoff); err != nil {
			return nil, nil, err
		}
	}
	if P.Kpoints != nil {
		if err := Q.SetKpoints(P.Kpoints.Folding, P.Kpoints.Coords); err != nil {
			return nil, nil, err
		}
	}
	if P.EmptyStates != 0 {
		if err := Q.SetEmptyStates(P.EmptyStates); err != nil {
			return nil, nil, err
		}
	}
	if P.Sigma != 0 {
		if err := Q.SetSigma(P.Sigma); err != nil {
			return nil, nil, err
		}
	}
	if P.Ediff != 0 {
		if err := Q.SetEnergyConvergence(P.Ediff); err != nil {
			return nil, nil, err
		}
	}
	if P.Threads != 0 {
		if err := Q.SetThreads(P.Threads); err != nil {
			return nil, nil, err
		}
	}
	if P.XC != "" {
		a, err := Q.SetExchangeCorrelation(P.XC)
		if err != nil {
			return nil, nil, err
		}
		if a != nil {
			adv = append(adv, a)
		}
	}
	if m := P.Mixing; m != nil {
		if err := Q.SetMixingParameters(m.Method, m.History, m.Rho, m.Spin); err != nil {
			return nil, nil, err
		}
	}
	if P.FixSpins != nil {
		Q.SetFixSpinConstraint(*P.FixSpins)
	}
	if P.WriteWaves != nil {
		Q.SetWriteWaves(*P.WriteWaves)
	}
	if P.SaveMemory != nil {
		Q.SetSaveMemory(*P.SaveMemory)
	}
	for _, r := range J.Restart {
		Q.AddRestartFile(r)
	}
	C := J.Calculation
	switch C.Mode {
	case "", "static":
		if a := Q.CalcStatic(C.Algorithm); a != nil {
			adv = append(adv, a)
		}
	case "minimize":
		if err := Q.CalcMinimize(C.ElectronicSteps, C.IonicSteps); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unknown calculation mode %q, static or minimize expected", C.Mode)
	}
	return Q, adv, nil
}

//Handle returns a handle for the job, with the given global settings.
func (J *Job) Handle(s Settings) *sphinx.Handle {
	H := sphinx.NewHandle()
	if J.Name != "" {
		H.SetName(J.Name)
	}
	if s.Generator != "" {
		H.SetGenerator(s.Generator)
	}
	if s.PotentialType != "" {
		H.SetPotentialType(s.PotentialType)
	}
	if s.PotentialDir != "" {
		H.SetPotentialDir(s.PotentialDir)
	}
	for sp, file := range J.Potentials {
		H.SetPotential(sp, file)
	}
	return H
}
