/*
 * sphinx.go, part of gospx.
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
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	chem "github.com/rmera/gospx"
)

//Handle writes SPHInX inputs and collects the results of a job. A Handle
//keeps the AtomOrder of the last structure it wrote, so it should not be
//shared between jobs.
type Handle struct {
	name        string
	generator   string
	logName     string
	historyName string
	potType     string
	potDir      string
	potentials  map[string]string
	order       *AtomOrder
	species     [][2]string //label and element of each species of the last structure
	aborted     bool
}

//NewHandle returns a Handle with the default settings.
func NewHandle() *Handle {
	run := new(Handle)
	run.SetDefaults()
	return run
}

//Handle methods

//SetDefaults sets the default file names and the VASP potential type.
func (H *Handle) SetDefaults() {
	H.name = "gospx"
	H.generator = "gospx"
	H.logName = "sphinx.log"
	H.historyName = "relaxHist.sx"
	H.potType = "VASP"
	H.potDir = ""
	H.potentials = make(map[string]string)
	H.order = nil
	H.species = nil
	H.aborted = false
}

//SetName sets the job name, written as a comment at the top of input.sx.
func (H *Handle) SetName(name string) {
	H.name = name
}

//Name returns the job name.
func (H *Handle) Name() string {
	return H.name
}

//SetGenerator sets the program name given in input.sx as the author of
//the input.
func (H *Handle) SetGenerator(name string) {
	H.generator = name
}

//SetLogName sets the name of the SPHInX log, read by Collect.
func (H *Handle) SetLogName(name string) {
	H.logName = name
}

//SetHistoryName sets the name of the relaxation history file, which is
//also the one SPHInX is told to write.
func (H *Handle) SetHistoryName(name string) {
	H.historyName = name
}

//SetPotentialType sets the kind of the pseudopotentials, i.e. VASP or
//AtomPAW.
func (H *Handle) SetPotentialType(t string) {
	H.potType = t
}

//SetPotentialDir sets a directory from which the potential files are
//copied to the job directory by BuildInput. With an empty string, the
//default, nothing is copied.
func (H *Handle) SetPotentialDir(dir string) {
	H.potDir = dir
}

//SetPotential sets the potential file for a species label or element.
func (H *Handle) SetPotential(species, file string) {
	H.potentials[species] = file
}

//Potential returns the potential file for a species with the given label
//and element. If none was set, for either, it is <element>_POTCAR.
func (H *Handle) Potential(label, element string) string {
	if f, ok := H.potentials[label]; ok {
		return f
	}
	if f, ok := H.potentials[element]; ok {
		return f
	}
	return element + "_POTCAR"
}

//SetOrder sets the atom order used to read per-atom quantities. It is
//only needed when collecting a job whose input was not written by this
//Handle.
func (H *Handle) SetOrder(order *AtomOrder) {
	H.order = order
}

//Order returns the atom order of the last structure written, or the one
//given with SetOrder.
func (H *Handle) Order() *AtomOrder {
	return H.order
}

//MarkAborted flags the job as aborted. Collect will then always fail.
func (H *Handle) MarkAborted(aborted bool) {
	H.aborted = aborted
}

//Render returns the content of all the input files for the structure S
//and the settings Q, keyed by file name. Nothing is written.
func (H *Handle) Render(S chem.Periodic, Q *Input) (map[string][]byte, error) {
	if S == nil || Q == nil {
		return nil, newError(ErrPrecondition, "", chem.ErrNilData, "Render")
	}
	if err := Q.Validate(); err != nil {
		return nil, errDecorate(err, "Render")
	}
	J := newJob(H, S, Q)
	fix, _ := Q.FixSpinConstraint()
	if fix && !J.spin {
		return nil, newError(ErrPrecondition, "", "spin constraint requested for a structure with no spins", "Render")
	}
	ret := make(map[string][]byte, len(Sections)+1)
	for _, s := range Sections {
		b, err := J.render(s)
		if err != nil {
			return nil, errDecorate(err, "Render")
		}
		ret[s.FileName()] = b
	}
	if fix {
		ret[SpinsFile] = J.spins()
	}
	H.order = J.order
	H.species = H.species[:0]
	for i, sym := range J.symbols() {
		H.species = append(H.species, [2]string{J.order.species[i], sym})
	}
	return ret, nil
}

//BuildInput writes all the input files for the structure S and the
//settings Q to the directory dir, creating it if needed. Every file is
//rendered, and every potential to be copied is found, before anything is
//written.
func (H *Handle) BuildInput(dir string, S chem.Periodic, Q *Input) error {
	files, err := H.Render(S, Q)
	if err != nil {
		return errDecorate(err, "BuildInput")
	}
	pots, err := H.potentialFiles()
	if err != nil {
		return errDecorate(err, "BuildInput")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Error{"can't create the job directory", ErrConfiguration, dir, err, []string{"BuildInput"}, true}
	}
	names := make([]string, 0, len(files))
	for _, s := range Sections {
		names = append(names, s.FileName())
	}
	if _, ok := files[SpinsFile]; ok {
		names = append(names, SpinsFile)
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := writeFile(path, files[name]); err != nil {
			return Error{"can't write input", ErrConfiguration, path, err, []string{"writeFile", "BuildInput"}, true}
		}
		log.Debug().Str("path", path).Int("bytes", len(files[name])).Msg("sphinx: input written")
	}
	for _, src := range pots {
		dst := filepath.Join(dir, filepath.Base(src))
		if err := copyFile(dst, src); err != nil {
			return Error{"can't copy potential", ErrConfiguration, src, err, []string{"copyFile", "BuildInput"}, true}
		}
		log.Debug().Str("from", src).Str("to", dst).Msg("sphinx: potential copied")
	}
	return nil
}

//potentialFiles returns the potentials to copy for the last structure
//rendered, checking that they exist.
func (H *Handle) potentialFiles() ([]string, error) {
	if H.potDir == "" {
		return nil, nil
	}
	var ret []string
	seen := make(map[string]bool)
	for _, sp := range H.species {
		src := filepath.Join(H.potDir, H.Potential(sp[0], sp[1]))
		if seen[src] {
			continue
		}
		seen[src] = true
		if _, err := os.Stat(src); err != nil {
			return nil, Error{"potential not found", ErrConfiguration, src, err, []string{"potentialFiles"}, true}
		}
		ret = append(ret, src)
	}
	return ret, nil
}

//Collect reads the results of the job in dir: the log and, if present,
//the free energies of a geometry optimization. Per-atom quantities are
//put in the order of the structure written last (or given with SetOrder).
//It fails with an error matching ErrParseIncomplete if the job was marked
//as aborted, or if the log shows the run did not complete an SCF loop.
func (H *Handle) Collect(dir string) (*Record, error) {
	if H.aborted {
		return nil, newError(ErrParseIncomplete, H.name, "job marked as aborted", "Collect")
	}
	name := filepath.Join(dir, H.logName)
	f, err := openArtifact(name)
	if err != nil {
		return nil, Error{"can't open log", ErrParseIncomplete, name, err, []string{"openArtifact", "Collect"}, true}
	}
	defer f.Close()
	if H.order == nil {
		log.Debug().Str("file", name).Msg("sphinx: no atom order, spins kept in file order")
	}
	rec, err := ParseLog(f, H.order, f.name)
	if err != nil {
		return nil, errDecorate(err, "Collect")
	}
	if rec.energyFree, err = H.collectEnergies(dir); err != nil {
		return nil, errDecorate(err, "Collect")
	}
	if err := rec.Check(); err != nil {
		return nil, errDecorate(err, "Collect")
	}
	return rec, nil
}

//collectEnergies returns nil, and no error, if there is no energy file.
func (H *Handle) collectEnergies(dir string) ([]float64, error) {
	name := filepath.Join(dir, EnergyFile)
	f, err := openArtifact(name)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", name).Msg("sphinx: no energy file")
		return nil, nil
	}
	if err != nil {
		return nil, Error{"can't open energies", ErrMalformed, name, err, []string{"openArtifact", "collectEnergies"}, true}
	}
	defer f.Close()
	return ReadEnergies(f, f.name)
}

//CollectRelaxedHistory reads the relaxation history file called name in
//dir. With an empty name, the one set with SetHistoryName (relaxHist.sx
//by default) is read. It doesn't need Collect to be called first.
func (H *Handle) CollectRelaxedHistory(dir, name string) ([]*Snapshot, error) {
	if name == "" {
		name = H.historyName
	}
	path := filepath.Join(dir, name)
	f, err := openArtifact(path)
	if err != nil {
		return nil, Error{"can't open history", ErrMalformed, path, err, []string{"openArtifact", "CollectRelaxedHistory"}, true}
	}
	defer f.Close()
	snaps, err := ReadHistory(f, H.order, f.name)
	if err != nil {
		return nil, errDecorate(err, fmt.Sprintf("CollectRelaxedHistory %s", name))
	}
	return snaps, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
