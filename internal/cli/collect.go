/*
 * collect.go, part of gospx.
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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	chem "github.com/rmera/gospx"
	"github.com/rmera/gospx/sphinx"
)

//ValidFormats are the output formats of collect.
var ValidFormats = []string{"json", "yaml"}

type collectOptions struct {
	dir     string
	job     string
	history string
	format  string
	xyz     string
	aborted bool
}

//snapshot is the exported form of a sphinx.Snapshot.
type snapshot struct {
	Cell      [][]float64 `json:"cell" yaml:"cell"`
	Positions [][]float64 `json:"positions" yaml:"positions"`
	Forces    [][]float64 `json:"forces,omitempty" yaml:"forces,omitempty"`
	Elements  []string    `json:"elements" yaml:"elements"`
}

//NewCollectCommand creates the collect command.
func NewCollectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &collectOptions{}
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Read the results of a SPHInX run",
		Long: `Read the log of a SPHInX run (and the energies of a geometry
optimization, if present) and print the results as JSON or YAML. If the
job file is given, per-atom results are put in the order of its structure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory of the run")
	cmd.Flags().StringVar(&opts.job, "job", "", "job file the run was written from")
	cmd.Flags().StringVar(&opts.history, "history", "", "also read this relaxation history file")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format (json|yaml)")
	cmd.Flags().StringVar(&opts.xyz, "xyz", "", "write the relaxation history to this extended XYZ file")
	cmd.Flags().BoolVar(&opts.aborted, "aborted", false, "the run is known to have been aborted")
	return cmd
}

func runCollect(opts *collectOptions, w io.Writer) error {
	if !isInString(ValidFormats, opts.format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.format, ValidFormats)
	}
	if opts.xyz != "" && opts.history == "" {
		return fmt.Errorf("--xyz needs --history")
	}
	order, err := jobOrder(opts.job)
	if err != nil {
		return err
	}
	H := sphinx.NewHandle()
	H.SetOrder(order)
	H.MarkAborted(opts.aborted)
	rec, err := H.Collect(opts.dir)
	if err != nil {
		return err
	}
	out := rec.Map()
	if opts.history != "" {
		snaps, err := H.CollectRelaxedHistory(opts.dir, opts.history)
		if err != nil {
			return err
		}
		hist := make([]snapshot, len(snaps))
		for i, s := range snaps {
			hist[i] = snapshot{Cell: s.Cell.Rows(), Positions: s.Positions.Rows(), Elements: s.Elements}
			if s.Forces != nil {
				hist[i].Forces = s.Forces.Rows()
			}
		}
		out["history"] = hist
		if opts.xyz != "" {
			if err := writeTrajectory(opts.xyz, snaps); err != nil {
				return err
			}
		}
	}
	if opts.format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

//writeTrajectory writes the snapshots to the file name, one extended XYZ
//frame each.
func writeTrajectory(name string, snaps []*sphinx.Snapshot) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	for i, s := range snaps {
		if err := chem.XYZFrameWrite(f, s.Elements, s.Cell, s.Positions, nil, fmt.Sprintf("step=%d", i)); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func isInString(container []string, test string) bool {
	for _, s := range container {
		if s == test {
			return true
		}
	}
	return false
}
