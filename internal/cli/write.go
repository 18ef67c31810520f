/*
 * write.go, part of gospx.
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
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rmera/gospx/sphinx"
)

type writeOptions struct {
	job    string
	dir    string
	dryRun bool
}

//NewWriteCommand creates the write command.
func NewWriteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &writeOptions{}
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write the SPHInX input files for a job",
		Long: `Write the SPHInX input files for the job described in a YAML file,
and copy the pseudopotentials if a potential directory is configured.
With --dry-run, the files are only listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.job, "job", "job.yaml", "job file")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory to write the inputs to")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render the inputs without writing anything")
	return cmd
}

func runWrite(rootOpts *RootOptions, opts *writeOptions, cmd *cobra.Command) error {
	job, err := ReadJobFile(opts.job)
	if err != nil {
		return err
	}
	S, err := job.Crystal()
	if err != nil {
		return err
	}
	Q, advisories, err := job.Input()
	if err != nil {
		return err
	}
	set := rootOpts.Settings()
	if set.Threads > 0 {
		if err := Q.SetThreads(set.Threads); err != nil {
			return err
		}
	}
	ready, missing := Q.CheckSetup()
	if !ready {
		for _, a := range missing {
			log.Warn().Str("field", a.Field).Msg(a.Message)
		}
	}
	for _, a := range advisories {
		fmt.Fprintln(cmd.ErrOrStderr(), "note:", a)
	}
	H := job.Handle(set)
	if opts.dryRun {
		files, err := H.Render(S, Q)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(files))
		for n := range files {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d bytes\n", n, len(files[n]))
		}
		return nil
	}
	if err := H.BuildInput(opts.dir, S, Q); err != nil {
		return err
	}
	log.Info().Str("dir", opts.dir).Int("atoms", S.Len()).Msg("inputs written")
	return nil
}

//jobOrder returns the atom order of the job in the file name, or nil if
//name is empty.
func jobOrder(name string) (*sphinx.AtomOrder, error) {
	if name == "" {
		return nil, nil
	}
	job, err := ReadJobFile(name)
	if err != nil {
		return nil, err
	}
	S, err := job.Crystal()
	if err != nil {
		return nil, err
	}
	return sphinx.NewAtomOrder(S.Labels()), nil
}
