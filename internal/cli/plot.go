/*
 * plot.go, part of gospx.
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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"

	"github.com/rmera/gospx/sphinx"
	"github.com/rmera/gospx/sphinxplot"
)

//PlotKinds are the plots the plot command can make.
var PlotKinds = []string{"residue", "energy", "bands"}

type plotOptions struct {
	dir   string
	step  int
	kind  string
	out   string
	title string
}

//NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot the SCF convergence or the bands of a SPHInX run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(opts)
		},
	}
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory of the run")
	cmd.Flags().IntVar(&opts.step, "step", -1, "SCF loop to plot, negative numbers count from the end")
	cmd.Flags().StringVar(&opts.kind, "kind", "residue", "what to plot (residue|energy|bands)")
	cmd.Flags().StringVar(&opts.out, "out", "scf.png", "output file, the extension gives the format")
	cmd.Flags().StringVar(&opts.title, "title", "", "plot title")
	return cmd
}

func runPlot(opts *plotOptions) error {
	if !isInString(PlotKinds, opts.kind) {
		return fmt.Errorf("invalid plot kind %q: must be one of %v", opts.kind, PlotKinds)
	}
	rec, err := sphinx.NewHandle().Collect(opts.dir)
	if err != nil {
		return err
	}
	step := opts.step
	if step < 0 {
		step += rec.Steps()
	}
	title := opts.title
	if title == "" {
		title = fmt.Sprintf("%s, step %d", opts.dir, step)
	}
	var p *plot.Plot
	switch opts.kind {
	case "residue":
		p, err = sphinxplot.Convergence(rec, step, title)
	case "energy":
		p, err = sphinxplot.Energies(rec, step, title)
	case "bands":
		p, err = sphinxplot.Eigenvalues(rec, step, title)
	}
	if err != nil {
		return err
	}
	if err := sphinxplot.Save(p, opts.out); err != nil {
		return err
	}
	log.Info().Str("file", opts.out).Int("step", step).Msg("plot written")
	return nil
}
