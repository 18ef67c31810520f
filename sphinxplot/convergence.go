/*
 * convergence.go, part of gospx.
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

//Package sphinxplot produces plots of the results of SPHInX runs, as
//read by the sphinx package.
package sphinxplot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rmera/gospx/sphinx"
)

//ErrNoData is returned when the record lacks what a plot needs.
var ErrNoData = errors.New("sphinxplot: no data to plot")

//Size of the saved plots.
var (
	Width  = 5 * vg.Inch
	Height = 4 * vg.Inch
)

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func checkStep(rec *sphinx.Record, step int) error {
	if rec == nil {
		return fmt.Errorf("%w: nil record", ErrNoData)
	}
	if step < 0 || step >= rec.Steps() {
		return fmt.Errorf("%w: step %d requested, the record has %d", ErrNoData, step, rec.Steps())
	}
	return nil
}

//Convergence plots the density residue against the SCF cycle, in log
//scale, for the SCF loop step of rec.
func Convergence(rec *sphinx.Record, step int, title string) (*plot.Plot, error) {
	if err := checkStep(rec, step); err != nil {
		return nil, err
	}
	if !rec.Has(sphinx.SCFResidue) || len(rec.Cycles(sphinx.SCFResidue)[step]) == 0 {
		return nil, fmt.Errorf("%w: no residues in step %d", ErrNoData, step)
	}
	res := rec.Cycles(sphinx.SCFResidue)[step]
	pts := make(plotter.XYs, 0, len(res))
	for i, r := range res {
		//a zero residue can't go in a log scale
		if r <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: r})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: no positive residues in step %d", ErrNoData, step)
	}
	p := basicPlot(title, "SCF cycle", "Residue")
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	r, g, b := colors(0, 1)
	l.Color = color.RGBA{R: r, G: g, B: b, A: 255}
	s.Color = l.Color
	s.Shape = draw.CircleGlyph{}
	p.Add(l, s)
	return p, nil
}

//Energies plots the energy quantities qs (per-cycle quantities in eV)
//against the SCF cycle, for the SCF loop step of rec. The energies are
//given relative to the last value of the first quantity, so the
//convergence can be seen. Quantities not printed in the step are
//skipped.
func Energies(rec *sphinx.Record, step int, title string, qs ...sphinx.Quantity) (*plot.Plot, error) {
	if err := checkStep(rec, step); err != nil {
		return nil, err
	}
	if len(qs) == 0 {
		qs = []sphinx.Quantity{sphinx.SCFEnergyFree, sphinx.SCFEnergyInt, sphinx.SCFEnergyZero}
	}
	p := basicPlot(title, "SCF cycle", "E - E(last) (eV)")
	ref := math.NaN()
	var plotted int
	for i, q := range qs {
		if !q.PerCycle() {
			return nil, fmt.Errorf("sphinxplot: %s is not a per-cycle quantity", q)
		}
		vals := rec.Cycles(q)
		if vals == nil || len(vals[step]) == 0 {
			continue
		}
		if math.IsNaN(ref) {
			ref = vals[step][len(vals[step])-1]
		}
		pts := make(plotter.XYs, len(vals[step]))
		for j, v := range vals[step] {
			pts[j].X = float64(j + 1)
			pts[j].Y = v - ref
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(i, len(qs))
		l.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		p.Add(l)
		p.Legend.Add(q.String(), l)
		plotted++
	}
	if plotted == 0 {
		return nil, fmt.Errorf("%w: no energies in step %d", ErrNoData, step)
	}
	return p, nil
}

//Eigenvalues plots the eigenvalues of each k-point in the SCF loop step
//of rec, with a line at the Fermi energy when it is known.
func Eigenvalues(rec *sphinx.Record, step int, title string) (*plot.Plot, error) {
	if err := checkStep(rec, step); err != nil {
		return nil, err
	}
	eig := rec.Eigenvalues()
	if eig == nil || eig[step] == nil {
		return nil, fmt.Errorf("%w: no eigenvalues in step %d", ErrNoData, step)
	}
	p := basicPlot(title, "k-point", "Energy (eV)")
	nk, nb := eig[step].Dims()
	for k := 0; k < nk; k++ {
		pts := make(plotter.XYs, nb)
		for b := 0; b < nb; b++ {
			pts[b].X = float64(k + 1)
			pts[b].Y = eig[step].At(k, b)
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		r, g, b := colors(k, nk)
		s.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.Shape = draw.PlusGlyph{}
		p.Add(s)
	}
	if fermi := rec.Fermi(); fermi != nil && !math.IsNaN(fermi[step]) {
		l, err := plotter.NewLine(plotter.XYs{{X: 0.5, Y: fermi[step]}, {X: float64(nk) + 0.5, Y: fermi[step]}})
		if err != nil {
			return nil, err
		}
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add("Fermi energy", l)
	}
	p.X.Min = 0.5
	p.X.Max = float64(nk) + 0.5
	return p, nil
}

//Save writes p to filename. The format is taken from the extension
//(png, svg, pdf, eps...), png is used if there is none.
func Save(p *plot.Plot, filename string) error {
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	return p.Save(Width, Height, filename)
}

//WriteTo writes p in the given format (i.e. "png", "svg") to w.
func WriteTo(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
