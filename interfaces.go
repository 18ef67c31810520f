/*
 * interfaces.go, part of gospx.
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

package chem

import (
	"fmt"
	"strings"

	v3 "github.com/rmera/gospx/v3"
)

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

// Periodic is an Atomer in a periodic cell. This is what a plane-wave
// program needs to describe a structure.
type Periodic interface {
	Atomer

	//Cell returns the lattice vectors, one per row, in A.
	Cell() *v3.Matrix

	//Positions returns the cartesian positions of the atoms in A, one per row.
	Positions() *v3.Matrix
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call adds the name of the current function (plus extra info, as "FunctionName: Extra info") and returns the decoration slice. An empty string only returns the current slice.
}

// CError is the concrete error type of the chem package.
type CError struct {
	message  string
	function string
	deco     []string
	critical bool
}

func (err CError) Error() string {
	return fmt.Sprintf("%s: %s", err.function, err.message)
}

// Decorate adds dec to the decoration slice, unless dec is empty, and returns the slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical returns true if the error is critical.
func (err CError) Critical() bool { return err.critical }

// ErrorTrace returns the decoration of err as a single string, if err
// implements Error, or an empty string otherwise.
func ErrorTrace(err error) string {
	if e, ok := err.(Error); ok {
		return strings.Join(e.Decorate(""), " <- ")
	}
	return ""
}

const (
	ErrNilData  = "Nil data given"
	ErrMismatch = "Number of atoms and coordinates don't match"
)
