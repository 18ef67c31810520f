/*
 * errors.go, part of gospx.
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

	chem "github.com/rmera/gospx"
)

//The kinds of errors returned by the package. Use errors.Is to tell them
//apart.
var (
	//ErrConfiguration means a value given to a setter is out of its domain.
	ErrConfiguration = errors.New("invalid configuration")
	//ErrPrecondition means a setter was called in a way that makes no sense,
	//i.e. with an unknown mixing method.
	ErrPrecondition = errors.New("precondition violated")
	//ErrParseIncomplete means the run did not complete a single SCF loop, or
	//was aborted. No record is returned in that case.
	ErrParseIncomplete = errors.New("run incomplete or aborted")
	//ErrMalformed means a file produced by SPHInX could not be understood.
	ErrMalformed = errors.New("malformed output")
)

//Error is the error type for the package. It fulfills chem.Error.
type Error struct {
	message  string
	kind     error
	filename string //the file that has problems, or empty string if none.
	cause    error
	deco     []string
	critical bool
}

func newError(kind error, filename, message string, caller string) Error {
	return Error{message: message, kind: kind, filename: filename, deco: []string{caller}, critical: true}
}

func (err Error) Error() string {
	msg := err.message
	if err.cause != nil {
		msg = msg + ": " + err.cause.Error()
	}
	if err.filename != "" {
		return fmt.Sprintf("sphinx: %s: %s: %s", err.filename, err.kind, msg)
	}
	return fmt.Sprintf("sphinx: %s: %s", err.kind, msg)
}

//Decorate adds dec to the list of functions the error went through, and
//returns the list.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the file associated with the error, if any.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical.
func (err Error) Critical() bool { return err.critical }

//Unwrap lets errors.Is see both the kind of the error and the error
//that caused it, if any.
func (err Error) Unwrap() []error {
	ret := []error{err.kind}
	if err.cause != nil {
		ret = append(ret, err.cause)
	}
	return ret
}

//errDecorate adds caller to the trace of err if err is an Error of this
//package, and returns it. Other errors are returned as they are.
func errDecorate(err error, caller string) error {
	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.deco = append(e.deco, caller)
	return e
}

var _ chem.Error = Error{}
