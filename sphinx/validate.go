/*
 * validate.go, part of gospx.
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
)

//Advisory is a non-fatal remark about a value that was accepted after
//being changed, or that may not be what the user wanted.
type Advisory struct {
	Field    string
	Given    string
	Resolved string
	Message  string
}

func (A *Advisory) String() string {
	if A.Given == A.Resolved || A.Resolved == "" {
		return fmt.Sprintf("%s: %s", A.Field, A.Message)
	}
	return fmt.Sprintf("%s: %s (%q taken as %q)", A.Field, A.Message, A.Given, A.Resolved)
}

//CheckCutoff returns an error matching ErrConfiguration unless e, the
//plane-wave cutoff in eV, is a positive, finite number.
func CheckCutoff(e float64) error {
	if !(e > 0) || math.IsInf(e, 0) {
		return newError(ErrConfiguration, "", fmt.Sprintf("plane-wave cutoff must be positive, got %v", e), "CheckCutoff")
	}
	return nil
}

//The density mixing schemes SPHInX understands.
var MixingMethods = []string{"PULAY", "LINEAR"}

//CheckMixing validates a density-mixing setup and returns the method in
//its canonical (upper-case) form. An unknown method or a history length
//smaller than 1 give an error matching ErrPrecondition. Mixing
//coefficients (rho, spin) out of [0,1] give ErrConfiguration.
func CheckMixing(method string, nHistory int, rho, spin float64) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if !isInString(MixingMethods, m) {
		return "", newError(ErrPrecondition, "", fmt.Sprintf("mixing method %q not in %v", method, MixingMethods), "CheckMixing")
	}
	if nHistory < 1 {
		return "", newError(ErrPrecondition, "", fmt.Sprintf("mixing history must be at least 1, got %d", nHistory), "CheckMixing")
	}
	if err := checkUnit("density mixing", rho); err != nil {
		return "", errDecorate(err, "CheckMixing")
	}
	if err := checkUnit("spin mixing", spin); err != nil {
		return "", errDecorate(err, "CheckMixing")
	}
	return m, nil
}

func checkUnit(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return newError(ErrConfiguration, "", fmt.Sprintf("%s must be in [0,1], got %v", name, v), "checkUnit")
	}
	return nil
}

//The exchange-correlation functionals known to SPHInX, as written in the
//input. Longer names go first, so the best-effort matching in NormalizeXC
//prefers them.
var XCFunctionals = []string{"PBE_LDA", "PBE", "LDA"}

func xcKey(s string) string {
	var b strings.Builder
	for _, c := range strings.ToUpper(s) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

//NormalizeXC returns the canonical name of the exchange-correlation
//functional xc. Case does not matter. If xc is not a known name, the
//first known name contained in it is returned ("llda" gives LDA) and, if
//there is none, xc in upper case. In both cases an Advisory is also
//returned.
func NormalizeXC(xc string) (string, *Advisory) {
	key := xcKey(xc)
	for _, f := range XCFunctionals {
		if key == xcKey(f) {
			return f, nil
		}
	}
	adv := &Advisory{Field: "Xcorr", Given: xc}
	for _, f := range XCFunctionals {
		if key != "" && strings.Contains(key, xcKey(f)) {
			adv.Resolved = f
			adv.Message = "exchange-correlation functional not recognized, recommended: PBE or LDA"
			return f, adv
		}
	}
	adv.Resolved = strings.ToUpper(strings.TrimSpace(xc))
	adv.Message = "exchange-correlation functional not recognized, passed to SPHInX as is"
	return adv.Resolved, adv
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
