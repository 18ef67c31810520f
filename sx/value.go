/*
 * value.go, part of gospx.
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

package sx

import (
	"math"
	"strconv"
	"strings"
)

//Value is the right-hand side of a statement. The concrete types are
//String, Raw, Int, Float, Bool, Vector, Word, the flag value Flag, and
//*Group.
type Value interface {
	sxText() string
}

//String is written double-quoted.
type String string

//Raw is written as it is. Use it for expressions and for symbols such
//as PBE that SPHInX reads as bare words.
type Raw string

//Int is an integer number.
type Int int64

//Float is written the shortest way that reads back to the same number:
//1.0, 0.2, 0.0001, 1e-05.
type Float float64

//Bool is written as true or false.
type Bool bool

//Vector is written as [a, b, c]. Vectors of vectors give matrices.
type Vector []Value

//Word makes the statement "name word;" with no equal sign, as in
//"format paw;" or "include <basis.sx>;".
type Word string

type flag struct{}

//Flag makes a bare statement, "name;".
var Flag Value = flag{}

func (s String) sxText() string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(string(s)) + `"`
}

func (s Raw) sxText() string   { return string(s) }
func (i Int) sxText() string   { return strconv.FormatInt(int64(i), 10) }
func (f Float) sxText() string { return FormatFloat(float64(f)) }
func (w Word) sxText() string  { return string(w) }
func (flag) sxText() string    { return "" }

func (b Bool) sxText() string {
	if b {
		return "true"
	}
	return "false"
}

func (v Vector) sxText() string {
	s := make([]string, len(v))
	for i, e := range v {
		s[i] = e.sxText()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

//FormatFloat formats f the way SPHInX input generators traditionally do:
//the shortest representation that parses back to f, always with a
//decimal point, and in exponent form only for very small or very large
//magnitudes.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	a := math.Abs(f)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

//Floats returns a Vector of Float values.
func Floats(f []float64) Vector {
	v := make(Vector, len(f))
	for i, e := range f {
		v[i] = Float(e)
	}
	return v
}

//Ints returns a Vector of Int values.
func Ints(n []int) Vector {
	v := make(Vector, len(n))
	for i, e := range n {
		v[i] = Int(e)
	}
	return v
}

//Matrix returns a Vector of Float Vectors, one per row.
func Matrix(rows [][]float64) Vector {
	v := make(Vector, len(rows))
	for i, r := range rows {
		v[i] = Floats(r)
	}
	return v
}

//AsFloat returns the numeric value of an Int or Float.
func AsFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Float:
		return float64(t), true
	case Int:
		return float64(t), true
	}
	return 0, false
}

//AsFloats returns the numbers in a Vector of Int/Float values.
func AsFloats(v Value) ([]float64, bool) {
	vec, ok := v.(Vector)
	if !ok {
		return nil, false
	}
	ret := make([]float64, len(vec))
	for i, e := range vec {
		if ret[i], ok = AsFloat(e); !ok {
			return nil, false
		}
	}
	return ret, true
}

//AsMatrix returns the rows of a Vector of numeric Vectors.
func AsMatrix(v Value) ([][]float64, bool) {
	vec, ok := v.(Vector)
	if !ok {
		return nil, false
	}
	ret := make([][]float64, len(vec))
	for i, e := range vec {
		if ret[i], ok = AsFloats(e); !ok {
			return nil, false
		}
	}
	return ret, true
}
