/*
 * sx_test.go, part of gospx.
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
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFloat(Te *testing.T) {
	cases := map[float64]string{
		1:                  "1.0",
		0.2:                "0.2",
		0.0001:             "0.0001",
		0.00001:            "1e-05",
		-0.5:               "-0.5",
		340:                "340.0",
		1e16:               "1e+16",
		4.913287926190353:  "4.913287926190353",
		2.4566439630951766: "2.4566439630951766",
		0:                  "0.0",
	}
	for f, want := range cases {
		assert.Equal(Te, want, FormatFloat(f), "formatting %v", f)
	}
}

func TestMarshal(Te *testing.T) {
	g := NewGroup()
	g.Set("eCut", Raw("EnCut/13.606"))
	k := g.Group("kPoint")
	k.Set("coords", Raw("KpointCoords"))
	k.Set("weight", Int(1))
	k.Flag("relative")
	g.Set("folding", Raw("KpointFolding"))
	g.Flag("saveMemory")
	g.Group("lcao")
	want := "eCut = EnCut/13.606;\n" +
		"kPoint {\n" +
		"\tcoords = KpointCoords;\n" +
		"\tweight = 1;\n" +
		"\trelative;\n" +
		"}\n" +
		"folding = KpointFolding;\n" +
		"saveMemory;\n" +
		"lcao {}\n"
	assert.Equal(Te, want, string(Marshal(g)))
	//setting again keeps the position
	g.Set("eCut", Float(25))
	g.Flag("saveMemory")
	assert.Equal(Te, "eCut = 25.0;", string(Marshal(g))[:12])
	assert.Equal(Te, 5, g.Len())
}

func TestValues(Te *testing.T) {
	g := NewGroup()
	g.Add("name", String(`say "hi" \o/`))
	g.Add("cell", Matrix([][]float64{{1, 0, 0}, {0, 1.5, 0}}))
	g.Add("folding", Ints([]int{4, 4, 4}))
	g.Add("on", Bool(true))
	g.Add("format", Word("paw"))
	g.Comment("made by hand")
	want := `name = "say \"hi\" \\o/";` + "\n" +
		"cell = [[1.0, 0.0, 0.0], [0.0, 1.5, 0.0]];\n" +
		"folding = [4, 4, 4];\n" +
		"on = true;\n" +
		"format paw;\n" +
		"//made by hand;\n"
	assert.Equal(Te, want, string(Marshal(g)))
}

func TestMarshalVariables(Te *testing.T) {
	g := NewGroup()
	g.Set("EnCut", Int(340))
	g.Set("KpointCoords", Floats([]float64{0.5, 0.5, 0.5}))
	g.Set("Xcorr", Raw("PBE"))
	g.Set("Ediff", Float(0.0001))
	g.Set("WriteWaves", Bool(true))
	b, err := MarshalVariables(g)
	require.NoError(Te, err)
	want := "EnCut=340;\nKpointCoords=[0.5, 0.5, 0.5];\nXcorr=PBE;\nEdiff=0.0001;\nWriteWaves=true;\n"
	assert.Equal(Te, want, string(b))
	g.Group("oops")
	_, err = MarshalVariables(g)
	assert.Error(Te, err)
}

func TestGroupEdit(Te *testing.T) {
	g := NewGroup()
	g.AddGroup("atom").Set("coords", Floats([]float64{0, 0, 0}))
	g.AddGroup("atom").Set("coords", Floats([]float64{1, 1, 1}))
	g.Set("element", String("Fe"))
	assert.Len(Te, g.Groups("atom"), 2)
	assert.Len(Te, g.All("atom"), 2)
	//Group returns the first existing one
	assert.Same(Te, g.Groups("atom")[0], g.Group("atom"))
	c := g.Copy()
	assert.Equal(Te, 2, g.Delete("atom"))
	assert.Equal(Te, 1, g.Len())
	assert.Len(Te, c.Groups("atom"), 2)
	assert.False(Te, g.Has("atom"))
	v, ok := g.Get("element")
	require.True(Te, ok)
	assert.Equal(Te, String("Fe"), v)
	outer := NewGroup()
	outer.Group("structure").AddGroup("species").AddGroup("atom")
	outer.Group("structure").AddGroup("species")
	assert.Len(Te, outer.Find("species"), 2)
	assert.Len(Te, outer.Find("atom"), 1)
	assert.Panics(Te, func() { g.Add("x", nil) })
}

func TestParseRoundTrip(Te *testing.T) {
	g := NewGroup()
	g.Set("cell", Matrix([][]float64{{4.913287926190353, 0, 0}, {0, 4.913287926190353, 0}, {0, 0, 4.913287926190353}}))
	sp := g.AddGroup("species")
	sp.Set("element", String("Fe"))
	at := sp.AddGroup("atom")
	at.Set("label", String("spin_0.5"))
	at.Set("coords", Floats([]float64{0, 0, 0}))
	at.Flag("movable")
	g.Set("dEnergy", Raw("Ediff/27.21138602"))
	g.Set("maxSteps", Int(400))
	g.Set("tiny", Float(1e-05))
	g.Set("on", Bool(false))
	g.Group("blockCCG")
	g.Add("include", Word("<basis.sx>"))
	g.Set("empty", Vector{})
	parsed, err := Parse(bytes.NewReader(Marshal(g)))
	require.NoError(Te, err)
	if diff := cmp.Diff(g, parsed, cmp.AllowUnexported(Group{})); diff != "" {
		Te.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(Te, string(Marshal(g)), string(Marshal(parsed)))
}

func TestParseComments(Te *testing.T) {
	in := `// a comment
/* a block
   comment */
structure {
	cell = [[1, 0, 0],
	        [0, 1, 0],
	        [0, 0, 1]]; // trailing
	species { element = "Si"; atom { coords = [0.0, 0.0, 0.0]; movable; } };
}
`
	g, err := ParseString(in)
	require.NoError(Te, err)
	s := g.Groups("structure")
	require.Len(Te, s, 1)
	cell, ok := s[0].Get("cell")
	require.True(Te, ok)
	rows, ok := AsMatrix(cell)
	require.True(Te, ok)
	assert.Equal(Te, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, rows)
	atoms := g.Find("atom")
	require.Len(Te, atoms, 1)
	assert.True(Te, atoms[0].Has("movable"))
}

func TestParseErrors(Te *testing.T) {
	cases := map[string]int{
		"a = 1;\nb = 2\nc = 3;\n": 2,
		"a {\n b = 1;\n":          3,
		"}\n":                     1,
		"a = \"open;\n":           2,
		"a = [1, 2;\n":            1,
	}
	for in, line := range cases {
		_, err := ParseString(in)
		require.Error(Te, err, in)
		assert.True(Te, errors.Is(err, ErrSyntax), in)
		var se *SyntaxError
		require.True(Te, errors.As(err, &se))
		assert.Equal(Te, line, se.Line, in)
	}
}

func TestParseNonFinite(Te *testing.T) {
	g, err := ParseString("a = inf;\nb = +Inf;\nc = NaN;\nd = -1.5e3;\n")
	require.NoError(Te, err)
	for _, name := range []string{"a", "b", "c"} {
		v, ok := g.Get(name)
		require.True(Te, ok, name)
		assert.IsType(Te, Raw(""), v, name)
	}
	v, ok := g.Get("d")
	require.True(Te, ok)
	assert.Equal(Te, Float(-1500), v)
}
