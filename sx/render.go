/*
 * render.go, part of gospx.
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
	"fmt"
	"io"
	"strings"
)

//Marshal renders g in the SPHInX input language. Every statement ends
//with ";\n", groups open with "name {" and close with "}" on their own
//line, an empty group is written as "name {}", and each level of nesting
//adds one tab of indentation.
func Marshal(g *Group) []byte {
	var b bytes.Buffer
	render(&b, g, 0)
	return b.Bytes()
}

//Write renders g to w.
func Write(w io.Writer, g *Group) error {
	_, err := w.Write(Marshal(g))
	return err
}

func render(b *bytes.Buffer, g *Group, depth int) {
	indent := strings.Repeat("\t", depth)
	for _, e := range g.entries {
		b.WriteString(indent)
		switch v := e.Value.(type) {
		case *Group:
			if v.Len() == 0 {
				fmt.Fprintf(b, "%s {}\n", e.Name)
				continue
			}
			fmt.Fprintf(b, "%s {\n", e.Name)
			render(b, v, depth+1)
			b.WriteString(indent + "}\n")
		case flag:
			b.WriteString(e.Name + ";\n")
		case Word:
			fmt.Fprintf(b, "%s %s;\n", e.Name, v.sxText())
		default:
			fmt.Fprintf(b, "%s = %s;\n", e.Name, v.sxText())
		}
	}
}

//MarshalVariables renders the entries of g as SPHInX variable
//definitions, "name=value;", one per line. Variables can't be groups.
func MarshalVariables(g *Group) ([]byte, error) {
	var b bytes.Buffer
	for _, e := range g.entries {
		switch v := e.Value.(type) {
		case *Group:
			return nil, fmt.Errorf("sx: variable %s is a group", e.Name)
		case flag:
			b.WriteString(e.Name + ";\n")
		default:
			fmt.Fprintf(&b, "%s=%s;\n", e.Name, v.sxText())
		}
	}
	return b.Bytes(), nil
}
