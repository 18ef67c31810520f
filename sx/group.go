/*
 * group.go, part of gospx.
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

//Entry is one statement of a Group.
type Entry struct {
	Name  string
	Value Value
}

//Group is an ordered list of statements. The zero value is an empty
//group ready to use. Entries are kept, and written, in insertion order.
type Group struct {
	entries []Entry
}

//NewGroup returns an empty Group.
func NewGroup() *Group {
	return new(Group)
}

func (g *Group) sxText() string { return "" }

//Len returns the number of entries in the group.
func (g *Group) Len() int {
	return len(g.entries)
}

//Entries returns a copy of the entries, in order. Values are shared.
func (g *Group) Entries() []Entry {
	ret := make([]Entry, len(g.entries))
	copy(ret, g.entries)
	return ret
}

//Each calls f for every entry, in order, until f returns false.
func (g *Group) Each(f func(name string, v Value) bool) {
	for _, e := range g.entries {
		if !f(e.Name, e.Value) {
			return
		}
	}
}

//Set gives the first non-group entry called name the value v, keeping its
//position, or appends a new entry if there is none. It returns g so calls
//can be chained.
func (g *Group) Set(name string, v Value) *Group {
	for i, e := range g.entries {
		if _, isgroup := e.Value.(*Group); e.Name == name && !isgroup {
			g.entries[i].Value = v
			return g
		}
	}
	return g.Add(name, v)
}

//Add appends an entry, even if one with the same name exists.
func (g *Group) Add(name string, v Value) *Group {
	if v == nil {
		panic("sx: nil value for " + name)
	}
	g.entries = append(g.entries, Entry{name, v})
	return g
}

//Flag appends the bare statement "name;" unless it is already there.
func (g *Group) Flag(name string) *Group {
	if g.Has(name) {
		return g
	}
	return g.Add(name, Flag)
}

//Comment appends the line "//text;".
func (g *Group) Comment(text string) *Group {
	return g.Add("//"+text, Flag)
}

//Group returns the first child group called name, appending a new, empty
//one if there is none.
func (g *Group) Group(name string) *Group {
	for _, e := range g.entries {
		if c, ok := e.Value.(*Group); ok && e.Name == name {
			return c
		}
	}
	return g.AddGroup(name)
}

//AddGroup appends a new, empty child group called name and returns it.
//Use it for repeated blocks.
func (g *Group) AddGroup(name string) *Group {
	c := NewGroup()
	g.Add(name, c)
	return c
}

//Get returns the value of the first entry called name.
func (g *Group) Get(name string) (Value, bool) {
	for _, e := range g.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return nil, false
}

//Has returns true if there is an entry called name.
func (g *Group) Has(name string) bool {
	_, ok := g.Get(name)
	return ok
}

//All returns the values of all the entries called name, in order.
func (g *Group) All(name string) []Value {
	var ret []Value
	for _, e := range g.entries {
		if e.Name == name {
			ret = append(ret, e.Value)
		}
	}
	return ret
}

//Groups returns all the child groups called name, in order.
func (g *Group) Groups(name string) []*Group {
	var ret []*Group
	for _, e := range g.entries {
		if c, ok := e.Value.(*Group); ok && e.Name == name {
			ret = append(ret, c)
		}
	}
	return ret
}

//Find returns, in document order, every group called name at any depth
//below g. Groups found are not searched further.
func (g *Group) Find(name string) []*Group {
	var ret []*Group
	for _, e := range g.entries {
		c, ok := e.Value.(*Group)
		if !ok {
			continue
		}
		if e.Name == name {
			ret = append(ret, c)
			continue
		}
		ret = append(ret, c.Find(name)...)
	}
	return ret
}

//Delete removes every entry called name and returns how many were removed.
func (g *Group) Delete(name string) int {
	kept := g.entries[:0]
	for _, e := range g.entries {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	n := len(g.entries) - len(kept)
	for i := len(kept); i < len(g.entries); i++ {
		g.entries[i] = Entry{}
	}
	g.entries = kept
	return n
}

//Copy returns a deep copy of g. Only groups are duplicated, the other
//values are immutable.
func (g *Group) Copy() *Group {
	c := NewGroup()
	c.entries = make([]Entry, len(g.entries))
	for i, e := range g.entries {
		if sub, ok := e.Value.(*Group); ok {
			e.Value = sub.Copy()
		}
		c.entries[i] = e
	}
	return c
}
