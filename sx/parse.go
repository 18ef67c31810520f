/*
 * parse.go, part of gospx.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

//ErrSyntax is matched, with errors.Is, by all the errors Parse returns for
//malformed input.
var ErrSyntax = errors.New("sx: syntax error")

//SyntaxError reports where the input could not be understood.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sx: line %d: %s", e.Line, e.Msg)
}

//Is makes errors.Is(err, ErrSyntax) true for every SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

//Parse reads a SPHInX input from r. Comments are dropped. Numbers become
//Int or Float, quoted text String, [..] Vector, true/false Bool, and
//anything else on the right of an equal sign (i.e. EnCut/13.606) Raw.
//Statements of the form "name something;" become Word values.
func Parse(r io.Reader) (*Group, error) {
	p := &parser{r: bufio.NewReader(r), line: 1}
	g := NewGroup()
	if err := p.group(g, true); err != nil {
		return nil, err
	}
	return g, nil
}

//ParseString is Parse for input already in memory.
func ParseString(s string) (*Group, error) {
	return Parse(strings.NewReader(s))
}

type parser struct {
	r    *bufio.Reader
	line int
}

func (p *parser) errorf(format string, a ...interface{}) error {
	return &SyntaxError{p.line, fmt.Sprintf(format, a...)}
}

func (p *parser) read() (rune, error) {
	c, _, err := p.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		p.line++
	}
	return c, nil
}

func (p *parser) peek() (rune, error) {
	c, _, err := p.r.ReadRune()
	if err != nil {
		return 0, err
	}
	return c, p.r.UnreadRune()
}

//skip consumes white space and comments.
func (p *parser) skip() error {
	for {
		c, err := p.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case unicode.IsSpace(c):
			p.read()
		case c == '/':
			p.read()
			next, err := p.read()
			if err != nil {
				return p.errorf("unexpected end of input after /")
			}
			switch next {
			case '/':
				for c != '\n' {
					if c, err = p.read(); err != nil {
						return nil
					}
				}
			case '*':
				var prev rune
				for !(prev == '*' && c == '/') {
					prev = c
					if c, err = p.read(); err != nil {
						return p.errorf("unterminated comment")
					}
				}
			default:
				return p.errorf("unexpected /%c", next)
			}
		default:
			return nil
		}
	}
}

func isNameRune(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func (p *parser) name() (string, error) {
	var b strings.Builder
	for {
		c, err := p.peek()
		if err != nil || !isNameRune(c) {
			break
		}
		p.read()
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		c, err := p.peek()
		if err != nil {
			return "", p.errorf("unexpected end of input")
		}
		return "", p.errorf("unexpected character %q", c)
	}
	return b.String(), nil
}

//group reads statements into g until the closing brace or, for the
//top level, the end of the input.
func (p *parser) group(g *Group, top bool) error {
	for {
		if err := p.skip(); err != nil {
			return err
		}
		c, err := p.peek()
		if err == io.EOF {
			if top {
				return nil
			}
			return p.errorf("unexpected end of input, missing }")
		}
		if c == '}' {
			if top {
				return p.errorf("unexpected }")
			}
			p.read()
			return nil
		}
		name, err := p.name()
		if err != nil {
			return err
		}
		if err = p.skip(); err != nil {
			return err
		}
		c, err = p.peek()
		if err != nil {
			return p.errorf("unexpected end of input after %s", name)
		}
		switch c {
		case '{':
			p.read()
			if err := p.group(g.AddGroup(name), false); err != nil {
				return err
			}
			//a semicolon after a group is tolerated
			if err := p.skip(); err != nil {
				return err
			}
			if c, err := p.peek(); err == nil && c == ';' {
				p.read()
			}
		case ';':
			p.read()
			g.Add(name, Flag)
		case '=':
			p.read()
			v, err := p.value(";")
			if err != nil {
				return err
			}
			if err := p.expect(';', name); err != nil {
				return err
			}
			g.Add(name, v)
		default:
			raw, err := p.raw(";")
			if err != nil {
				return err
			}
			if err := p.expect(';', name); err != nil {
				return err
			}
			g.Add(name, Word(raw))
		}
	}
}

func (p *parser) expect(want rune, context string) error {
	if err := p.skip(); err != nil {
		return err
	}
	c, err := p.read()
	if err != nil {
		return p.errorf("unexpected end of input, missing %c after %s", want, context)
	}
	if c != want {
		return p.errorf("expected %c after %s, found %q", want, context, c)
	}
	return nil
}

//value reads one value, leaving the terminator (one of stops) unread.
func (p *parser) value(stops string) (Value, error) {
	if err := p.skip(); err != nil {
		return nil, err
	}
	c, err := p.peek()
	if err != nil {
		return nil, p.errorf("unexpected end of input, missing value")
	}
	switch c {
	case '[':
		p.read()
		vec := Vector{}
		for {
			if err := p.skip(); err != nil {
				return nil, err
			}
			if c, err := p.peek(); err == nil && c == ']' && len(vec) == 0 {
				p.read()
				return vec, nil
			}
			v, err := p.value(",]")
			if err != nil {
				return nil, err
			}
			vec = append(vec, v)
			if err := p.skip(); err != nil {
				return nil, err
			}
			c, err := p.read()
			if err != nil {
				return nil, p.errorf("unterminated vector")
			}
			if c == ']' {
				return vec, nil
			}
			if c != ',' {
				return nil, p.errorf("unexpected %q in vector", c)
			}
		}
	case '"':
		return p.quoted()
	}
	raw, err := p.raw(stops)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, p.errorf("missing value")
	}
	return classify(raw), nil
}

//raw reads text until one of stops, outside parentheses, and returns it
//trimmed. The terminator is left unread.
func (p *parser) raw(stops string) (string, error) {
	var b strings.Builder
	depth := 0
	for {
		c, err := p.peek()
		if err != nil {
			return "", p.errorf("unexpected end of input, missing %s", string(stops[0]))
		}
		if depth == 0 && strings.ContainsRune(stops, c) {
			break
		}
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '\n':
			if depth == 0 {
				return "", p.errorf("missing %s before end of line", string(stops[0]))
			}
		}
		p.read()
		b.WriteRune(c)
	}
	return strings.TrimSpace(b.String()), nil
}

func (p *parser) quoted() (Value, error) {
	p.read()
	var b strings.Builder
	for {
		c, err := p.read()
		if err != nil {
			return nil, p.errorf("unterminated string")
		}
		switch c {
		case '"':
			return String(b.String()), nil
		case '\\':
			if c, err = p.read(); err != nil {
				return nil, p.errorf("unterminated string")
			}
		}
		b.WriteRune(c)
	}
}

func classify(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if c := s[0]; !(c >= '0' && c <= '9') && c != '-' && c != '+' && c != '.' {
		return Raw(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Float(f)
	}
	return Raw(s)
}
