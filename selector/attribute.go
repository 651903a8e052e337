/**
 * Copyright (c) Microsoft Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Regex is a JavaScript regular expression literal split into source and
// flags. It is never compiled on the Go side; consumers translate it to
// the target language's own regex syntax.
type Regex struct {
	Source string
	Flags  string
}

// HasFlag reports whether the literal carries the given flag character.
func (r *Regex) HasFlag(flag byte) bool {
	return strings.IndexByte(r.Flags, flag) >= 0
}

// String renders the literal in `/source/flags` form.
func (r *Regex) String() string {
	return "/" + r.Source + "/" + r.Flags
}

// OpTruthy marks a bare [name] clause that only checks that the attribute
// is present and truthy.
const OpTruthy = "<truthy>"

// Attribute is one [...] clause of an attribute selector. Value is nil
// for OpTruthy clauses and otherwise holds a string, bool, float64 or
// *Regex.
type Attribute struct {
	Name          string
	JSONPath      []string
	Op            string
	Value         any
	CaseSensitive bool
}

// AttributeSelector is the parsed form of the `name[attr=value]...`
// micro-grammar carried by internal:role, internal:testid and
// internal:attr selector bodies.
type AttributeSelector struct {
	Name       string
	Attributes []Attribute
}

// ParseAttributeSelector parses source against the attribute selector
// micro-grammar. With allowUnquotedStrings, unquoted values other than
// `true` and `false` are kept as strings; otherwise they must parse as
// numbers.
func ParseAttributeSelector(source string, allowUnquotedStrings bool) (*AttributeSelector, error) {
	p := &attrParser{source: source, allowUnquotedStrings: allowUnquotedStrings}
	return p.parse()
}

type attrParser struct {
	source               string
	pos                  int
	allowUnquotedStrings bool
}

func (p *attrParser) parse() (*AttributeSelector, error) {
	result := &AttributeSelector{Name: p.readIdentifier()}
	p.skipSpaces()
	for p.peek() == '[' {
		attr, err := p.readAttribute()
		if err != nil {
			return nil, err
		}
		result.Attributes = append(result.Attributes, attr)
		p.skipSpaces()
	}
	if !p.eol() {
		return nil, p.syntaxError("")
	}
	if result.Name == "" && len(result.Attributes) == 0 {
		return nil, fmt.Errorf(
			"%w: error while parsing selector `%s` - selector cannot be empty",
			ErrInvalidSelector, p.source)
	}
	return result, nil
}

func (p *attrParser) eol() bool { return p.pos >= len(p.source) }

func (p *attrParser) peek() byte {
	if p.eol() {
		return 0
	}
	return p.source[p.pos]
}

func (p *attrParser) eat() byte {
	c := p.peek()
	p.pos++
	return c
}

func (p *attrParser) syntaxError(stage string) error {
	if p.eol() {
		return fmt.Errorf(
			"%w: unexpected end of selector while parsing selector `%s`",
			ErrInvalidSelector, p.source)
	}
	msg := fmt.Sprintf("error while parsing selector `%s` - unexpected symbol %q at position %d",
		p.source, string(p.peek()), p.pos)
	if stage != "" {
		msg += " during " + stage
	}
	return fmt.Errorf("%w: %s", ErrInvalidSelector, msg)
}

func (p *attrParser) skipSpaces() {
	for !p.eol() && isSpace(p.peek()) {
		p.pos++
	}
}

func (p *attrParser) readIdentifier() string {
	p.skipSpaces()
	start := p.pos
	for !p.eol() && isCSSNameChar(p.peek()) {
		p.pos++
	}
	return p.source[start:p.pos]
}

// readQuotedString consumes a quoted string and returns its content with
// backslash escapes resolved.
func (p *attrParser) readQuotedString(quote byte) (string, error) {
	if p.eat() != quote {
		return "", p.syntaxError("parsing quoted string")
	}
	var sb strings.Builder
	for !p.eol() && p.peek() != quote {
		if p.peek() == '\\' {
			p.pos++
			if p.eol() {
				break
			}
		}
		sb.WriteByte(p.eat())
	}
	if p.eol() || p.peek() != quote {
		return "", p.syntaxError("parsing quoted string")
	}
	p.pos++
	return sb.String(), nil
}

// readRegularExpression consumes a `/source/flags` literal. The source is
// scanned for the closing slash with awareness of escapes and bracket
// classes, but is not otherwise validated.
func (p *attrParser) readRegularExpression() (*Regex, error) {
	if p.eat() != '/' {
		return nil, p.syntaxError("parsing regular expression")
	}
	var sb strings.Builder
	inClass := false
loop:
	for !p.eol() {
		switch {
		case p.peek() == '\\':
			sb.WriteByte(p.eat())
			if p.eol() {
				return nil, p.syntaxError("parsing regular expression")
			}
		case inClass && p.peek() == ']':
			inClass = false
		case !inClass && p.peek() == '[':
			inClass = true
		case !inClass && p.peek() == '/':
			break loop
		}
		sb.WriteByte(p.eat())
	}
	if p.eat() != '/' {
		return nil, p.syntaxError("parsing regular expression")
	}
	start := p.pos
	for !p.eol() && strings.IndexByte("dgimsuy", p.peek()) >= 0 {
		p.pos++
	}
	return &Regex{Source: sb.String(), Flags: p.source[start:p.pos]}, nil
}

// readAttributeToken reads one token of the attribute name path, either an
// identifier or a quoted string.
func (p *attrParser) readAttributeToken() (string, error) {
	var token string
	p.skipSpaces()
	if c := p.peek(); c == '\'' || c == '"' {
		s, err := p.readQuotedString(c)
		if err != nil {
			return "", err
		}
		token = s
	} else {
		token = p.readIdentifier()
	}
	if token == "" {
		return "", p.syntaxError("parsing property path")
	}
	return token, nil
}

func (p *attrParser) readOperator() (string, error) {
	p.skipSpaces()
	var op string
	if !p.eol() {
		op += string(p.eat())
	}
	if !p.eol() && op != "=" {
		op += string(p.eat())
	}
	switch op {
	case "=", "*=", "^=", "$=", "|=", "~=":
		return op, nil
	}
	return "", p.syntaxError("parsing operator")
}

func (p *attrParser) readAttribute() (Attribute, error) {
	// Skip the leading [.
	p.pos++

	// The attribute name is a dotted path, each token an identifier or a
	// quoted string: foo.bar or 'foo' . "ba zz".
	jsonPath := []string{}
	tok, err := p.readAttributeToken()
	if err != nil {
		return Attribute{}, err
	}
	jsonPath = append(jsonPath, tok)
	p.skipSpaces()
	for p.peek() == '.' {
		p.pos++
		if tok, err = p.readAttributeToken(); err != nil {
			return Attribute{}, err
		}
		jsonPath = append(jsonPath, tok)
		p.skipSpaces()
	}

	name := strings.Join(jsonPath, ".")

	// A bare [name] clause only checks that the attribute is truthy.
	if p.peek() == ']' {
		p.pos++
		return Attribute{Name: name, JSONPath: jsonPath, Op: OpTruthy, Value: nil, CaseSensitive: false}, nil
	}

	op, err := p.readOperator()
	if err != nil {
		return Attribute{}, err
	}

	var value any
	caseSensitive := true
	p.skipSpaces()
	switch c := p.peek(); {
	case c == '/':
		if op != "=" {
			return Attribute{}, fmt.Errorf(
				"%w: error while parsing selector `%s` - cannot use %s in attribute with regular expression",
				ErrInvalidSelector, p.source, op)
		}
		re, rerr := p.readRegularExpression()
		if rerr != nil {
			return Attribute{}, rerr
		}
		value = re
	case c == '\'' || c == '"':
		s, serr := p.readQuotedString(c)
		if serr != nil {
			return Attribute{}, serr
		}
		value = s
		p.skipSpaces()
		switch p.peek() {
		case 'i', 'I':
			caseSensitive = false
			p.pos++
		case 's', 'S':
			caseSensitive = true
			p.pos++
		}
	default:
		var sb strings.Builder
		for !p.eol() && (isCSSNameChar(p.peek()) || p.peek() == '+' || p.peek() == '.') {
			sb.WriteByte(p.eat())
		}
		switch s := sb.String(); s {
		case "true":
			value = true
		case "false":
			value = false
		default:
			if p.allowUnquotedStrings {
				value = s
			} else {
				f, ferr := strconv.ParseFloat(s, 64)
				if ferr != nil {
					return Attribute{}, p.syntaxError("parsing attribute value")
				}
				value = f
			}
		}
	}
	p.skipSpaces()
	if p.peek() != ']' {
		return Attribute{}, p.syntaxError("parsing attribute value")
	}
	p.pos++

	if op != "=" {
		if _, ok := value.(string); !ok {
			return Attribute{}, fmt.Errorf(
				"%w: error while parsing selector `%s` - cannot use %s in attribute with non-string matching value - %v",
				ErrInvalidSelector, p.source, op, value)
		}
	}
	return Attribute{Name: name, JSONPath: jsonPath, Op: op, Value: value, CaseSensitive: caseSensitive}, nil
}

// isCSSNameChar follows the CSS ident-token diagram: letters, digits,
// underscore, hyphen and anything beyond ASCII (which for UTF-8 input
// covers every continuation byte as well).
func isCSSNameChar(c byte) bool {
	return c >= 0x80 ||
		c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' ||
		c == '-'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
