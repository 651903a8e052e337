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

// Package selector parses the engine-prefixed selector mini-language used
// by browser automation tooling: chains of `engine=body` queries joined
// with `>>`, such as `div >> internal:text="Close"i >> nth=0`.
package selector

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidSelector is returned, wrapped, for any source text that does
// not conform to the selector mini-language.
var ErrInvalidSelector = errors.New("invalid selector")

// Matches `name=body`, a query engine name and selector for that engine.
var reQueryEngine = regexp.MustCompile(`^[a-zA-Z_0-9-+:*]+$`)

// Matches start of XPath query.
var reXPathSelector = regexp.MustCompile(`^\(*//`)

// Matches the text selectors of the form text=<value>.
var reTextSelector = regexp.MustCompile(`^\s*text\s*=\s*(.*)$`)

// nestedEngines wrap another selector; their body is the inner selector
// source as a JSON string literal.
var nestedEngines = map[string]bool{
	"internal:has":     true,
	"internal:has-not": true,
	"internal:and":     true,
	"internal:or":      true,
	"internal:chain":   true,
}

// Part is a single query of a chained selector: a query engine name plus
// the body that engine evaluates. For engines listed in nestedEngines the
// body is a JSON-quoted inner selector and Nested holds its parsed form.
type Part struct {
	Name string `json:"name"`
	Body string `json:"body"`

	Nested *Selector `json:"-"`
}

// Selector is a parsed selector chain.
type Selector struct {
	Source string  `json:"selector"`
	Parts  []*Part `json:"parts"`

	// By default chained queries resolve to elements matched by the last
	// part, but a part can be prefixed with `*` to capture elements
	// resolved by an intermediate one.
	Capture *int `json:"capture"`
}

// Parse splits the selector into parts, separated by `>>`, identifies the
// query engine for each part and recursively parses the inner selectors of
// composite engines.
func Parse(source string) (*Selector, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: selector is empty", ErrInvalidSelector)
	}

	s := &Selector{
		Source: source,
		Parts:  make([]*Part, 0, 1),
	}
	if err := s.parse(); err != nil {
		return nil, err
	}
	if len(s.Parts) == 0 {
		return nil, fmt.Errorf("%w: malformed selector: %s", ErrInvalidSelector, source)
	}
	return s, nil
}

// String re-serializes the selector. The engine prefix is omitted where
// parsing would infer it back: css bodies, xpath bodies starting with `//`
// and bodies starting with `..`. The captured part always keeps its engine
// prefix so the `*` modifier survives a round trip.
func (s *Selector) String() string {
	out := make([]string, len(s.Parts))
	for i, p := range s.Parts {
		capture := s.Capture != nil && *s.Capture == i
		includeEngine := capture ||
			!(p.Name == "css" ||
				p.Name == "xpath" && strings.HasPrefix(p.Body, "//") ||
				strings.HasPrefix(p.Body, ".."))
		var sb strings.Builder
		if capture {
			sb.WriteByte('*')
		}
		if includeEngine {
			sb.WriteString(p.Name)
			sb.WriteByte('=')
		}
		sb.WriteString(p.Body)
		out[i] = sb.String()
	}
	return strings.Join(out, " >> ")
}

func (s *Selector) appendPart(p *Part, capture bool) error {
	if nestedEngines[p.Name] {
		var inner string
		if err := json.Unmarshal([]byte(p.Body), &inner); err != nil {
			return fmt.Errorf("%w: malformed selector: %s=%s", ErrInvalidSelector, p.Name, p.Body)
		}
		nested, err := Parse(inner)
		if err != nil {
			return err
		}
		for _, np := range nested.Parts {
			if np.Name == "internal:control" && np.Body == "enter-frame" {
				return fmt.Errorf("%w: frames are not allowed inside composite selectors", ErrInvalidSelector)
			}
		}
		p.Nested = nested
	}

	s.Parts = append(s.Parts, p)
	if capture {
		if s.Capture != nil {
			return fmt.Errorf("%w: only one of the selectors can capture using * modifier", ErrInvalidSelector)
		}
		s.Capture = new(int)
		*s.Capture = len(s.Parts) - 1
	}
	return nil
}

// parse splits the selector into parts, separated by `>>`, and identifies
// the query engine for each part.
func (s *Selector) parse() error {
	parsePart := func(part string) (*Part, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, false
		}

		before, after, ok := strings.Cut(part, "=")
		var name, body string

		switch {
		case ok && reQueryEngine.MatchString(strings.TrimSpace(before)):
			name = strings.TrimSpace(before)
			body = after
		case len(part) > 1 && part[0] == '"' && part[len(part)-1] == '"':
			name = "text"
			body = part
		case len(part) > 1 && part[0] == '\'' && part[len(part)-1] == '\'':
			name = "text"
			body = part
		case reXPathSelector.MatchString(part) || strings.HasPrefix(part, ".."):
			name = "xpath"
			body = part
		default:
			name = "css"
			body = part
		}

		capture := false
		if strings.HasPrefix(name, "*") {
			capture = true
			name = name[1:]
		}

		return &Part{Name: name, Body: body}, capture
	}

	var (
		start, index int
		quote        rune
	)

	appendPart := func(start, end int) error {
		p, capture := parsePart(s.Source[start:end])
		// Skip empty segments between `>>`, e.g. when there are
		// consecutive `>>` or leading/trailing `>>`.
		if p == nil {
			return nil
		}
		return s.appendPart(p, capture)
	}

	if !strings.Contains(s.Source, ">>") {
		return appendPart(0, len(s.Source))
	}

	shouldIgnoreTextSelectorQuote := func(start, end int) bool {
		prefix := s.Source[start:end]
		if match := reTextSelector.FindStringSubmatch(prefix); match != nil && match[1] != "" {
			return true
		}
		return false
	}

	for index < len(s.Source) {
		c := rune(s.Source[index])
		switch {
		case c == '\\' && index+1 < len(s.Source):
			index += 2
		case c == quote:
			quote = 0
			index++
		case quote == 0 && (c == '"' || c == '\'' || c == '`') && !shouldIgnoreTextSelectorQuote(start, index):
			quote = c
			index++
		case quote == 0 && c == '>' && index+1 < len(s.Source) && s.Source[index+1] == '>':
			if err := appendPart(start, index); err != nil {
				return err
			}
			index += 2
			start = index
		default:
			index++
		}
	}

	return appendPart(start, index)
}
