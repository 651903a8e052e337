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

package locatorgen

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/igaisin/playwright/selector"
)

// Matches a JavaScript regex literal with its optional flags.
var reRegexLiteral = regexp.MustCompile(`^/(.*)/([igm]*)$`)

// detectExact classifies a text fragment's match mode from its inline
// suffix markers: a /re/f literal is a regex, a closing quote means exact
// matching, and the "s and "i suffixes select exact and case-insensitive
// matching. Anything else is an inexact literal.
func detectExact(text string) (Text, bool, error) {
	if m := reRegexLiteral.FindStringSubmatch(text); m != nil {
		return Text{Regex: &selector.Regex{Source: m[1], Flags: m[2]}}, false, nil
	}
	exact := false
	switch {
	case strings.HasSuffix(text, `"`):
		if err := json.Unmarshal([]byte(text), &text); err != nil {
			return Text{}, false, fmt.Errorf("%w: malformed text fragment %s", selector.ErrInvalidSelector, text)
		}
		exact = true
	case strings.HasSuffix(text, `"s`):
		if err := json.Unmarshal([]byte(text[:len(text)-1]), &text); err != nil {
			return Text{}, false, fmt.Errorf("%w: malformed text fragment %s", selector.ErrInvalidSelector, text)
		}
		exact = true
	case strings.HasSuffix(text, `"i`):
		if err := json.Unmarshal([]byte(text[:len(text)-1]), &text); err != nil {
			return Text{}, false, fmt.Errorf("%w: malformed text fragment %s", selector.ErrInvalidSelector, text)
		}
		exact = false
	}
	return Text{Value: text}, exact, nil
}

func isEnterFrame(p *selector.Part) bool {
	return p.Name == "internal:control" && p.Body == "enter-frame"
}

// normalizeFrameIndexOrder returns a copy of parts where an index query
// directly preceding a frame transition is moved after it: the frame hop
// has to render first so the index can apply inside the frame.
func normalizeFrameIndexOrder(parts []*selector.Part) []*selector.Part {
	out := make([]*selector.Part, len(parts))
	copy(out, parts)
	for i := 0; i+1 < len(out); i++ {
		if out[i].Name == "nth" && isEnterFrame(out[i+1]) {
			out[i], out[i+1] = out[i+1], out[i]
		}
	}
	return out
}

// receiverState tracks which receiver the call being generated applies to
// (cur) and which one the following call will start from (next).
type receiverState struct {
	cur  Receiver
	next Receiver
}

func seedReceiver(base Receiver) receiverState {
	return receiverState{cur: base, next: ReceiverLocator}
}

// shift moves the window one call forward; every call yields a locator
// unless a frame transition overrides it.
func (s receiverState) shift() receiverState {
	return receiverState{cur: s.next, next: ReceiverLocator}
}

// toFrame makes the following call start from a frame locator.
func (s receiverState) toFrame() receiverState {
	return receiverState{cur: ReceiverFrameLocator, next: s.next}
}

var compositeKinds = map[string]CallKind{
	"internal:has":     KindHas,
	"internal:has-not": KindNot,
	"internal:and":     KindAnd,
	"internal:or":      KindOr,
	"internal:chain":   KindChain,
}

var attrKinds = map[string]CallKind{
	"placeholder": KindPlaceholder,
	"alt":         KindAlt,
	"title":       KindTitle,
}

// render generates the call chain for a parsed selector, starting from
// the given receiver.
func (g *Generator) render(parsed *selector.Selector, base Receiver) (string, error) {
	parts := normalizeFrameIndexOrder(parsed.Parts)

	tokens := make([]string, 0, len(parts))
	st := seedReceiver(base)
	for i := 0; i < len(parts); i++ {
		part := parts[i]
		recv := st.cur
		st = st.shift()

		switch part.Name {
		case "nth":
			switch part.Body {
			case "0":
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindFirst, Text{}, CallOptions{}))
			case "-1":
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindLast, Text{}, CallOptions{}))
			default:
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindNth, Text{Value: part.Body}, CallOptions{}))
			}
			continue

		case "visible":
			tokens = append(tokens, g.factory.GenerateLocator(recv, KindVisible, Text{Value: part.Body}, CallOptions{}))
			continue

		case "internal:text":
			text, exact, err := detectExact(part.Body)
			if err != nil {
				return "", err
			}
			tokens = append(tokens, g.factory.GenerateLocator(recv, KindText, text, CallOptions{Exact: exact}))
			continue

		case "internal:label":
			text, exact, err := detectExact(part.Body)
			if err != nil {
				return "", err
			}
			tokens = append(tokens, g.factory.GenerateLocator(recv, KindLabel, text, CallOptions{Exact: exact}))
			continue

		case "internal:has-text":
			text, exact, err := detectExact(part.Body)
			if err != nil {
				return "", err
			}
			// The text filter has no strict variant; an exact fragment
			// stays a raw selector part.
			if !exact {
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindHasText, text, CallOptions{}))
				continue
			}

		case "internal:has-not-text":
			text, exact, err := detectExact(part.Body)
			if err != nil {
				return "", err
			}
			if !exact {
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindHasNotText, text, CallOptions{}))
				continue
			}

		case "internal:has", "internal:has-not", "internal:and", "internal:or", "internal:chain":
			if part.Nested == nil {
				return "", fmt.Errorf("%w: %s requires a nested selector", selector.ErrInvalidSelector, part.Name)
			}
			inner, err := g.render(part.Nested, ReceiverLocator)
			if err != nil {
				return "", err
			}
			tokens = append(tokens, g.factory.GenerateLocator(recv, compositeKinds[part.Name], Text{Value: inner}, CallOptions{}))
			continue

		case "internal:role":
			attrSel, err := selector.ParseAttributeSelector(part.Body, true)
			if err != nil {
				return "", err
			}
			opts := CallOptions{Attrs: []Attr{}}
			for _, attr := range attrSel.Attributes {
				if attr.Name == "name" {
					opts.Exact = attr.CaseSensitive
					opts.Name = asText(attr.Value)
					continue
				}
				name, value := attr.Name, attr.Value
				if name == "level" {
					if s, ok := value.(string); ok {
						value = coerceNumber(s)
					}
				}
				if name == "include-hidden" {
					name = "includeHidden"
				}
				opts.Attrs = append(opts.Attrs, Attr{Name: name, Value: value})
			}
			tokens = append(tokens, g.factory.GenerateLocator(recv, KindRole, Text{Value: attrSel.Name}, opts))
			continue

		case "internal:testid":
			attrSel, err := selector.ParseAttributeSelector(part.Body, true)
			if err != nil {
				return "", err
			}
			if len(attrSel.Attributes) == 0 {
				return "", fmt.Errorf("%w: malformed test id selector: %s", selector.ErrInvalidSelector, part.Body)
			}
			text := asText(attrSel.Attributes[0].Value)
			if text == nil {
				return "", fmt.Errorf("%w: malformed test id selector: %s", selector.ErrInvalidSelector, part.Body)
			}
			tokens = append(tokens, g.factory.GenerateLocator(recv, KindTestID, *text, CallOptions{}))
			continue

		case "internal:attr":
			attrSel, err := selector.ParseAttributeSelector(part.Body, true)
			if err != nil {
				return "", err
			}
			if len(attrSel.Attributes) == 0 {
				return "", fmt.Errorf("%w: malformed attribute selector: %s", selector.ErrInvalidSelector, part.Body)
			}
			attr := attrSel.Attributes[0]
			if kind, ok := attrKinds[attr.Name]; ok {
				text := asText(attr.Value)
				if text == nil {
					return "", fmt.Errorf("%w: malformed attribute selector: %s", selector.ErrInvalidSelector, part.Body)
				}
				tokens = append(tokens, g.factory.GenerateLocator(recv, kind, *text, CallOptions{Exact: attr.CaseSensitive}))
				continue
			}
			// Other attribute names stay raw selector parts.

		case "internal:control":
			if part.Body == "enter-frame" {
				tokens = append(tokens, g.factory.GenerateLocator(recv, KindFrameLocator, Text{}, CallOptions{}))
				st = st.toFrame()
				continue
			}
		}

		// Plain selector part, possibly entering a frame.
		kind := KindDefault
		if i+1 < len(parts) && isEnterFrame(parts[i+1]) {
			kind = KindFrame
			st = st.toFrame()
			i++
		}
		single := &selector.Selector{Parts: []*selector.Part{part}}
		tokens = append(tokens, g.factory.GenerateLocator(recv, kind, Text{Value: single.String()}, CallOptions{}))
	}
	return g.factory.ChainLocators(tokens), nil
}

// asText converts an attribute value to a call body; values that are
// neither strings nor regexes yield nil.
func asText(value any) *Text {
	switch v := value.(type) {
	case string:
		return &Text{Value: v}
	case *selector.Regex:
		return &Text{Regex: v}
	}
	return nil
}

// coerceNumber turns a level value from the attribute grammar into the
// numeric form the option renders as.
func coerceNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
