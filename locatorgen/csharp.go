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
	"fmt"
	"strings"

	"github.com/igaisin/playwright/selector"
)

// csharpFactory renders calls as C# source. Options use target-typed
// `new()` initializers and regex text bodies switch to the *Regex
// option properties.
type csharpFactory struct{}

func (f csharpFactory) GenerateLocator(base Receiver, kind CallKind, body Text, opts CallOptions) string {
	switch kind {
	case KindDefault:
		return "Locator(" + f.quote(body.Value) + ")"
	case KindFrame:
		return "FrameLocator(" + f.quote(body.Value) + ")"
	case KindFrameLocator:
		return "ContentFrame"
	case KindNth:
		return "Nth(" + body.Value + ")"
	case KindFirst:
		return "First"
	case KindLast:
		return "Last"
	case KindVisible:
		visible := "false"
		if body.Value == "true" {
			visible = "true"
		}
		return "Filter(new() { Visible = " + visible + " })"
	case KindRole:
		attrs := make([]string, 0, len(opts.Attrs)+2)
		if opts.Name != nil {
			if opts.Name.Regex != nil {
				attrs = append(attrs, "NameRegex = "+f.regexToString(opts.Name.Regex))
			} else {
				attrs = append(attrs, "Name = "+f.quote(opts.Name.Value))
				if opts.Exact {
					attrs = append(attrs, "Exact = true")
				}
			}
		}
		for _, attr := range opts.Attrs {
			attrs = append(attrs, toTitleCase(attr.Name)+" = "+f.attrValue(attr.Value))
		}
		role := "AriaRole." + toTitleCase(body.Value)
		if len(attrs) == 0 {
			return "GetByRole(" + role + ")"
		}
		return "GetByRole(" + role + ", new() { " + strings.Join(attrs, ", ") + " })"
	case KindHasText:
		if body.Regex != nil {
			return "Filter(new() { HasTextRegex = " + f.regexToString(body.Regex) + " })"
		}
		return "Filter(new() { HasText = " + f.quote(body.Value) + " })"
	case KindHasNotText:
		if body.Regex != nil {
			return "Filter(new() { HasNotTextRegex = " + f.regexToString(body.Regex) + " })"
		}
		return "Filter(new() { HasNotText = " + f.quote(body.Value) + " })"
	case KindHas:
		return "Filter(new() { Has = " + body.Value + " })"
	case KindNot:
		return "Filter(new() { HasNot = " + body.Value + " })"
	case KindAnd:
		return "And(" + body.Value + ")"
	case KindOr:
		return "Or(" + body.Value + ")"
	case KindChain:
		return "Locator(" + body.Value + ")"
	case KindTestID:
		return "GetByTestId(" + f.toValue(body) + ")"
	case KindText:
		return f.toCallWithExact("GetByText", body, opts.Exact)
	case KindLabel:
		return f.toCallWithExact("GetByLabel", body, opts.Exact)
	case KindPlaceholder:
		return f.toCallWithExact("GetByPlaceholder", body, opts.Exact)
	case KindAlt:
		return f.toCallWithExact("GetByAltText", body, opts.Exact)
	case KindTitle:
		return f.toCallWithExact("GetByTitle", body, opts.Exact)
	}
	panic("unknown locator call kind " + string(kind))
}

func (f csharpFactory) ChainLocators(fragments []string) string {
	return strings.Join(fragments, ".")
}

func (f csharpFactory) toCallWithExact(method string, body Text, exact bool) string {
	if body.Regex != nil {
		return method + "(" + f.regexToString(body.Regex) + ")"
	}
	if exact {
		return method + "(" + f.quote(body.Value) + ", new() { Exact = true })"
	}
	return method + "(" + f.quote(body.Value) + ")"
}

func (f csharpFactory) toValue(body Text) string {
	if body.Regex != nil {
		return f.regexToString(body.Regex)
	}
	return f.quote(body.Value)
}

func (f csharpFactory) attrValue(value any) string {
	if s, ok := value.(string); ok {
		return f.quote(s)
	}
	return fmt.Sprintf("%v", value)
}

func (f csharpFactory) regexToString(re *selector.Regex) string {
	suffix := ""
	if re.HasFlag('i') {
		suffix = ", RegexOptions.IgnoreCase"
	}
	return "new Regex(" + f.quote(normalizeEscapedRegexQuotes(re.Source)) + suffix + ")"
}

func (f csharpFactory) quote(text string) string {
	return escapeWithQuotes(text, '"')
}
