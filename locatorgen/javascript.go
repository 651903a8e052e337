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

// javascriptFactory renders calls as JavaScript source. Strings are
// single quoted and regexes stay regex literals.
type javascriptFactory struct{}

func (f javascriptFactory) GenerateLocator(base Receiver, kind CallKind, body Text, opts CallOptions) string {
	switch kind {
	case KindDefault:
		return "locator(" + f.quote(body.Value) + ")"
	case KindFrame:
		return "frameLocator(" + f.quote(body.Value) + ")"
	case KindFrameLocator:
		return "contentFrame()"
	case KindNth:
		return "nth(" + body.Value + ")"
	case KindFirst:
		return "first()"
	case KindLast:
		return "last()"
	case KindVisible:
		visible := "false"
		if body.Value == "true" {
			visible = "true"
		}
		return "filter({ visible: " + visible + " })"
	case KindRole:
		attrs := make([]string, 0, len(opts.Attrs)+2)
		if opts.Name != nil {
			if opts.Name.Regex != nil {
				attrs = append(attrs, "name: "+f.regexToSourceString(opts.Name.Regex))
			} else {
				attrs = append(attrs, "name: "+f.quote(opts.Name.Value))
				if opts.Exact {
					attrs = append(attrs, "exact: true")
				}
			}
		}
		for _, attr := range opts.Attrs {
			attrs = append(attrs, attr.Name+": "+f.attrValue(attr.Value))
		}
		if len(attrs) == 0 {
			return "getByRole(" + f.quote(body.Value) + ")"
		}
		return "getByRole(" + f.quote(body.Value) + ", { " + strings.Join(attrs, ", ") + " })"
	case KindHasText:
		return "filter({ hasText: " + f.toValue(body) + " })"
	case KindHasNotText:
		return "filter({ hasNotText: " + f.toValue(body) + " })"
	case KindHas:
		return "filter({ has: " + body.Value + " })"
	case KindNot:
		return "filter({ hasNot: " + body.Value + " })"
	case KindAnd:
		return "and(" + body.Value + ")"
	case KindOr:
		return "or(" + body.Value + ")"
	case KindChain:
		return "locator(" + body.Value + ")"
	case KindTestID:
		return "getByTestId(" + f.toValue(body) + ")"
	case KindText:
		return f.toCallWithExact("getByText", body, opts.Exact)
	case KindLabel:
		return f.toCallWithExact("getByLabel", body, opts.Exact)
	case KindPlaceholder:
		return f.toCallWithExact("getByPlaceholder", body, opts.Exact)
	case KindAlt:
		return f.toCallWithExact("getByAltText", body, opts.Exact)
	case KindTitle:
		return f.toCallWithExact("getByTitle", body, opts.Exact)
	}
	panic("unknown locator call kind " + string(kind))
}

func (f javascriptFactory) ChainLocators(fragments []string) string {
	return strings.Join(fragments, ".")
}

func (f javascriptFactory) toCallWithExact(method string, body Text, exact bool) string {
	if body.Regex != nil {
		return method + "(" + f.regexToSourceString(body.Regex) + ")"
	}
	if exact {
		return method + "(" + f.quote(body.Value) + ", { exact: true })"
	}
	return method + "(" + f.quote(body.Value) + ")"
}

func (f javascriptFactory) toValue(body Text) string {
	if body.Regex != nil {
		return f.regexToSourceString(body.Regex)
	}
	return f.quote(body.Value)
}

func (f javascriptFactory) attrValue(value any) string {
	if s, ok := value.(string); ok {
		return f.quote(s)
	}
	return fmt.Sprintf("%v", value)
}

func (f javascriptFactory) regexToSourceString(re *selector.Regex) string {
	return normalizeEscapedRegexQuotes(re.String())
}

func (f javascriptFactory) quote(text string) string {
	return escapeWithQuotes(text, '\'')
}
