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

// javaFactory renders calls as Java source. Option builders are nested
// classes of the receiver type, so the receiver decides the class names.
type javaFactory struct{}

func (f javaFactory) GenerateLocator(base Receiver, kind CallKind, body Text, opts CallOptions) string {
	var clazz string
	switch base {
	case ReceiverPage:
		clazz = "Page"
	case ReceiverFrameLocator:
		clazz = "FrameLocator"
	default:
		clazz = "Locator"
	}
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
		return "filter(new " + clazz + ".FilterOptions().setVisible(" + visible + "))"
	case KindRole:
		var attrs strings.Builder
		if opts.Name != nil {
			if opts.Name.Regex != nil {
				attrs.WriteString(".setName(" + f.regexToString(opts.Name.Regex) + ")")
			} else {
				attrs.WriteString(".setName(" + f.quote(opts.Name.Value) + ")")
				if opts.Exact {
					attrs.WriteString(".setExact(true)")
				}
			}
		}
		for _, attr := range opts.Attrs {
			attrs.WriteString(".set" + toTitleCase(attr.Name) + "(" + f.attrValue(attr.Value) + ")")
		}
		role := "AriaRole." + strings.ToUpper(toSnakeCase(body.Value))
		if attrs.Len() == 0 {
			return "getByRole(" + role + ")"
		}
		return "getByRole(" + role + ", new " + clazz + ".GetByRoleOptions()" + attrs.String() + ")"
	case KindHasText:
		return "filter(new " + clazz + ".FilterOptions().setHasText(" + f.toValue(body) + "))"
	case KindHasNotText:
		return "filter(new " + clazz + ".FilterOptions().setHasNotText(" + f.toValue(body) + "))"
	case KindHas:
		return "filter(new " + clazz + ".FilterOptions().setHas(" + body.Value + "))"
	case KindNot:
		return "filter(new " + clazz + ".FilterOptions().setHasNot(" + body.Value + "))"
	case KindAnd:
		return "and(" + body.Value + ")"
	case KindOr:
		return "or(" + body.Value + ")"
	case KindChain:
		return "locator(" + body.Value + ")"
	case KindTestID:
		return "getByTestId(" + f.toValue(body) + ")"
	case KindText:
		return f.toCallWithExact(clazz, "getByText", body, opts.Exact)
	case KindLabel:
		return f.toCallWithExact(clazz, "getByLabel", body, opts.Exact)
	case KindPlaceholder:
		return f.toCallWithExact(clazz, "getByPlaceholder", body, opts.Exact)
	case KindAlt:
		return f.toCallWithExact(clazz, "getByAltText", body, opts.Exact)
	case KindTitle:
		return f.toCallWithExact(clazz, "getByTitle", body, opts.Exact)
	}
	panic("unknown locator call kind " + string(kind))
}

func (f javaFactory) ChainLocators(fragments []string) string {
	return strings.Join(fragments, ".")
}

func (f javaFactory) toCallWithExact(clazz, method string, body Text, exact bool) string {
	if body.Regex != nil {
		return method + "(" + f.regexToString(body.Regex) + ")"
	}
	if exact {
		return method + "(" + f.quote(body.Value) + ", new " + clazz + "." + toTitleCase(method) + "Options().setExact(true))"
	}
	return method + "(" + f.quote(body.Value) + ")"
}

func (f javaFactory) toValue(body Text) string {
	if body.Regex != nil {
		return f.regexToString(body.Regex)
	}
	return f.quote(body.Value)
}

func (f javaFactory) attrValue(value any) string {
	if s, ok := value.(string); ok {
		return f.quote(s)
	}
	return fmt.Sprintf("%v", value)
}

func (f javaFactory) regexToString(re *selector.Regex) string {
	suffix := ""
	if re.HasFlag('i') {
		suffix = ", Pattern.CASE_INSENSITIVE"
	}
	return "Pattern.compile(" + f.quote(normalizeEscapedRegexQuotes(re.Source)) + suffix + ")"
}

func (f javaFactory) quote(text string) string {
	return escapeWithQuotes(text, '"')
}
