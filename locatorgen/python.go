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

// pythonFactory renders calls as Python source. Methods are snake_case,
// single-element accessors are properties and regexes become re.compile
// of a raw string.
type pythonFactory struct{}

func (f pythonFactory) GenerateLocator(base Receiver, kind CallKind, body Text, opts CallOptions) string {
	switch kind {
	case KindDefault:
		return "locator(" + f.quote(body.Value) + ")"
	case KindFrame:
		return "frame_locator(" + f.quote(body.Value) + ")"
	case KindFrameLocator:
		return "content_frame"
	case KindNth:
		return "nth(" + body.Value + ")"
	case KindFirst:
		return "first"
	case KindLast:
		return "last"
	case KindVisible:
		if body.Value == "true" {
			return "filter(visible=True)"
		}
		return "filter(visible=False)"
	case KindRole:
		attrs := make([]string, 0, len(opts.Attrs)+2)
		if opts.Name != nil {
			if opts.Name.Regex != nil {
				attrs = append(attrs, "name="+f.regexToString(opts.Name.Regex))
			} else {
				attrs = append(attrs, "name="+f.quote(opts.Name.Value))
				if opts.Exact {
					attrs = append(attrs, "exact=True")
				}
			}
		}
		for _, attr := range opts.Attrs {
			attrs = append(attrs, toSnakeCase(attr.Name)+"="+f.attrValue(attr.Value))
		}
		if len(attrs) == 0 {
			return "get_by_role(" + f.quote(body.Value) + ")"
		}
		return "get_by_role(" + f.quote(body.Value) + ", " + strings.Join(attrs, ", ") + ")"
	case KindHasText:
		return "filter(has_text=" + f.toValue(body) + ")"
	case KindHasNotText:
		return "filter(has_not_text=" + f.toValue(body) + ")"
	case KindHas:
		return "filter(has=" + body.Value + ")"
	case KindNot:
		return "filter(has_not=" + body.Value + ")"
	case KindAnd:
		return "and_(" + body.Value + ")"
	case KindOr:
		return "or_(" + body.Value + ")"
	case KindChain:
		return "locator(" + body.Value + ")"
	case KindTestID:
		return "get_by_test_id(" + f.toValue(body) + ")"
	case KindText:
		return f.toCallWithExact("get_by_text", body, opts.Exact)
	case KindLabel:
		return f.toCallWithExact("get_by_label", body, opts.Exact)
	case KindPlaceholder:
		return f.toCallWithExact("get_by_placeholder", body, opts.Exact)
	case KindAlt:
		return f.toCallWithExact("get_by_alt_text", body, opts.Exact)
	case KindTitle:
		return f.toCallWithExact("get_by_title", body, opts.Exact)
	}
	panic("unknown locator call kind " + string(kind))
}

func (f pythonFactory) ChainLocators(fragments []string) string {
	return strings.Join(fragments, ".")
}

func (f pythonFactory) toCallWithExact(method string, body Text, exact bool) string {
	if body.Regex != nil {
		return method + "(" + f.regexToString(body.Regex) + ")"
	}
	if exact {
		return method + "(" + f.quote(body.Value) + ", exact=True)"
	}
	return method + "(" + f.quote(body.Value) + ")"
}

func (f pythonFactory) toValue(body Text) string {
	if body.Regex != nil {
		return f.regexToString(body.Regex)
	}
	return f.quote(body.Value)
}

func (f pythonFactory) attrValue(value any) string {
	switch v := value.(type) {
	case string:
		return f.quote(v)
	case bool:
		if v {
			return "True"
		}
		return "False"
	}
	return fmt.Sprintf("%v", value)
}

func (f pythonFactory) regexToString(re *selector.Regex) string {
	// The raw string keeps regex backslashes intact, so only the slash
	// escapes and the delimiting quotes need rewriting.
	source := strings.ReplaceAll(re.Source, `\/`, "/")
	source = strings.ReplaceAll(source, `"`, `\"`)
	suffix := ""
	if re.HasFlag('i') {
		suffix = ", re.IGNORECASE"
	}
	return `re.compile(r"` + source + `"` + suffix + `)`
}

func (f pythonFactory) quote(text string) string {
	return escapeWithQuotes(text, '"')
}
