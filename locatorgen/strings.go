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
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/serenize/snaker"
)

// Matches a quote preceded by an odd number of backslashes.
var reEscapedRegexQuotes = regexp.MustCompile("(^|[^\\\\])(\\\\\\\\)*\\\\(['\"`])")

// normalizeEscapedRegexQuotes drops the escaping of quote characters that
// selector embedding added; quotes need no escape inside a regex literal.
func normalizeEscapedRegexQuotes(source string) string {
	return reEscapedRegexQuotes.ReplaceAllString(source, "${1}${2}${3}")
}

// escapeWithQuotes renders text as a quoted string literal using the given
// quote character. Escaping is JSON-compatible apart from the quote
// character itself. Unsupported quote characters are a programmer error.
func escapeWithQuotes(text string, quote byte) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(text)
	stringified := strings.TrimSuffix(sb.String(), "\n")
	escaped := strings.ReplaceAll(stringified[1:len(stringified)-1], `\"`, `"`)
	switch quote {
	case '\'':
		return "'" + strings.ReplaceAll(escaped, "'", `\'`) + "'"
	case '"':
		return `"` + strings.ReplaceAll(escaped, `"`, `\"`) + `"`
	case '`':
		return "`" + strings.ReplaceAll(escaped, "`", "\\`") + "`"
	default:
		panic("invalid escape char")
	}
}

// toSnakeCase converts camelCase option names to snake_case,
// e.g. includeHidden to include_hidden.
func toSnakeCase(name string) string {
	return snaker.CamelToSnake(name)
}

// toTitleCase upper-cases the first character only: setExact-style method
// and property names need exactly that, so a general case converter would
// mangle the camelCase tail.
func toTitleCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
