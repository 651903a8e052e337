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

// Package locatorgen translates selector source text into the source code
// of the equivalent locator call chain in one of the supported target
// languages.
package locatorgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/igaisin/playwright/log"
	"github.com/igaisin/playwright/selector"
)

// Language identifies a code generation backend.
type Language string

// Supported target languages.
const (
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
)

// ErrUnsupportedLanguage is returned for languages outside the catalog.
var ErrUnsupportedLanguage = errors.New("unsupported language")

var factories = map[Language]LocatorFactory{
	JavaScript: javascriptFactory{},
	Python:     pythonFactory{},
	Java:       javaFactory{},
	CSharp:     csharpFactory{},
}

// Languages returns the supported target languages in a stable order.
func Languages() []Language {
	return []Language{JavaScript, Python, Java, CSharp}
}

// ParseLanguage resolves a language name, accepting the common aliases.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "javascript", "js":
		return JavaScript, nil
	case "python", "py":
		return Python, nil
	case "java":
		return Java, nil
	case "csharp", "c#", "cs":
		return CSharp, nil
	}
	return "", unsupportedLanguage(name)
}

func unsupportedLanguage(name string) error {
	return fmt.Errorf("%w %q (supported: javascript, python, java, csharp)", ErrUnsupportedLanguage, name)
}

// TranslateOptions adjust a single translation.
type TranslateOptions struct {
	// FrameContext starts the chain from a frame locator instead of a
	// page.
	FrameContext bool
	// Tolerant returns the selector source unchanged instead of an error
	// when it cannot be translated.
	Tolerant bool
}

// Generator translates selectors for one fixed target language.
type Generator struct {
	lang    Language
	factory LocatorFactory
	log     *log.Logger
}

// New creates a generator for the given target language. A nil logger
// discards all log lines.
func New(lang Language, logger *log.Logger) (*Generator, error) {
	factory, ok := factories[lang]
	if !ok {
		return nil, unsupportedLanguage(string(lang))
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Generator{
		lang:    lang,
		factory: factory,
		log:     logger,
	}, nil
}

// Language returns the generator's target language.
func (g *Generator) Language() Language { return g.lang }

// Translate converts selector source text into a locator expression.
// In tolerant mode untranslatable input is logged and returned unchanged
// instead of producing an error.
func (g *Generator) Translate(source string, opts *TranslateOptions) (string, error) {
	g.log.Debugf("Generator:Translate", "lang:%s selector:%q opts:%+v", g.lang, source, opts)

	var o TranslateOptions
	if opts != nil {
		o = *opts
	}
	out, err := g.translate(source, o)
	if err != nil {
		if o.Tolerant {
			g.log.Warnf("Generator:Translate", "keeping selector %q as is: %v", source, err)
			return source, nil
		}
		return "", err
	}
	return out, nil
}

func (g *Generator) translate(source string, o TranslateOptions) (string, error) {
	parsed, err := selector.Parse(source)
	if err != nil {
		return "", err
	}
	base := ReceiverPage
	if o.FrameContext {
		base = ReceiverFrameLocator
	}
	return g.render(parsed, base)
}

// Translate converts selector source text into a locator expression in
// the given target language.
func Translate(lang Language, source string, opts *TranslateOptions) (string, error) {
	g, err := New(lang, nil)
	if err != nil {
		return "", err
	}
	return g.Translate(source, opts)
}
