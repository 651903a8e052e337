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

import "github.com/igaisin/playwright/selector"

// Receiver is the kind of value a generated call is invoked on.
type Receiver string

const (
	ReceiverPage         Receiver = "page"
	ReceiverLocator      Receiver = "locator"
	ReceiverFrameLocator Receiver = "frame-locator"
)

// CallKind names one call of the generated chain. The catalog is closed:
// backends panic on kinds they do not recognize, since an unknown kind
// means the traversal and the backends have diverged.
type CallKind string

const (
	KindDefault      CallKind = "default"
	KindFrame        CallKind = "frame"
	KindFrameLocator CallKind = "frame-locator"
	KindNth          CallKind = "nth"
	KindFirst        CallKind = "first"
	KindLast         CallKind = "last"
	KindVisible      CallKind = "visible"
	KindRole         CallKind = "role"
	KindHasText      CallKind = "has-text"
	KindHasNotText   CallKind = "has-not-text"
	KindHas          CallKind = "has"
	KindNot          CallKind = "not"
	KindAnd          CallKind = "and"
	KindOr           CallKind = "or"
	KindChain        CallKind = "chain"
	KindTestID       CallKind = "test-id"
	KindText         CallKind = "text"
	KindLabel        CallKind = "label"
	KindPlaceholder  CallKind = "placeholder"
	KindAlt          CallKind = "alt"
	KindTitle        CallKind = "title"
)

// Text is a call body or option value that is either a literal string or
// a regular expression.
type Text struct {
	Value string
	Regex *selector.Regex
}

// Attr is an auxiliary option of a role call, e.g. level or pressed.
// Value holds a string, bool or float64.
type Attr struct {
	Name  string
	Value any
}

// CallOptions carries the optional parts of a call description. Name is
// nil when the call has no accessible-name option.
type CallOptions struct {
	Exact bool
	Name  *Text
	Attrs []Attr
}

// LocatorFactory renders one abstract call description as a source-code
// fragment in a fixed target language. Implementations are pure and
// stateless.
type LocatorFactory interface {
	// GenerateLocator renders a single call. It panics on a CallKind it
	// does not recognize.
	GenerateLocator(base Receiver, kind CallKind, body Text, opts CallOptions) string
	// ChainLocators joins rendered calls into one expression.
	ChainLocators(fragments []string) string
}
