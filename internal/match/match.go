// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether a configuration line references a key.
//
// Cross-references between interfaces, VRFs and policy objects are not
// structured in the flattened config; they are found by looking for the
// VRF name or the padded interface token inside other lines. Substring
// keeps that behaviour. Strict only accepts the key at the start of a
// whitespace token, followed by the end of the token or a name separator,
// which rules out CUST-A matching CUST-AB.
package match

import (
	"fmt"
	"strings"

	"github.com/pdiddy/overlay-extract/pkg/types"
)

// Matcher reports whether line references key.
type Matcher interface {
	Match(line, key string) bool
}

// New returns the Matcher for mode. An empty mode selects Substring.
func New(mode types.MatchMode) (Matcher, error) {
	switch mode {
	case types.MatchSubstring, "":
		return Substring{}, nil
	case types.MatchStrict:
		return Strict{}, nil
	default:
		return nil, fmt.Errorf("unknown match mode %q: use substring or strict", mode)
	}
}

// Any reports whether line references at least one of keys.
func Any(m Matcher, line string, keys ...string) bool {
	for _, k := range keys {
		if m.Match(line, k) {
			return true
		}
	}
	return false
}

// Substring matches any line containing key. An empty key never matches.
type Substring struct{}

func (Substring) Match(line, key string) bool {
	if key == "" {
		return false
	}
	return strings.Contains(line, key)
}

// Strict matches key at a token boundary. Padding blanks on the key are
// ignored, since token splitting already provides them.
type Strict struct{}

func (Strict) Match(line, key string) bool {
	k := strings.TrimSpace(key)
	if k == "" {
		return false
	}
	for _, f := range strings.Fields(line) {
		if !strings.HasPrefix(f, k) {
			continue
		}
		if len(f) == len(k) || isSeparator(f[len(k)]) {
			return true
		}
	}
	return false
}

func isSeparator(b byte) bool {
	switch b {
	case '-', '_', ':', '/':
		return true
	}
	return false
}
