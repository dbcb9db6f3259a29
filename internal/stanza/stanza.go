// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stanza

import "strings"

// Kind is a stanza kind introduced by a leading keyword of one or more
// words, e.g. "vrf" or "router bgp".
type Kind interface {
	Keyword() string
}

// DelimitedKind is a stanza kind closed by a fixed terminator line.
type DelimitedKind interface {
	Kind
	Terminator() string
}

// Word is a Kind given by its keyword alone.
type Word string

func (w Word) Keyword() string { return string(w) }

// Predicate reports whether a line satisfies some condition.
type Predicate func(line string) bool

// IsTopLevel reports whether the line starts at column 0.
func IsTopLevel(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

// IsStart reports whether line opens a stanza of kind k: it must start at
// column 0 and its leading tokens must equal the keyword's words.
func IsStart(line string, k Kind) bool {
	if !IsTopLevel(line) {
		return false
	}
	kw := strings.Fields(k.Keyword())
	if len(kw) == 0 {
		return false
	}
	f := Split(line)
	if len(f) < len(kw) {
		return false
	}
	for i, w := range kw {
		if f[i] != w {
			return false
		}
	}
	return true
}

// IsEnd reports whether line closes a stanza of kind k. Surrounding blanks
// are ignored: IOS-XR indents end-policy-map by one column but not
// end-policy.
func IsEnd(line string, k DelimitedKind) bool {
	return strings.TrimSpace(line) == k.Terminator()
}

// StartsWith returns a predicate matching lines that open a stanza of k.
func StartsWith(k Kind) Predicate {
	return func(line string) bool { return IsStart(line, k) }
}

// Equals returns a predicate matching lines exactly equal to s.
func Equals(s string) Predicate {
	return func(line string) bool { return line == s }
}

// EndsWith returns a predicate matching the terminator of k.
func EndsWith(k DelimitedKind) Predicate {
	return func(line string) bool { return IsEnd(line, k) }
}

// Extract returns the lines from the first line satisfying start through
// the first later line satisfying end, both inclusive. It returns nil when
// no line satisfies start or no terminator follows it.
func Extract(doc *Document, start, end Predicate) []string {
	first := -1
	for i := 0; i < doc.Len(); i++ {
		if start(doc.Line(i)) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	for j := first + 1; j < doc.Len(); j++ {
		if end(doc.Line(j)) {
			out := make([]string, j-first+1)
			for k := first; k <= j; k++ {
				out[k-first] = doc.Line(k)
			}
			return out
		}
	}
	return nil
}
