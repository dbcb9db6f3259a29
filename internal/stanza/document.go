// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stanza holds the in-memory configuration document and the rules
// that decide where a stanza starts and ends.
//
// A document is a flat sequence of lines. Top-level stanzas start at
// column 0 with a keyword. Simple kinds (vrf, interface, router ...) are
// single lines in the flattened "formal" layout; delimited kinds
// (policy-map, route-policy) run from their declaration line to a fixed
// terminator line.
package stanza

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrUnreadable is returned when the configuration document cannot be read.
var ErrUnreadable = errors.New("configuration document unreadable")

// maxLineBytes bounds a single configuration line. Banner and certificate
// lines in real configs run well past bufio's 64 KiB default.
const maxLineBytes = 1 << 20

// Document is an immutable, ordered sequence of configuration lines.
type Document struct {
	source string
	lines  []string
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.source = path
	return doc, nil
}

// Parse reads a document from r. Trailing carriage returns are dropped so
// that configs saved with CRLF line endings compare equal to LF ones.
func Parse(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Document{lines: lines}, nil
}

// FromLines builds a document from lines already in memory. The slice is
// copied.
func FromLines(lines []string) *Document {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &Document{lines: cp}
}

// Source returns the path the document was loaded from, if any.
func (d *Document) Source() string {
	return d.source
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the i-th line (zero-based).
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// Lines returns a copy of every line.
func (d *Document) Lines() []string {
	cp := make([]string, len(d.lines))
	copy(cp, d.lines)
	return cp
}

// Filter returns, in document order, every line for which keep is true.
func (d *Document) Filter(keep Predicate) []string {
	var out []string
	for _, line := range d.lines {
		if keep(line) {
			out = append(out, line)
		}
	}
	return out
}
