// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stanza

import "strings"

// Fields is a line split on runs of whitespace.
type Fields []string

// Split tokenizes a line.
func Split(line string) Fields {
	return strings.Fields(line)
}

// At returns the n-th field, counting from 1, and whether it exists.
func (f Fields) At(n int) (string, bool) {
	if n < 1 || n > len(f) {
		return "", false
	}
	return f[n-1], true
}

// Index returns the 1-based position of the first field equal to tok at or
// after position from, or 0 when there is none.
func (f Fields) Index(tok string, from int) int {
	if from < 1 {
		from = 1
	}
	for i := from - 1; i < len(f); i++ {
		if f[i] == tok {
			return i + 1
		}
	}
	return 0
}
