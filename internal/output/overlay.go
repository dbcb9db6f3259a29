// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output merges the stage results into per-category artifacts and
// writes them, with their diagnostics and a manifest, to an existing
// directory.
package output

import (
	"github.com/pdiddy/overlay-extract/internal/extract"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// Overlay is the merged, ready-to-write result of one run.
type Overlay struct {
	// Body holds the artifact lines per category.
	Body map[types.Category][]string

	// Items counts extracted records per category: matched lines for
	// simple kinds, blocks for delimited kinds.
	Items map[types.Category]int

	// Diagnostics holds the misses of every stage.
	Diagnostics types.Diagnostics
}

// Assemble merges the stanza and block results and every stage's
// diagnostics into an Overlay. Block artifacts get sep after each block.
func Assemble(stanzas extract.StanzaResult, route, policy extract.BlockResult, resolveDiag types.Diagnostics, sep string) Overlay {
	o := Overlay{
		Body:        make(map[types.Category][]string),
		Items:       make(map[types.Category]int),
		Diagnostics: types.Diagnostics{},
	}

	for _, kind := range types.StanzaKinds {
		lines := stanzas.Lines(kind)
		o.Body[kind.Category()] = lines
		o.Items[kind.Category()] = len(lines)
	}
	for _, r := range []extract.BlockResult{route, policy} {
		o.Body[r.Kind.Category()] = r.Text(sep)
		o.Items[r.Kind.Category()] = r.Found()
	}

	// Resolution misses first: they explain later extraction gaps.
	o.Diagnostics.Merge(resolveDiag)
	o.Diagnostics.Merge(stanzas.Diagnostics)
	o.Diagnostics.Merge(route.Diagnostics)
	o.Diagnostics.Merge(policy.Diagnostics)
	return o
}
