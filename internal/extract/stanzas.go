// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the configuration text belonging to resolved
// entries and objects out of the document.
//
// Simple kinds (vrf, interface, router bgp/static/hsrp) are single lines
// in the flattened layout, so ExtractStanzas collects matching lines.
// Policy-maps and route-policies are delimited blocks, so ExtractBlocks
// copies each block from its declaration to its terminator.
package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/overlay-extract/internal/fanout"
	"github.com/pdiddy/overlay-extract/internal/logging"
	"github.com/pdiddy/overlay-extract/internal/match"
	"github.com/pdiddy/overlay-extract/internal/stanza"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// Options tunes stanza extraction.
type Options struct {
	// Matcher compares entry keys with lines. Nil means substring.
	Matcher match.Matcher

	// Workers bounds per-entry parallelism.
	Workers int
}

func (o Options) matcher() match.Matcher {
	if o.Matcher == nil {
		return match.Substring{}
	}
	return o.Matcher
}

// StanzaResult holds one record per eligible (entry, kind) pair, entry
// major and in types.StanzaKinds order, plus a miss for each empty record.
type StanzaResult struct {
	Stanzas     []types.ExtractedStanza
	Diagnostics types.Diagnostics
}

// Lines returns every matched line of kind, in record order.
func (r StanzaResult) Lines(kind types.StanzaKind) []string {
	var out []string
	for _, s := range r.Stanzas {
		if s.Kind == kind {
			out = append(out, s.Lines...)
		}
	}
	return out
}

// ExtractStanzas collects, for each entry and each simple kind, the lines
// that start with the kind's keyword and reference the entry's VRF name or
// padded interface token. Entries carrying the NoAttribute sentinel are
// skipped.
func ExtractStanzas(ctx context.Context, doc *stanza.Document, entries []types.Level1Entry, opts Options, w io.Writer) (StanzaResult, error) {
	log := logging.Component(ctx, "stanzas")
	m := opts.matcher()
	perEntry := make([][]types.ExtractedStanza, len(entries))

	err := fanout.Each(ctx, len(entries), opts.Workers, func(_ context.Context, i int) error {
		e := entries[i]
		if e.Excluded() {
			return nil
		}
		refs := doc.Filter(func(line string) bool {
			return match.Any(m, line, e.Attribute, e.InterfaceKey())
		})
		out := make([]types.ExtractedStanza, 0, len(types.StanzaKinds))
		for _, kind := range types.StanzaKinds {
			out = append(out, types.ExtractedStanza{
				Entry: e,
				Kind:  kind,
				Lines: linesOfKind(refs, kind),
			})
		}
		perEntry[i] = out
		return nil
	})
	if err != nil {
		return StanzaResult{}, fmt.Errorf("extracting stanzas: %w", err)
	}

	res := StanzaResult{Diagnostics: types.Diagnostics{}}
	for i, e := range entries {
		if e.Excluded() {
			continue
		}
		found := 0
		for _, s := range perEntry[i] {
			res.Stanzas = append(res.Stanzas, s)
			if s.Found() {
				found++
				continue
			}
			miss := types.Miss{
				Category:  s.Kind.Category(),
				Interface: e.Interface,
				Attribute: e.Attribute,
				Reason:    fmt.Sprintf("no %s lines reference %q or %q", s.Kind, e.Attribute, e.InterfaceKey()),
			}
			res.Diagnostics.Add(miss)
			log.Warn().Str("interface", e.Interface).Str("vrf", e.Attribute).Str("kind", string(s.Kind)).Msg("empty category")
		}
		fmt.Fprintf(w, "extracted %s %s (%d/%d kinds)\n", e.Interface, e.Attribute, found, len(types.StanzaKinds))
	}

	return res, nil
}

// linesOfKind keeps the lines that open a stanza of kind.
func linesOfKind(lines []string, kind types.StanzaKind) []string {
	var out []string
	for _, line := range lines {
		if stanza.IsStart(line, kind) {
			out = append(out, line)
		}
	}
	return out
}
