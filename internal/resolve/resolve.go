// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve finds the policy-map and route-policy declarations that
// belong to each selected interface/VRF pair.
//
// Neither object is nested in the interface stanza. A policy-map belongs
// to an entry when its declaration line mentions the VRF name or the
// padded interface token. Route-policies follow a different convention:
// the VRF's variant suffix and its "VRF-" prefix are dropped before the
// same search.
package resolve

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

// Options tunes resolution.
type Options struct {
	// RoutePolicyPrefix is stripped from the route-policy base name.
	RoutePolicyPrefix string

	// SuffixLength is the number of variant characters dropped from the
	// VRF name.
	SuffixLength int

	// Matcher compares keys with declaration lines. Nil means substring.
	Matcher match.Matcher

	// Workers bounds per-entry parallelism.
	Workers int
}

// DefaultOptions returns the options matching the production naming
// convention.
func DefaultOptions() Options {
	return Options{
		RoutePolicyPrefix: DefaultRoutePolicyPrefix,
		SuffixLength:      DefaultSuffixLength,
		Matcher:           match.Substring{},
		Workers:           1,
	}
}

func (o Options) matcher() match.Matcher {
	if o.Matcher == nil {
		return match.Substring{}
	}
	return o.Matcher
}

// RouteKey returns the name searched for in route-policy declarations.
func (o Options) RouteKey(vrf string) string {
	return StripKnownPrefix(RoutePolicyBase(vrf, o.SuffixLength), o.RoutePolicyPrefix)
}

// Result holds the resolved declaration lines per object kind, in entry
// order, plus the per-entry references and misses.
type Result struct {
	PolicyNames []string
	RouteNames  []string
	References  []types.ResolvedReference
	Diagnostics types.Diagnostics
}

// Eligible returns the number of entries that took part in resolution.
func Eligible(entries []types.Level1Entry) int {
	n := 0
	for _, e := range entries {
		if !e.Excluded() {
			n++
		}
	}
	return n
}

type entryResult struct {
	policy []string
	route  []string
}

// Resolve searches doc for the objects referenced by each entry. Entries
// carrying the NoAttribute sentinel are skipped. Every matching
// declaration line is kept, in document order within an entry and in
// entry order across entries. An entry with no match for a kind produces
// one miss for that kind and nothing in its name list.
func Resolve(ctx context.Context, doc *stanza.Document, entries []types.Level1Entry, opts Options, w io.Writer) (Result, error) {
	log := logging.Component(ctx, "resolve")
	results := make([]entryResult, len(entries))

	err := fanout.Each(ctx, len(entries), opts.Workers, func(_ context.Context, i int) error {
		if entries[i].Excluded() {
			return nil
		}
		results[i] = resolveEntry(doc, entries[i], opts)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("resolving references: %w", err)
	}

	res := Result{Diagnostics: types.Diagnostics{}}
	for i, e := range entries {
		if e.Excluded() {
			log.Debug().Str("interface", e.Interface).Msg("skipping interface without vrf")
			continue
		}
		r := results[i]
		res.PolicyNames = append(res.PolicyNames, r.policy...)
		res.RouteNames = append(res.RouteNames, r.route...)
		res.record(e, types.PolicyObject, r.policy, e.Attribute)
		res.record(e, types.RoutePolicyObject, r.route, opts.RouteKey(e.Attribute))

		fmt.Fprintf(w, "resolved %s %s (%d policy-map, %d route-policy)\n",
			e.Interface, e.Attribute, len(r.policy), len(r.route))
	}

	for _, kind := range []types.ObjectKind{types.PolicyObject, types.RoutePolicyObject} {
		for _, m := range res.Diagnostics[kind.Category()] {
			log.Warn().Str("interface", m.Interface).Str("vrf", m.Attribute).Msg(m.Reason)
		}
	}

	return res, nil
}

func (r *Result) record(e types.Level1Entry, kind types.ObjectKind, names []string, key string) {
	if len(names) == 0 {
		r.References = append(r.References, types.ResolvedReference{Entry: e, Kind: kind})
		r.Diagnostics.Add(types.Miss{
			Category:  kind.Category(),
			Interface: e.Interface,
			Attribute: e.Attribute,
			Reason:    fmt.Sprintf("no %s declaration references %q or %q", kind, key, e.InterfaceKey()),
		})
		return
	}
	for _, n := range names {
		name := n
		r.References = append(r.References, types.ResolvedReference{Entry: e, Kind: kind, Name: &name})
	}
}

func resolveEntry(doc *stanza.Document, e types.Level1Entry, opts Options) entryResult {
	return entryResult{
		policy: declarations(doc, types.PolicyObject, opts.matcher(), e.Attribute, e.InterfaceKey()),
		route:  declarations(doc, types.RoutePolicyObject, opts.matcher(), opts.RouteKey(e.Attribute), e.InterfaceKey()),
	}
}

// declarations returns every declaration line of kind that references one
// of keys.
func declarations(doc *stanza.Document, kind types.ObjectKind, m match.Matcher, keys ...string) []string {
	return doc.Filter(func(line string) bool {
		return stanza.IsStart(line, kind) && match.Any(m, line, keys...)
	})
}
