// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/overlay-extract/internal/logging"
	"github.com/pdiddy/overlay-extract/internal/stanza"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// DefaultSeparator is written after every extracted block.
const DefaultSeparator = "!"

// ExtractBlock returns the block opened by the first line exactly equal to
// name, through the first later terminator line of kind. It returns nil
// when name never appears or no terminator follows it.
func ExtractBlock(doc *stanza.Document, name string, kind types.ObjectKind) []string {
	return stanza.Extract(doc, stanza.Equals(name), stanza.EndsWith(kind))
}

// BlockResult holds the blocks of one object kind in name order.
type BlockResult struct {
	Kind        types.ObjectKind
	Blocks      []types.ExtractedBlock
	Diagnostics types.Diagnostics
}

// Text returns the artifact body: every found block followed by a
// separator line.
func (r BlockResult) Text(separator string) []string {
	var out []string
	for _, b := range r.Blocks {
		if !b.Found() {
			continue
		}
		out = append(out, b.Lines...)
		out = append(out, separator)
	}
	return out
}

// Found returns the number of extracted blocks.
func (r BlockResult) Found() int {
	n := 0
	for _, b := range r.Blocks {
		if b.Found() {
			n++
		}
	}
	return n
}

// ExtractBlocks extracts the block of every name, in the given order.
// Names whose block cannot be found produce a miss.
func ExtractBlocks(ctx context.Context, doc *stanza.Document, names []string, kind types.ObjectKind, w io.Writer) (BlockResult, error) {
	log := logging.Component(ctx, "blocks")
	res := BlockResult{Kind: kind, Diagnostics: types.Diagnostics{}}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		b := types.ExtractedBlock{Name: name, Kind: kind, Lines: ExtractBlock(doc, name, kind)}
		res.Blocks = append(res.Blocks, b)
		if b.Found() {
			fmt.Fprintf(w, "block   %s (%d lines)\n", name, len(b.Lines))
			continue
		}
		res.Diagnostics.Add(types.Miss{
			Category: kind.Category(),
			Name:     name,
			Reason:   fmt.Sprintf("no %s block from %q to %q", kind, name, kind.Terminator()),
		})
		log.Warn().Str("name", name).Msg("block not found")
		fmt.Fprintf(w, "missed  %s\n", name)
	}

	return res, nil
}

// ExtractObjects runs ExtractBlocks for route-policies first, then
// policy-maps. The two kinds are never interleaved.
func ExtractObjects(ctx context.Context, doc *stanza.Document, routeNames, policyNames []string, w io.Writer) (route, policy BlockResult, err error) {
	route, err = ExtractBlocks(ctx, doc, routeNames, types.RoutePolicyObject, w)
	if err != nil {
		return route, policy, fmt.Errorf("extracting route-policies: %w", err)
	}
	policy, err = ExtractBlocks(ctx, doc, policyNames, types.PolicyObject, w)
	if err != nil {
		return route, policy, fmt.Errorf("extracting policy-maps: %w", err)
	}
	return route, policy, nil
}
