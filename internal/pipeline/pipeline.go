// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the extraction stages in order: load, select,
// resolve, extract stanzas and blocks, write. Stages hand each other
// explicit results; nothing is shared between them but the read-only
// document.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/overlay-extract/internal/extract"
	"github.com/pdiddy/overlay-extract/internal/logging"
	"github.com/pdiddy/overlay-extract/internal/match"
	"github.com/pdiddy/overlay-extract/internal/output"
	"github.com/pdiddy/overlay-extract/internal/resolve"
	"github.com/pdiddy/overlay-extract/internal/selector"
	"github.com/pdiddy/overlay-extract/internal/stanza"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

// Report holds every stage result of one run.
type Report struct {
	RunID    string
	Document string
	Spec     types.InterfaceSpec
	Entries  []types.Level1Entry
	Resolve  resolve.Result
	Stanzas  extract.StanzaResult
	Route    extract.BlockResult
	Policy   extract.BlockResult
	Overlay  output.Overlay
	Manifest output.Manifest
}

// Misses returns the total number of diagnostics.
func (r *Report) Misses() int {
	return r.Overlay.Diagnostics.Count()
}

// now is swapped in tests.
var now = time.Now

// Selection is the result of the first stage.
type Selection struct {
	Document *stanza.Document
	Spec     types.InterfaceSpec
	Entries  []types.Level1Entry
}

// Select validates specArg, loads the document and selects entries. The
// spec is validated before the document is read.
func Select(ctx context.Context, docPath, specArg string, cfg types.Config) (*Selection, error) {
	spec, err := selector.ParseSpec(specArg)
	if err != nil {
		return nil, err
	}
	doc, err := stanza.Load(docPath)
	if err != nil {
		return nil, err
	}
	entries, err := selector.Select(doc, spec, selector.Options{IncludeGlobal: cfg.Select.IncludeGlobal})
	if err != nil {
		return nil, err
	}

	log := logging.Component(ctx, "select")
	log.Info().
		Str("spec", spec.String()).
		Int("lines", doc.Len()).
		Int("entries", len(entries)).
		Msg("selected interfaces")
	return &Selection{Document: doc, Spec: spec, Entries: entries}, nil
}

// SelectLevel1 runs selection and writes the level-1 artifact to outDir,
// which must already exist.
func SelectLevel1(ctx context.Context, docPath, specArg string, cfg types.Config, outDir string) (*Selection, error) {
	if err := output.CheckDir(outDir); err != nil {
		return nil, err
	}
	sel, err := Select(ctx, docPath, specArg, cfg)
	if err != nil {
		return nil, err
	}
	if err := output.WriteLevel1(outDir, output.Level1{
		Document: docPath,
		Spec:     sel.Spec.String(),
		Entries:  sel.Entries,
	}); err != nil {
		return nil, err
	}
	return sel, nil
}

// Run executes the whole pipeline and writes every artifact to outDir,
// which must already exist.
func Run(ctx context.Context, docPath, specArg string, cfg types.Config, outDir string, w io.Writer) (*Report, error) {
	sel, err := SelectLevel1(ctx, docPath, specArg, cfg, outDir)
	if err != nil {
		return nil, err
	}
	return Extract(ctx, sel, cfg, outDir, w)
}

// RunFromLevel1 executes every stage after selection, reading the entries
// from the level-1 artifact in level1Dir and writing to outDir. docPath
// overrides the document recorded in the artifact when not empty. A
// missing artifact is fatal.
func RunFromLevel1(ctx context.Context, level1Dir, docPath string, cfg types.Config, outDir string, w io.Writer) (*Report, error) {
	l1, err := output.ReadLevel1(level1Dir)
	if err != nil {
		return nil, err
	}
	if err := output.CheckDir(outDir); err != nil {
		return nil, err
	}
	if docPath == "" {
		docPath = l1.Document
	}
	spec, err := selector.ParseSpec(l1.Spec)
	if err != nil {
		return nil, fmt.Errorf("level-1 artifact: %w", err)
	}
	doc, err := stanza.Load(docPath)
	if err != nil {
		return nil, err
	}
	return Extract(ctx, &Selection{Document: doc, Spec: spec, Entries: l1.Entries}, cfg, outDir, w)
}

// Extract runs resolution and both extractors on sel and writes the
// artifacts. Progress lines go to w.
func Extract(ctx context.Context, sel *Selection, cfg types.Config, outDir string, w io.Writer) (*Report, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: no interface selection", output.ErrMissingArtifact)
	}
	m, err := match.New(cfg.Match.Mode)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:    uuid.New().String(),
		Document: sel.Document.Source(),
		Spec:     sel.Spec,
		Entries:  sel.Entries,
	}
	log := logging.FromContext(ctx).With().Str("run_id", rep.RunID).Logger()
	ctx = logging.WithContext(ctx, log)

	fmt.Fprintf(w, "selected %d interface(s) for %s\n", len(sel.Entries), sel.Spec)

	rep.Resolve, err = resolve.Resolve(ctx, sel.Document, sel.Entries, resolve.Options{
		RoutePolicyPrefix: cfg.Resolve.RoutePolicyPrefix,
		SuffixLength:      cfg.Resolve.SuffixLength,
		Matcher:           m,
		Workers:           cfg.Pipeline.Workers,
	}, w)
	if err != nil {
		return nil, err
	}

	rep.Stanzas, err = extract.ExtractStanzas(ctx, sel.Document, sel.Entries, extract.Options{
		Matcher: m,
		Workers: cfg.Pipeline.Workers,
	}, w)
	if err != nil {
		return nil, err
	}

	rep.Route, rep.Policy, err = extract.ExtractObjects(ctx, sel.Document, rep.Resolve.RouteNames, rep.Resolve.PolicyNames, w)
	if err != nil {
		return nil, err
	}

	rep.Overlay = output.Assemble(rep.Stanzas, rep.Route, rep.Policy, rep.Resolve.Diagnostics, cfg.Output.Separator)
	rep.Manifest, err = output.Write(outDir, rep.Overlay, output.Manifest{
		RunID:     rep.RunID,
		Created:   now().UTC(),
		Document:  rep.Document,
		Spec:      sel.Spec.String(),
		MatchMode: cfg.Match.Mode,
		Entries:   len(sel.Entries),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("entries", len(sel.Entries)).
		Int("policy_maps", rep.Policy.Found()).
		Int("route_policies", rep.Route.Found()).
		Int("misses", rep.Misses()).
		Msg("run complete")
	fmt.Fprintf(w, "\nwrote %d artifact(s) to %s, %d unmatched\n", len(rep.Manifest.Artifacts), outDir, rep.Misses())
	return rep, nil
}
