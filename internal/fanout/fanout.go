// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fanout runs independent per-entry scans with bounded
// parallelism. Callers write each result into the slot of its index, so
// output order never depends on completion order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Each calls fn for every index in [0, n) with at most workers calls in
// flight. It stops scheduling new calls once ctx is done or fn fails, and
// returns the first error.
func Each(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
