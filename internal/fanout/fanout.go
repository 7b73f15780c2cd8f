// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fanout runs a batch of independent lookups either one after
// another or on a transient, bounded worker group. Both strategies return
// results indexed by input position, so callers merge them the same way
// regardless of execution order.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/essay-engine/pkg/types"
)

// DefaultWorkers bounds the concurrent group when workers <= 0.
const DefaultWorkers = 8

// Run applies fn to every item and returns the results in input order.
//
// With types.Sequential the calls run in order on the calling goroutine.
// With types.Concurrent at most workers calls run at once; the group is
// torn down before Run returns. fn owns failure handling: it reports "no
// data" by returning the zero value, so one failed item never affects the
// others. A cancelled context stops scheduling further items.
func Run[T, R any](ctx context.Context, strategy types.Strategy, workers int, items []T, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	if strategy != types.Concurrent || len(items) == 1 {
		for i, item := range items {
			if ctx.Err() != nil {
				break
			}
			results[i] = fn(ctx, item)
		}
		return results
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Each task writes only its own slot.
			results[i] = fn(gctx, item)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
