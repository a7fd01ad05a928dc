// Package workerpool provides bounded concurrent processing of a slice of work items.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process calls process for every item using at most workerCount goroutines.
// The first error cancels the context handed to the remaining calls and is returned;
// items not started by then are skipped.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	if workerCount <= 0 {
		workerCount = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)
	for _, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return process(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
