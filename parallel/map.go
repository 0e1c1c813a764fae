// Package parallel runs a function over many items with bounded concurrency.
package parallel

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item using at most n goroutines and returns the
// successful results in input order. A failing item is logged and left out
// of the result; it does not stop the others. A nil logger discards the
// failures. Map returns ctx's error if ctx is done before all items finish.
func Map[T, R any](ctx context.Context, n int, items []T, fn func(ctx context.Context, item T) (R, error), logger *slog.Logger) ([]R, error) {
	if n <= 0 {
		n = 1
	}

	type result struct {
		value R
		ok    bool
	}
	results := make([]result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := fn(gctx, item)
			if err != nil {
				if logger != nil {
					logger.Error("parallel item failed", "index", i, "err", err)
				}
				return nil
			}
			results[i] = result{value: v, ok: true}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]R, 0, len(items))
	for _, r := range results {
		if r.ok {
			out = append(out, r.value)
		}
	}
	return out, nil
}
