package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelMap applies mapFn to every element with at most workers goroutines,
// preserving input order in the result. A non-positive workers value means
// GOMAXPROCS. The first error cancels ctx for the remaining calls and is
// returned; the partial result is discarded.
func ParallelMap[T any, R any](ctx context.Context, in []T, workers int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]R, len(in))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, val := range in {
		if gctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := mapFn(gctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Batch splits in into chunks of at most size elements.
func Batch[T any](in []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	batches := make([][]T, 0, (len(in)+size-1)/size)
	for idx := 0; idx < len(in); idx += size {
		end := min(idx+size, len(in))
		batches = append(batches, in[idx:end])
	}
	return batches
}
