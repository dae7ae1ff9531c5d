package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel2 runs two functions concurrently and returns both results or
// the first error. The shared context is canceled when either fails.
//
// Example:
//
//	posts, projects, err := Parallel2(ctx, catalog.Posts, catalog.Projects)
func Parallel2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (result1 T1, result2 T2, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var fnErr error

		result1, fnErr = fn1(ctx)

		return fnErr
	})

	g.Go(func() error {
		var fnErr error

		result2, fnErr = fn2(ctx)

		return fnErr
	})

	if err = g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
		)

		return zero1, zero2, fmt.Errorf("parallel execution failed: %w", err)
	}

	return result1, result2, nil
}
