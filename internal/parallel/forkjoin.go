package parallel

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Task is one member of a fork-join generation. It receives its index in
// [0, n) and returns its result.
type Task[T any] func(ctx context.Context, index int) (T, error)

// ForkJoin starts n copies of task at once, one goroutine each, and waits for
// all of them. Results are returned in index order.
//
// Tasks are never cancelled: every task runs to completion even after a
// sibling failed. If any task returns an error or panics, the first such
// failure is returned and the results are discarded, since a partial
// generation cannot be trusted.
func ForkJoin[T any](ctx context.Context, n int, task Task[T]) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("parallel: negative task count %d", n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]T, n)
	// A Group without a context cancels nothing; Wait reports the first
	// non-nil error once every task has returned.
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Index: i, Value: r, Stack: debug.Stack()}
				}
			}()
			res, err := task(ctx, i)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
