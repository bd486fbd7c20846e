// Package util contains small shared helpers with no domain dependencies.
package util

import (
	"context"
	"sync"
	"sync/atomic"
)

// Result carries the outcome of one item processed by RunBounded. Exactly one
// of Value and Err is meaningful, and Result[i] always corresponds to items[i]
// regardless of completion order.
type Result[R any] struct {
	Value R
	Err   error
}

// RunBounded executes worker over every item with at most limit concurrent
// invocations. Workers claim indices from a shared cursor, so input order is
// FIFO but completion order is unspecified. One item's failure is captured in
// its own result slot and never aborts sibling workers.
//
// limit values below 1 are treated as 1. The cap is meant to stay well under
// a third-party quota, typically 3-10; never pass an unbounded value.
func RunBounded[T, R any](ctx context.Context, items []T, limit int, worker func(ctx context.Context, item T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	if limit < 1 {
		limit = 1
	}
	if limit > len(items) {
		limit = len(items)
	}

	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(limit)

	for w := 0; w < limit; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(cursor.Add(1)) - 1
				if idx >= len(items) {
					return
				}

				value, err := worker(ctx, items[idx])
				results[idx] = Result[R]{Value: value, Err: err}
			}
		}()
	}

	wg.Wait()

	return results
}

// RunBoundedAll is the all-or-nothing variant of RunBounded: it returns the
// index-aligned values when every item succeeds, or the first error
// encountered in input order with no partial results.
func RunBoundedAll[T, R any](ctx context.Context, items []T, limit int, worker func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := RunBounded(ctx, items, limit, worker)

	values := make([]R, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, res.Err
		}
		values[i] = res.Value
	}

	return values, nil
}
