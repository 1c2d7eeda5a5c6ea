// Package pdpar provides a deterministic fork/join helper for the placer
// engine's per-module and per-bin loops. Unlike a work-stealing pool, each
// worker owns a fixed, contiguous index range, and partial results are
// always merged back in worker order — so results never depend on
// goroutine scheduling (grounded on the errgroup-based worker pool in
// junjiewwang-perf-analysis's hprof parallel analyzer, but with fixed
// ranges instead of a shared task channel).
package pdpar

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Range is a worker's contiguous slice of [0, n).
type Range struct {
	Start, End int // [Start, End)
}

// Split partitions [0, n) into at most workers contiguous, non-empty
// ranges in ascending order. If workers <= 0 it defaults to
// runtime.NumCPU(). Never returns more ranges than n.
func Split(n, workers int) []Range {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers <= 0 {
		return nil
	}

	ranges := make([]Range, 0, workers)
	base := n / workers
	rem := n % workers
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		ranges = append(ranges, Range{Start: start, End: start + size})
		start += size
	}
	return ranges
}

// ForEachRange runs fn once per Range returned by Split(n, workers),
// concurrently, and returns the first error encountered (errgroup
// semantics: all workers still run to completion). fn must only touch the
// [r.Start, r.End) slice of shared state it owns — callers merge results
// themselves, in range order, once ForEachRange returns.
func ForEachRange(ctx context.Context, n, workers int, fn func(ctx context.Context, r Range) error) error {
	ranges := Split(n, workers)
	if len(ranges) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range ranges {
		r := r
		g.Go(func() error {
			return fn(gctx, r)
		})
	}
	return g.Wait()
}

// Reduce runs fn once per Range (as ForEachRange) producing one partial
// result per range, then folds the partials together serially in range
// order via combine — the fixed-order merge spec's determinism rule
// requires for anything that isn't simply commutative (e.g. floating
// point sums, where worker order otherwise changes rounding).
func Reduce[T any](ctx context.Context, n, workers int, zero T, fn func(ctx context.Context, r Range) (T, error), combine func(acc, partial T) T) (T, error) {
	ranges := Split(n, workers)
	if len(ranges) == 0 {
		return zero, nil
	}

	partials := make([]T, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			v, err := fn(gctx, r)
			if err != nil {
				return err
			}
			partials[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, err
	}

	acc := zero
	for _, p := range partials {
		acc = combine(acc, p)
	}
	return acc, nil
}
