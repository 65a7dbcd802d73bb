// Package pipeline runs one restoration task per interior token,
// concurrently, the way the original engine dispatched one async task per
// triplet position advanced by its driving loop. Each task receives its
// token index; the caller is responsible for capturing that position's
// (prev, mid, next) context by value before handing it to Run, since the
// driver's own rolling variables keep moving after a task is dispatched
// (spec.md §5, §9) — a task that closed over the driver's variables
// instead of a snapshot would see values from iterations that happened
// after its own.
//
// Concurrency is bounded with golang.org/x/sync/errgroup.SetLimit rather
// than left unbounded: spec.md §5 states correctness does not depend on
// the bound, only throughput does, so a generous default is fine.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task restores the token at index and reports whether the chosen
// candidate was a same-word fallback with no statistical support (i.e.
// "potentially foreign").
type Task func(ctx context.Context, index int) (restored string, foreign bool, err error)

// Scheduler dispatches Tasks over a fixed number of positions with bounded
// concurrency.
type Scheduler struct {
	limit int
}

// NewScheduler builds a Scheduler that runs at most limit tasks
// concurrently. limit <= 0 means unbounded: Run then never calls
// errgroup.SetLimit (which would treat 0 as "no goroutines at all").
func NewScheduler(limit int) *Scheduler {
	return &Scheduler{limit: limit}
}

// Run dispatches one goroutine per position in [0, n), collecting each
// task's restored word and foreign flag into same-length result slices.
// Each goroutine writes only to its own index, so no lock is needed around
// the result slices themselves — only state genuinely shared across tasks
// (pkg/restore's foreign-word set, pkg/conflict's prompt) needs one.
func (s *Scheduler) Run(ctx context.Context, n int, task Task) (restored []string, foreign []bool, err error) {
	restored = make([]string, n)
	foreign = make([]bool, n)

	g, gctx := errgroup.WithContext(ctx)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for i := 0; i < n; i++ {
		index := i
		g.Go(func() error {
			out, isForeign, taskErr := task(gctx, index)
			if taskErr != nil {
				return taskErr
			}
			restored[index] = out
			foreign[index] = isForeign
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		return nil, nil, waitErr
	}
	return restored, foreign, nil
}
