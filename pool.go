package pqsort

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// pool hands out a fixed number of worker slots.
// A unit that cannot get a slot runs in the goroutine that submitted it,
// so a saturated pool serialises work instead of blocking.
type pool struct {
	size      int
	slots     *semaphore.Weighted
	closeOnce sync.Once

	running   atomic.Int64
	peak      atomic.Int64
	submitted atomic.Int64
	inline    atomic.Int64
}

// newPool creates a pool with size worker slots
func newPool(size int) *pool {
	return &pool{
		size:  size,
		slots: semaphore.NewWeighted(int64(size)),
	}
}

// submit runs fn on a pool worker if a slot is free, otherwise in the calling goroutine.
// Either way its error is reported through g, so g.Wait() joins it.
func (p *pool) submit(g *errgroup.Group, fn func() error) {
	if !p.slots.TryAcquire(1) {
		p.inline.Add(1)
		if err := runUnit(fn); err != nil {
			g.Go(func() error { return err })
		}
		return
	}
	p.submitted.Add(1)
	g.Go(func() error {
		defer p.slots.Release(1)
		p.enter()
		defer p.running.Add(-1)
		return runUnit(fn)
	})
}

// enter records a running unit and updates the peak
func (p *pool) enter() {
	n := p.running.Add(1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}

// close waits for every worker slot to be released. It is safe to call more than once.
func (p *pool) close() {
	p.closeOnce.Do(func() {
		// Acquire with a background context only fails if the weight exceeds the size
		_ = p.slots.Acquire(context.Background(), int64(p.size))
		p.slots.Release(int64(p.size))
	})
}

// stats snapshots the pool counters
func (p *pool) stats(maxDepth int) Stats {
	return Stats{
		Workers:   p.size,
		MaxDepth:  maxDepth,
		Submitted: p.submitted.Load(),
		Inline:    p.inline.Load(),
		Peak:      p.peak.Load(),
	}
}

// runUnit calls fn, converting a panic from the comparison function into a ComparisonError
func runUnit(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewComparisonError(r, "sort unit")
		}
	}()
	return fn()
}
