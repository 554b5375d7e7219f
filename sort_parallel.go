package pqsort

import (
	"cmp"
	"math/bits"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Sorter sorts slices in parallel on a worker pool sized by its Config.
// A Sorter may be used by several goroutines at once; every call to Sort
// creates and closes its own pool.
type Sorter[E any] struct {
	config      Config
	compareFunc CompareGeneric[E]
	maxDepth    int

	statsMu   sync.Mutex
	lastStats Stats
}

// Generic creates a parallel sorter for any type E ordered by compareFunc.
// A nil config uses DefaultConfig. It returns a ConfigError, matching
// ErrInvalidConfiguration, if config.NumWorkers is below one or compareFunc is nil.
func Generic[E any](compareFunc CompareGeneric[E], config *Config) (*Sorter[E], error) {
	config = mergeConfig(config)
	if err := config.validate(); err != nil {
		return nil, err
	}
	if compareFunc == nil {
		return nil, NewConfigError("compareFunc", nil, "must not be nil")
	}
	return &Sorter[E]{
		config:      *config,
		compareFunc: compareFunc,
		maxDepth:    MaxDepth(config.NumWorkers),
	}, nil
}

// Ordered creates a parallel sorter for cmp.Ordered types using cmp.Compare.
func Ordered[T cmp.Ordered](config *Config) (*Sorter[T], error) {
	return Generic(cmp.Compare[T], config)
}

// MaxDepth returns the number of recursion levels that may fan out onto a pool
// of the given size: floor(log2(workers)). Counts below one yield zero.
func MaxDepth(workers int) int {
	if workers < 1 {
		return 0
	}
	return bits.Len(uint(workers)) - 1
}

// MaxDepth returns the depth budget derived from the sorter's worker count.
func (s *Sorter[E]) MaxDepth() int {
	return s.maxDepth
}

// Stats returns the scheduling counters of the most recently completed Sort.
func (s *Sorter[E]) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.lastStats
}

// Sort returns the elements of seq in ascending order. The result is identical to
// SortFunc(seq, compareFunc) whatever the pool size or scheduling. seq is not modified.
//
// If compareFunc panics in any unit, Sort waits for the sibling units to finish
// and returns a ComparisonError with no partial result.
func (s *Sorter[E]) Sort(seq []E) ([]E, error) {
	p := newPool(s.config.NumWorkers)
	defer func() {
		p.close()
		s.statsMu.Lock()
		s.lastStats = p.stats(s.maxDepth)
		s.statsMu.Unlock()
	}()

	if len(seq) <= 1 {
		return seq, nil
	}

	var sorted []E
	err := runUnit(func() (err error) {
		sorted, err = s.dispatch(p, seq, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sorted, nil
}

// dispatch sorts seq at the given recursion depth. While depth is below the budget
// the two outer partitions are submitted to the pool and joined before the parts are
// concatenated in less, equal, greater order.
func (s *Sorter[E]) dispatch(p *pool, seq []E, depth int) ([]E, error) {
	if len(seq) <= 1 {
		return seq, nil
	}
	if depth >= s.maxDepth || len(seq) < s.config.MinParallelSize {
		return SortFunc(seq, s.compareFunc), nil
	}

	less, equal, greater := Partition(seq, s.compareFunc)

	var g errgroup.Group
	var left, right []E
	p.submit(&g, func() (err error) {
		left, err = s.dispatch(p, less, depth+1)
		return err
	})
	p.submit(&g, func() (err error) {
		right, err = s.dispatch(p, greater, depth+1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return join(left, equal, right), nil
}

// ParallelSortFunc sorts seq with compareFunc on a pool of workers goroutines.
// workers below one returns a ConfigError matching ErrInvalidConfiguration.
func ParallelSortFunc[E any](seq []E, workers int, compareFunc CompareGeneric[E]) ([]E, error) {
	s, err := Generic(compareFunc, &Config{NumWorkers: workers})
	if err != nil {
		return nil, err
	}
	return s.Sort(seq)
}

// ParallelSort sorts seq with cmp.Compare on a pool of workers goroutines.
func ParallelSort[T cmp.Ordered](seq []T, workers int) ([]T, error) {
	return ParallelSortFunc(seq, workers, cmp.Compare[T])
}
