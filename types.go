package pqsort

// CompareGeneric is a function type for comparing two items of type E.
// It must implement a total order: reflexivity, antisymmetry, and transitivity.
// Returns a negative integer if a should be ordered before b, zero if they are equal,
// and a positive integer if a should be ordered after b in the final sorted output.
// This follows the same semantics as cmp.Compare and can be implemented using cmp.Compare[T] for ordered types.
// A comparison that cannot order its arguments should panic; the parallel sorter
// reports such panics as a ComparisonError.
type CompareGeneric[E any] func(a, b E) int

// Stats describes the scheduling of the most recent parallel sort.
type Stats struct {
	Workers   int   // size of the worker pool
	MaxDepth  int   // recursion levels allowed to fan out onto the pool
	Submitted int64 // units that ran on a pool worker
	Inline    int64 // units that ran in the submitting goroutine because the pool was full
	Peak      int64 // highest number of pool units running at once
}
