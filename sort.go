// Package pqsort implements a depth-bounded fork-join quicksort for in-memory slices.
//
// Each partition step copies the input into three new slices holding the elements
// less than, equal to and greater than a middle pivot, so the input is never modified
// and the result is not stable. The parallel sorter fans the two outer partitions out
// onto a fixed worker pool for the first floor(log2(workers)) recursion levels and
// recurses sequentially below that.
package pqsort

import "cmp"

// Partition splits seq around the element at its middle index.
// less holds every element ordered before the pivot, equal every element comparing
// equal to it and greater the rest. All three are newly allocated; seq is untouched.
// equal is empty only when seq is.
func Partition[E any](seq []E, compareFunc CompareGeneric[E]) (less, equal, greater []E) {
	if len(seq) == 0 {
		return nil, nil, nil
	}
	pivot := seq[len(seq)/2]
	for _, v := range seq {
		switch c := compareFunc(v, pivot); {
		case c < 0:
			less = append(less, v)
		case c > 0:
			greater = append(greater, v)
		default:
			equal = append(equal, v)
		}
	}
	return less, equal, greater
}

// SortFunc returns the elements of seq in ascending order according to compareFunc.
// Sequences of length zero or one are returned as-is. A panic raised by compareFunc
// propagates to the caller.
func SortFunc[E any](seq []E, compareFunc CompareGeneric[E]) []E {
	if len(seq) <= 1 {
		return seq
	}
	less, equal, greater := Partition(seq, compareFunc)
	return join(SortFunc(less, compareFunc), equal, SortFunc(greater, compareFunc))
}

// Sort returns the elements of seq in ascending order using cmp.Compare,
// so NaN values sort before every other float.
func Sort[T cmp.Ordered](seq []T) []T {
	return SortFunc(seq, cmp.Compare[T])
}

// join concatenates the three parts of a partition into a new slice
func join[E any](less, equal, greater []E) []E {
	out := make([]E, 0, len(less)+len(equal)+len(greater))
	out = append(out, less...)
	out = append(out, equal...)
	return append(out, greater...)
}
