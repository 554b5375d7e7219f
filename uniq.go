package pqsort

// Uniq returns sorted with consecutive duplicates removed.
// It assumes sorted is in order, so equal values are adjacent, and keeps the first
// occurrence of each value. The input is not modified.
func Uniq[T comparable](sorted []T) []T {
	out := make([]T, 0, len(sorted))
	for i, d := range sorted {
		if i > 0 && d == sorted[i-1] {
			continue
		}
		out = append(out, d)
	}
	return out
}
