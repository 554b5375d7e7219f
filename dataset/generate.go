package dataset

import (
	"math/rand"

	"github.com/lanrat/pqsort"
)

const (
	uniqueRatio = 0.6 // share of unique values in a Duplicates dataset
	sortedRatio = 0.4 // share of values in sorted runs in a PartSorted dataset
	sortedParts = 5   // number of sorted runs in a PartSorted dataset
)

// Generator produces datasets from a seeded source, so equal seeds give equal data.
// A Generator is not safe for concurrent use.
type Generator struct {
	r *rand.Rand
}

// NewGenerator creates a Generator seeded with seed
func NewGenerator(seed int64) *Generator {
	return &Generator{r: rand.New(rand.NewSource(seed))}
}

// Generate returns n values for the given table
func (g *Generator) Generate(t Table, n int) []float64 {
	switch t.Kind {
	case Duplicates:
		return g.Duplicates(t.Type, n)
	case PartSorted:
		return g.PartSorted(t.Type, n)
	default:
		return g.Random(t.Type, n)
	}
}

// value draws one value in [0, Scope]
func (g *Generator) value(typ Type) float64 {
	if typ == Int {
		return float64(g.r.Intn(Scope + 1))
	}
	return g.r.Float64() * Scope
}

// Random returns n uniformly distributed values
func (g *Generator) Random(typ Type, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.value(typ)
	}
	return out
}

// Duplicates returns n values drawn with replacement from int(0.6*n) unique values
func (g *Generator) Duplicates(typ Type, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	unique := g.Random(typ, max(1, int(float64(n)*uniqueRatio)))
	out := make([]float64, n)
	for i := range out {
		out[i] = unique[g.r.Intn(len(unique))]
	}
	return out
}

// PartSorted returns n values laid out as r0 s0 r1 s1 ... r4 s4 r5, where the s runs
// are consecutive pieces of one sorted list holding 40% of the values and the r runs
// split the remaining random values. The last run of each kind takes the remainder.
func (g *Generator) PartSorted(typ Type, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	sortedCount := int(float64(n) * sortedRatio)
	randomCount := n - sortedCount

	sorted := pqsort.Sort(g.Random(typ, sortedCount))
	random := g.Random(typ, randomCount)

	sortedChunks := split(sorted, sortedParts)
	randomChunks := split(random, sortedParts+1)

	out := make([]float64, 0, n)
	for i := 0; i < sortedParts; i++ {
		out = append(out, randomChunks[i]...)
		out = append(out, sortedChunks[i]...)
	}
	return append(out, randomChunks[sortedParts]...)
}

// split cuts values into parts runs of len(values)/parts, the last run taking the rest
func split(values []float64, parts int) [][]float64 {
	size := len(values) / parts
	chunks := make([][]float64, parts)
	for i := 0; i < parts-1; i++ {
		chunks[i] = values[i*size : (i+1)*size]
	}
	chunks[parts-1] = values[(parts-1)*size:]
	return chunks
}
