// Package dataset generates the benchmark inputs for the quicksort harness:
// uniformly random values, duplicate-heavy values and partially sorted values,
// each as integers or floats.
package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTable is returned for a table name outside the six known datasets
var ErrUnknownTable = errors.New("unknown dataset table")

// Scope is the upper bound of generated values
const Scope = 1_000_000

// StandardSizes are the set sizes the harness generates and stores
var StandardSizes = []int{1000, 10000, 100000}

// Kind is the distribution of a dataset
type Kind string

// Type is the element type of a dataset
type Type string

const (
	// Random values are drawn uniformly from [0, Scope]
	Random Kind = "random"
	// Duplicates draws every value from a pool of 60% as many unique values
	Duplicates Kind = "duplicates"
	// PartSorted interleaves sorted runs holding 40% of the values with random runs
	PartSorted Kind = "part_sorted"

	Int   Type = "int"
	Float Type = "float"
)

// Table identifies one dataset, stored under the name <kind>_<type>
type Table struct {
	Kind Kind
	Type Type
}

// Name returns the storage name of the table, for example "duplicates_float"
func (t Table) Name() string {
	return string(t.Kind) + "_" + string(t.Type)
}

func (t Table) String() string {
	return t.Name()
}

// Tables returns all six datasets
func Tables() []Table {
	var tables []Table
	for _, k := range []Kind{Random, Duplicates, PartSorted} {
		for _, typ := range []Type{Int, Float} {
			tables = append(tables, Table{Kind: k, Type: typ})
		}
	}
	return tables
}

// ParseTable parses a storage name such as "random_int"
func ParseTable(name string) (Table, error) {
	for _, t := range Tables() {
		if t.Name() == name {
			return t, nil
		}
	}
	names := make([]string, 0, 6)
	for _, t := range Tables() {
		names = append(names, t.Name())
	}
	return Table{}, fmt.Errorf("%w %q, allowed: %s", ErrUnknownTable, name, strings.Join(names, ", "))
}

// IsStandardSize reports whether n is one of StandardSizes
func IsStandardSize(n int) bool {
	for _, s := range StandardSizes {
		if s == n {
			return true
		}
	}
	return false
}
