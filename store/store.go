// Package store persists benchmark datasets and run results.
// Datasets are kept in the layout the harness has always used: one table per
// dataset, one row per value, tagged with the set size it belongs to.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lanrat/pqsort/dataset"
)

var (
	// ErrNotFound is returned when no values are stored for a table and set size
	ErrNotFound = errors.New("dataset not found")
	// ErrInvalidSetSize is returned when storing a set size outside dataset.StandardSizes
	ErrInvalidSetSize = errors.New("invalid set size")
)

// Store loads and saves datasets and records benchmark runs
type Store interface {
	// Put appends values to the dataset for tbl and setSize
	Put(ctx context.Context, tbl dataset.Table, setSize int, values []float64) error
	// Get returns the values of the dataset in insertion order
	Get(ctx context.Context, tbl dataset.Table, setSize int) ([]float64, error)
	// RecordRun saves the result of one benchmark run
	RecordRun(ctx context.Context, run Run) error
	// Runs returns every recorded run, oldest first
	Runs(ctx context.Context) ([]Run, error)
	Close() error
}

// Run is the outcome of timing the sequential and parallel sorts on one dataset
type Run struct {
	ID         uuid.UUID     `json:"id"`
	Table      string        `json:"table"`
	SetSize    int           `json:"set_size"`
	Workers    int           `json:"workers"`
	MaxDepth   int           `json:"max_depth"`
	Sequential time.Duration `json:"sequential"`
	Parallel   time.Duration `json:"parallel"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewRun creates a Run with a fresh id and the current time
func NewRun(tbl dataset.Table, setSize, workers, maxDepth int) Run {
	return Run{
		ID:        uuid.New(),
		Table:     tbl.Name(),
		SetSize:   setSize,
		Workers:   workers,
		MaxDepth:  maxDepth,
		CreatedAt: time.Now().UTC(),
	}
}

// Speedup returns the sequential time divided by the parallel time
func (r Run) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// Open opens the store at path, choosing the backend by extension:
// ".bolt" opens a bbolt file, anything else an SQLite database.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bolt":
		return OpenBolt(path)
	default:
		return OpenSQLite(path)
	}
}

// checkSetSize rejects set sizes the schema does not accept
func checkSetSize(setSize int) error {
	if !dataset.IsStandardSize(setSize) {
		return fmt.Errorf("%w %d, allowed: %v", ErrInvalidSetSize, setSize, dataset.StandardSizes)
	}
	return nil
}
