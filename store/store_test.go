package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/lanrat/pqsort/dataset"
)

// openers builds each backend on a fresh file
var openers = map[string]func(t *testing.T) Store{
	"sqlite": func(t *testing.T) Store {
		t.Helper()
		s, err := Open(filepath.Join(t.TempDir(), "a", "dane.db"))
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		if _, ok := s.(*SQLite); !ok {
			t.Fatalf("Open returned %T for .db", s)
		}
		return s
	},
	"bolt": func(t *testing.T) Store {
		t.Helper()
		s, err := Open(filepath.Join(t.TempDir(), "a", "dane.bolt"))
		if err != nil {
			t.Fatalf("open bolt: %v", err)
		}
		if _, ok := s.(*Bolt); !ok {
			t.Fatalf("Open returned %T for .bolt", s)
		}
		return s
	},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, open := range openers {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() {
				s.Close()
			})
			fn(t, s)
		})
	}
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	forEachBackend(t, func(t *testing.T, s Store) {
		g := dataset.NewGenerator(1)
		for _, tbl := range dataset.Tables() {
			values := g.Generate(tbl, 1000)
			if err := s.Put(ctx, tbl, 1000, values); err != nil {
				t.Fatalf("Put %s: %v", tbl, err)
			}
			got, err := s.Get(ctx, tbl, 1000)
			if err != nil {
				t.Fatalf("Get %s: %v", tbl, err)
			}
			if !slices.Equal(got, values) {
				t.Fatalf("%s: stored values differ", tbl)
			}
		}
	})
}

func TestPutAppends(t *testing.T) {
	ctx := context.Background()
	tbl := dataset.Table{Kind: dataset.Random, Type: dataset.Float}
	forEachBackend(t, func(t *testing.T, s Store) {
		if err := s.Put(ctx, tbl, 1000, []float64{1.5, 2.5}); err != nil {
			t.Fatal(err)
		}
		if err := s.Put(ctx, tbl, 1000, []float64{0.5}); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx, tbl, 1000)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(got, []float64{1.5, 2.5, 0.5}) {
			t.Errorf("got %v", got)
		}
	})
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	tbl := dataset.Table{Kind: dataset.Duplicates, Type: dataset.Int}
	forEachBackend(t, func(t *testing.T, s Store) {
		if _, err := s.Get(ctx, tbl, 10000); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPutInvalidSetSize(t *testing.T) {
	ctx := context.Background()
	tbl := dataset.Table{Kind: dataset.Random, Type: dataset.Int}
	forEachBackend(t, func(t *testing.T, s Store) {
		if err := s.Put(ctx, tbl, 500, []float64{1}); !errors.Is(err, ErrInvalidSetSize) {
			t.Errorf("expected ErrInvalidSetSize, got %v", err)
		}
	})
}

func TestRecordRuns(t *testing.T) {
	ctx := context.Background()
	tbl := dataset.Table{Kind: dataset.PartSorted, Type: dataset.Float}
	forEachBackend(t, func(t *testing.T, s Store) {
		first := NewRun(tbl, 1000, 4, 2)
		first.Sequential = 30 * time.Millisecond
		first.Parallel = 10 * time.Millisecond
		second := NewRun(tbl, 10000, 2, 1)
		second.CreatedAt = first.CreatedAt.Add(time.Second)

		for _, run := range []Run{second, first} {
			if err := s.RecordRun(ctx, run); err != nil {
				t.Fatalf("RecordRun: %v", err)
			}
		}

		runs, err := s.Runs(ctx)
		if err != nil {
			t.Fatalf("Runs: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("got %d runs, want 2", len(runs))
		}
		if runs[0].ID != first.ID || runs[1].ID != second.ID {
			t.Errorf("runs not ordered oldest first: %v, %v", runs[0].ID, runs[1].ID)
		}
		got := runs[0]
		if got.Table != "part_sorted_float" || got.SetSize != 1000 || got.Workers != 4 || got.MaxDepth != 2 {
			t.Errorf("unexpected run %+v", got)
		}
		if got.Sequential != first.Sequential || got.Parallel != first.Parallel {
			t.Errorf("durations not preserved: %+v", got)
		}
		if !got.CreatedAt.Equal(first.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, first.CreatedAt)
		}
		if got.Speedup() != 3 {
			t.Errorf("Speedup() = %v, want 3", got.Speedup())
		}
	})
}

func TestSQLiteIntColumnsHoldIntegers(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	tbl := dataset.Table{Kind: dataset.Random, Type: dataset.Int}
	if err := s.Put(ctx, tbl, 1000, []float64{3, 1, 2}); err != nil {
		t.Fatal(err)
	}
	var typ string
	if err := s.conn.QueryRow("SELECT typeof(value) FROM random_int LIMIT 1").Scan(&typ); err != nil {
		t.Fatal(err)
	}
	if typ != "integer" {
		t.Errorf("typeof(value) = %q, want integer", typ)
	}
}
