package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lanrat/pqsort/dataset"
	"github.com/lanrat/pqsort/store"
)

func TestClampWorkers(t *testing.T) {
	tests := []struct {
		requested, available int
		want                 int
		warns                bool
	}{
		{0, 8, 8, false},
		{1, 8, 1, false},
		{4, 8, 4, false},
		{8, 8, 8, false},
		{16, 8, 8, true},
		{-3, 8, 1, true},
	}
	for _, tt := range tests {
		got, warning := clampWorkers(tt.requested, tt.available)
		if got != tt.want || (warning != "") != tt.warns {
			t.Errorf("clampWorkers(%d, %d) = %d, %q", tt.requested, tt.available, got, warning)
		}
	}
}

func TestBenchmark(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "bench.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	tbl := dataset.Table{Kind: dataset.Duplicates, Type: dataset.Int}
	if err := st.Put(ctx, tbl, 1000, dataset.NewGenerator(1).Generate(tbl, 1000)); err != nil {
		t.Fatal(err)
	}

	run, distinct, err := benchmark(ctx, st, tbl, 1000, 4)
	if err != nil {
		t.Fatalf("benchmark: %v", err)
	}
	if run.SetSize != 1000 || run.Workers != 4 || run.MaxDepth != 2 {
		t.Errorf("unexpected run %+v", run)
	}
	if distinct < 1 || distinct > 600 {
		t.Errorf("distinct = %d, want 1..600", distinct)
	}

	runs, err := st.Runs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("run not recorded: %+v", runs)
	}
}

func TestBenchmarkMissingDataset(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "bench.bolt"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	tbl := dataset.Table{Kind: dataset.Random, Type: dataset.Float}
	if _, _, err := benchmark(context.Background(), st, tbl, 1000, 2); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
