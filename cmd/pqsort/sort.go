package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lanrat/pqsort"
	"github.com/lanrat/pqsort/dataset"
	"github.com/lanrat/pqsort/store"
)

// errMismatch is returned when the parallel and sequential results differ
var errMismatch = errors.New("parallel result differs from sequential result")

var (
	sortTable   string
	sortSize    int
	sortWorkers int
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Time the sequential and parallel quicksort on a stored dataset",
	Long: `Load one dataset from the store, sort it sequentially and in parallel,
check that both results match and record the timings.

The worker count is clamped to the number of CPUs; 0 uses every CPU.`,
	Args: cobra.NoArgs,
	RunE: runSort,
}

func init() {
	sortCmd.Flags().StringVarP(&sortTable, "table", "t", "random_int", "Dataset table")
	sortCmd.Flags().IntVarP(&sortSize, "size", "n", 100000, "Set size")
	sortCmd.Flags().IntVarP(&sortWorkers, "workers", "w", 0, "Worker pool size (default from config, 0 = all CPUs)")
}

func runSort(cmd *cobra.Command, args []string) error {
	tbl, err := dataset.ParseTable(sortTable)
	if err != nil {
		return err
	}
	requested := cfg.Workers
	if cmd.Flags().Changed("workers") {
		requested = sortWorkers
	}
	workers, warning := clampWorkers(requested, runtime.NumCPU())
	if warning != "" {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), warning)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, distinct, err := benchmark(cmd.Context(), st, tbl, sortSize, workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s, %d values (%d distinct)\n", bold("dataset:"), tbl, run.SetSize, distinct)
	fmt.Fprintf(out, "%s %d (max depth %d)\n", bold("workers:"), run.Workers, run.MaxDepth)
	fmt.Fprintf(out, "sequential: %.6f s\n", run.Sequential.Seconds())
	fmt.Fprintf(out, "parallel:   %.6f s\n", run.Parallel.Seconds())
	fmt.Fprintf(out, "speedup:    %.2fx\n", run.Speedup())
	color.New(color.FgGreen).Fprintln(out, "sort results match")
	return nil
}

// clampWorkers bounds a requested pool size to [1, available]. A request of 0 means
// available. The returned warning is empty when the request was used unchanged.
func clampWorkers(requested, available int) (int, string) {
	switch {
	case requested == 0:
		return available, ""
	case requested > available:
		return available, fmt.Sprintf("requested %d workers but only %d CPUs are available, using %d", requested, available, available)
	case requested < 1:
		return 1, fmt.Sprintf("minimum worker count is 1, using 1 instead of %d", requested)
	}
	return requested, ""
}

// benchmark loads a dataset, times both sorts on it, checks they agree and records the run.
// It also returns the number of distinct values in the dataset.
func benchmark(ctx context.Context, st store.Store, tbl dataset.Table, size, workers int) (store.Run, int, error) {
	data, err := st.Get(ctx, tbl, size)
	if err != nil {
		return store.Run{}, 0, fmt.Errorf("load %s: %w", tbl, err)
	}
	log.Printf("[sort] loaded %d values from %s", len(data), tbl)

	run := store.NewRun(tbl, len(data), workers, pqsort.MaxDepth(workers))

	start := time.Now()
	sequential := pqsort.Sort(data)
	run.Sequential = time.Since(start)
	log.Printf("[sort] sequential sort took %s", run.Sequential)

	start = time.Now()
	parallel, err := pqsort.ParallelSort(data, workers)
	run.Parallel = time.Since(start)
	if err != nil {
		return store.Run{}, 0, fmt.Errorf("parallel sort: %w", err)
	}
	log.Printf("[sort] parallel sort with %d workers took %s", workers, run.Parallel)

	if !slices.Equal(sequential, parallel) {
		return store.Run{}, 0, errMismatch
	}
	if err := st.RecordRun(ctx, run); err != nil {
		return store.Run{}, 0, err
	}
	return run, len(pqsort.Uniq(sequential)), nil
}
