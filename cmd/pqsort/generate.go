package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lanrat/pqsort/dataset"
)

var generateCmd = &cobra.Command{
	Use:   "generate [table...]",
	Short: "Generate datasets at the standard sizes",
	Long: fmt.Sprintf(`Generate datasets and append them to the store.

Each table is filled at every standard size %v. With no arguments all six
tables are generated. Table names have the form <kind>_<type>, for example
random_int, duplicates_float or part_sorted_int.`, dataset.StandardSizes),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tables := dataset.Tables()
	if len(args) > 0 {
		tables = tables[:0]
		for _, name := range args {
			tbl, err := dataset.ParseTable(name)
			if err != nil {
				return err
			}
			tables = append(tables, tbl)
		}
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	g := dataset.NewGenerator(cfg.Seed)
	green := color.New(color.FgGreen).SprintFunc()
	for _, tbl := range tables {
		for _, size := range dataset.StandardSizes {
			log.Printf("[generate] %s: %d values", tbl, size)
			if err := st.Put(cmd.Context(), tbl, size, g.Generate(tbl, size)); err != nil {
				return fmt.Errorf("generate %s: %w", tbl, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), tbl)
	}
	return nil
}
