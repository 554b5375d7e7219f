package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded benchmark runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.Runs(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTABLE\tSIZE\tWORKERS\tSEQUENTIAL\tPARALLEL\tSPEEDUP")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%.2fx\n",
				r.ID.String()[:8], r.Table, r.SetSize, r.Workers, r.Sequential, r.Parallel, r.Speedup())
		}
		return w.Flush()
	},
}
