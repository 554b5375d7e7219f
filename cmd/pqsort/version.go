package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version returns the module version the binary was built from
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pqsort version %s\n", Version())
	},
}
