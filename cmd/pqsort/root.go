package main

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanrat/pqsort/internal/config"
	"github.com/lanrat/pqsort/store"
)

var (
	cfgFile string
	dbPath  string
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pqsort",
	Short: "Parallel quicksort benchmark harness",
	Long: `pqsort stores benchmark datasets (random, duplicate-heavy and partially
sorted integers and floats) and compares the sequential quicksort with the
depth-bounded parallel quicksort on them.

Examples:
  pqsort generate                         # create all six datasets
  pqsort sort --table random_int --size 100000 --workers 4
  pqsort runs                             # list recorded runs`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFromPath(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = verbose
		}
		log.SetFlags(log.Ltime)
		if !cfg.Verbose {
			log.SetOutput(io.Discard)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens the configured dataset store
func openStore() (store.Store, error) {
	log.Printf("[pqsort] opening store %s", cfg.DBPath)
	return store.Open(cfg.DBPath)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./pqsort.yaml or $XDG_CONFIG_HOME/pqsort/pqsort.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Dataset store path (.db for SQLite, .bolt for bbolt)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}
