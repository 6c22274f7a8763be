// simplesql runs validated SELECT plans against a flat-file database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oscardepp/SimpleSQL/internal/plan"
)

var (
	version   = "0.1.0"
	buildDate = "dev"
)

// options are the global flags; non-empty values override the config file
type options struct {
	cfgFile string
	dbDir   string
	format  string
	output  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "simplesql",
		Short: "simplesql - execute SELECT plans against flat-file tables",
		Long: `simplesql executes one validated SELECT plan against a database
directory holding meta.json and one <table>.data file per table.

Run a plan:
  simplesql run query.yaml --db ./company

Export the result as parquet:
  simplesql run query.yaml --db ./company --format parquet --output result.parquet`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.dbDir, "db", "d", "", "database directory")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format (table, csv, jsonl, parquet)")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <plan.yaml>",
		Short: "Execute a query plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, opts, args[0])
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "explain <plan.yaml>",
		Short: "Show the steps a query plan runs through",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := plan.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), plan.Explain(q))
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "tables",
		Short: "List the tables of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTables(cmd, opts)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "simplesql %s (built %s)\n", version, buildDate)
		},
	})

	return rootCmd
}
