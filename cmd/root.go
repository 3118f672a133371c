// Package cmd wires the pulse-etl command line interface.
package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// Version of this software - filled in by ldflags in Makefile.
var Version string

// NewRootCommand builds the root command with all subcommands attached.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	if Version == "" {
		Version = "v0.0.0"
	}

	rootCmd := &cobra.Command{
		Use:     "pulse-etl",
		Short:   "ETL pipeline for the PhonePe pulse data tree",
		Long:    "pulse-etl syncs the PhonePe pulse repository, flattens its JSON document tree into six relational tables and upserts them into a MySQL or SQLite sink.",
		Version: Version,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewViewCommand(stdout))

	return rootCmd
}
