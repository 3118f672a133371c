package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/psurana/pulse-etl/etl"
	"github.com/psurana/pulse-etl/etl/config"
)

// NewRunCommand builds the `run` subcommand: one full pipeline run, or a
// gocron-scheduled loop with --schedule.
func NewRunCommand() *cobra.Command {
	var (
		schedule bool
		skipSync bool
		verbose  bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the full extract-transform-load pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if verbose {
				cfg.Verbose = true
			}

			runner, err := etl.NewRunner(cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			if !schedule {
				return runner.Execute(skipSync)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			signalCh := make(chan os.Signal, 1)
			signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-signalCh
				cancel()
			}()

			return runner.StartScheduler(ctx, skipSync)
		},
	}

	flags := runCmd.Flags()
	flags.BoolVar(&schedule, "schedule", false, "keep running on the configured interval instead of exiting after one run")
	flags.BoolVar(&skipSync, "skip-sync", false, "use the existing checkout instead of cloning or pulling the source repository")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return runCmd
}
