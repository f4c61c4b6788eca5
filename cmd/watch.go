package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/envsync/internal/core"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run sync on a cron schedule",
	Long: `Run the sync pipeline repeatedly on a cron schedule until interrupted.

The schedule accepts standard 5-field cron expressions ("0 */6 * * *") and
descriptors (@hourly, @daily, @every 30m). Runs never overlap: a tick that fires
while a run is still in progress is skipped. A failed run is logged and the
schedule continues. Settings are resolved once at startup.

Examples:
  # Refresh every hour
  envsync watch --schedule @hourly

  # Run immediately, then every 15 minutes
  envsync watch --schedule "*/15 * * * *" --run-now`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	schedule, _ := cmd.Flags().GetString("schedule")
	runNow, _ := cmd.Flags().GetBool("run-now")
	logger := loggerFor(cmd)

	s, err := resolveSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}

	warnIfAnonymous(logger, s)

	syncer, err := buildSyncer(s, logger)
	if err != nil {
		return err
	}

	opts := syncOptions(s, false)
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting watch",
		slog.String("org", opts.Org),
		slog.String("schedule", schedule),
	)

	return core.Watch(ctx, core.WatchOptions{Schedule: schedule, RunNow: runNow, Logger: logger}, func(ctx context.Context) error {
		res, err := syncer.Run(ctx, opts)
		if err != nil {
			if res != nil {
				printSinkLines(out, res, opts)
			}

			return fmt.Errorf("sync failed: %w", err)
		}

		printSyncSummary(out, res, opts)

		return nil
	})
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("schedule", "@hourly", "Cron schedule for sync runs")
	watchCmd.Flags().Bool("run-now", false, "Run once immediately before waiting for the schedule")
	addSyncFlags(watchCmd.Flags())
}
