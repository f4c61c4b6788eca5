package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch, classify and publish the organization's environments",
	Long: `Fetch every repository of the organization, classify it into an environment
and write the markdown report and JSON state file. Files are only rewritten when
their content changes, so repeated runs against an unchanged organization leave
the filesystem untouched.

When both CODEX_API_URL and CODEX_API_TOKEN are set the environment list is
also pushed to {CODEX_API_URL}/environments/sync.

Authentication:
  Token is automatically detected from (in order):
  - --token flag
  - GITHUB_TOKEN environment variable
  - GH_TOKEN environment variable
  - gh CLI (if authenticated via 'gh auth login')
  Without a token requests are unauthenticated and only public repositories are listed.

Examples:
  # Sync the default organization
  envsync sync

  # Preview the report without writing or publishing
  envsync sync --dry-run

  # Sync another organization into custom files
  envsync sync --org acme --output docs/ENVIRONMENTS.md --json docs/environments.json`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	logger := loggerFor(cmd)

	s, err := resolveSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}

	logger.Debug("settings resolved",
		slog.String("org", s.cfg.GitHub.Org),
		slog.String("token_source", string(s.tokenSource)),
		slog.String("config", s.cfg.Source),
	)

	warnIfAnonymous(logger, s)

	syncer, err := buildSyncer(s, logger)
	if err != nil {
		return err
	}

	opts := syncOptions(s, dryRun)

	res, err := syncer.Run(cmd.Context(), opts)
	if err != nil {
		// sinks may already be written when only the publish step failed
		if res != nil && !res.DryRun {
			printSinkLines(cmd.OutOrStdout(), res, opts)
		}

		return fmt.Errorf("sync failed: %w", err)
	}

	printSyncSummary(cmd.OutOrStdout(), res, opts)

	return nil
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("dry-run", false, "Compute and print the report without writing files or publishing")
	addSyncFlags(syncCmd.Flags())
}
