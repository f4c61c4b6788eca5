package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/envsync/internal/application"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Synchronize organization repositories into a categorized environment snapshot",
	Long: `Envsync reconciles the repositories of a GitHub organization against a local
override policy, classifies each repository into an environment, and publishes
the result as a markdown report and a JSON state file. Files are only rewritten
when their content changes. The snapshot can optionally be pushed to a
downstream control plane.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config.ini (default: <user config dir>/envsync/config.ini)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
}
