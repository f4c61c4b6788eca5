package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/inovacc/envsync/internal/classify"
	"github.com/inovacc/envsync/internal/collector"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the classification rules",
	Long: `Show the category rules in evaluation order. The first rule with a pattern
matching the repository name or description decides the category; overrides
take precedence over every rule.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printRules(cmd.OutOrStdout(), classify.NewEngine(classify.DefaultRules()))
		return nil
	},
}

func printRules(w io.Writer, e *classify.Engine) {
	_, _ = fmt.Fprintln(w, headerStyle.Render("Category rules (first match wins)"))

	for i, rule := range e.Rules() {
		patterns := make([]string, 0, len(rule.Patterns))
		for _, p := range rule.Patterns {
			patterns = append(patterns, strings.TrimPrefix(p.String(), "(?i)"))
		}

		_, _ = fmt.Fprintf(w, "  %d. %-10s %s\n", i+1, rule.Category, strings.Join(patterns, ", "))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Default category:  %s\n", e.DefaultCategory())
	_, _ = fmt.Fprintf(w, "Dormant after:     %d days without a push\n", int(e.Window().Hours()/24))
	_, _ = fmt.Fprintf(w, "Page size:         %d\n", collector.PageSize)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
