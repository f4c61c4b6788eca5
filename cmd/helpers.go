package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/envsync/internal/application"
	"github.com/inovacc/envsync/internal/auth"
	"github.com/inovacc/envsync/internal/classify"
	"github.com/inovacc/envsync/internal/collector"
	"github.com/inovacc/envsync/internal/config"
	"github.com/inovacc/envsync/internal/core"
	"github.com/inovacc/envsync/internal/overrides"
	"github.com/inovacc/envsync/internal/publish"
	"github.com/inovacc/envsync/internal/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	updatedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unchangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	skippedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// settings is the fully resolved configuration for one invocation
type settings struct {
	cfg           *config.Config
	token         string
	tokenSource   auth.Source
	authenticated bool
}

// addSyncFlags adds the flags shared by sync and watch
func addSyncFlags(fs *pflag.FlagSet) {
	fs.String("org", "", "GitHub organization (overrides GITHUB_ORG and config)")
	fs.String("output", "", "Path of the markdown report")
	fs.String("json", "", "Path of the JSON state file")
	fs.String("overrides", "", "Path of the override file (.json, .yaml or .yml)")
	fs.String("api-url", "", "GitHub REST API base URL (overrides GITHUB_API_URL)")
	fs.String("token", "", "GitHub token (overrides GITHUB_TOKEN / GH_TOKEN)")
}

// setupLogger creates a configured slog.Logger
func setupLogger(levelStr, format string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	// stdout is reserved for the report and the run summary
	return setupLogger(level, format, cmd.ErrOrStderr())
}

// resolveSettings layers defaults, config file, environment and flags.
func resolveSettings(cmd *cobra.Command, getenv func(string) string) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	required := configPath != ""

	if configPath == "" {
		if p, err := application.DefaultConfigPath(); err == nil {
			configPath = p
		}
	}

	cfg, err := config.Load(configPath, required)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(getenv)

	flags := cmd.Flags()
	flagOverlay(flags, "org", &cfg.GitHub.Org)
	flagOverlay(flags, "api-url", &cfg.GitHub.APIURL)
	flagOverlay(flags, "output", &cfg.Output.Report)
	flagOverlay(flags, "json", &cfg.Output.State)
	flagOverlay(flags, "overrides", &cfg.Output.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, p := range []*string{&cfg.Output.Report, &cfg.Output.State, &cfg.Output.Overrides} {
		if *p, err = absPath(*p); err != nil {
			return nil, err
		}
	}

	flagToken, _ := flags.GetString("token")

	tok, err := auth.NewResolver("GitHub").
		WithGetenv(getenv).
		WithFlagValue(flagToken).
		WithEnvs(config.EnvGitHubToken, config.EnvGitHubTokenGH).
		WithGHCLI(apiHost(cfg.GitHub.APIURL)).
		Lookup()
	if err != nil {
		return nil, err
	}

	return &settings{
		cfg:           cfg,
		token:         tok.Token,
		tokenSource:   tok.Source,
		authenticated: tok.Found(),
	}, nil
}

// warnIfAnonymous notes that only public repositories will be listed.
func warnIfAnonymous(logger *slog.Logger, s *settings) {
	if s.authenticated {
		return
	}

	logger.Warn("no GitHub token found, only public repositories are visible",
		slog.String("hint", "set --token, GITHUB_TOKEN or GH_TOKEN, or run 'gh auth login'"),
	)
}

func flagOverlay(flags *pflag.FlagSet, name string, dst *string) {
	if !flags.Changed(name) {
		return
	}

	if v, err := flags.GetString(name); err == nil && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func absPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", p, err)
	}

	return abs, nil
}

// apiHost maps an API base URL to the host gh CLI stores credentials under.
func apiHost(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" || u.Host == "api.github.com" {
		return "github.com"
	}

	return u.Hostname()
}

// buildSyncer wires the production pipeline for s.
func buildSyncer(s *settings, logger *slog.Logger) (*core.Syncer, error) {
	col, err := collector.New(collector.Options{
		Token:  s.token,
		APIURL: s.cfg.GitHub.APIURL,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	return core.NewSyncer(core.SyncDeps{
		Overrides:  overrides.NewStore(s.cfg.Output.Overrides),
		Collector:  col,
		Classifier: classify.NewEngine(classify.DefaultRules()),
		Sink:       sink.NewWriter(logger),
		Publisher: publish.New(publish.Options{
			Endpoint: s.cfg.Publish.Endpoint,
			Token:    s.cfg.Publish.Token,
			Logger:   logger,
		}),
		Logger: logger,
	})
}

func syncOptions(s *settings, dryRun bool) core.SyncOptions {
	return core.SyncOptions{
		Org:        s.cfg.GitHub.Org,
		ReportPath: s.cfg.Output.Report,
		StatePath:  s.cfg.Output.State,
		DryRun:     dryRun,
	}
}

// printSyncSummary reports what a run changed
func printSyncSummary(w io.Writer, res *core.SyncResult, opts core.SyncOptions) {
	if res.DryRun {
		_, _ = w.Write(res.Report)
		return
	}

	printSinkLines(w, res, opts)

	if res.Publish.Skipped {
		_, _ = fmt.Fprintln(w, skippedStyle.Render(
			fmt.Sprintf("Skipped publish (%s or %s not configured).", config.EnvPublishURL, config.EnvPublishToken)))
		return
	}

	_, _ = fmt.Fprintln(w, updatedStyle.Render("Environments synced successfully."))
}

func printSinkLines(w io.Writer, res *core.SyncResult, opts core.SyncOptions) {
	printSinkLine(w, opts.ReportPath, res.ReportChanged)
	printSinkLine(w, opts.StatePath, res.StateChanged)
}

func printSinkLine(w io.Writer, path string, changed bool) {
	if changed {
		_, _ = fmt.Fprintln(w, updatedStyle.Render("Updated "+path))
		return
	}

	_, _ = fmt.Fprintln(w, unchangedStyle.Render(path+" already up to date."))
}
