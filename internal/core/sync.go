package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/envsync/internal/encoding"
	"github.com/inovacc/envsync/internal/model"
	"github.com/inovacc/envsync/internal/publish"
	"github.com/inovacc/envsync/internal/snapshot"
)

// Collector fetches every repository of an organization.
type Collector interface {
	FetchAll(ctx context.Context, org string) ([]model.Item, error)
}

// OverrideLoader loads the manual override policy.
type OverrideLoader interface {
	Load() (model.Overrides, error)
}

// Classifier derives environments from items.
type Classifier interface {
	Classify(items []model.Item, overrides model.Overrides, now time.Time) []model.Environment
}

// SinkWriter persists content only when it differs from what is on disk.
type SinkWriter interface {
	WriteIfChanged(path string, content []byte) (bool, error)
}

// Publisher pushes environments to the downstream control plane.
type Publisher interface {
	Publish(ctx context.Context, requestID string, envs []model.Environment) (publish.Result, error)
}

// SyncDeps are the collaborators of a Syncer
type SyncDeps struct {
	Overrides  OverrideLoader
	Collector  Collector
	Classifier Classifier
	Sink       SinkWriter
	Publisher  Publisher
	Logger     *slog.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// SyncOptions describes a single run
type SyncOptions struct {
	Org        string
	ReportPath string
	StatePath  string
	DryRun     bool
}

// SyncResult captures what a run produced
type SyncResult struct {
	RunID         string
	Snapshot      model.Snapshot
	Report        []byte
	State         []byte
	DryRun        bool
	ReportChanged bool
	StateChanged  bool
	Publish       publish.Result
}

// Syncer runs the environment synchronization pipeline.
type Syncer struct {
	deps SyncDeps
}

// NewSyncer creates a Syncer. Every dependency except Logger and Now is required.
func NewSyncer(deps SyncDeps) (*Syncer, error) {
	switch {
	case deps.Overrides == nil:
		return nil, fmt.Errorf("syncer: override loader is required")
	case deps.Collector == nil:
		return nil, fmt.Errorf("syncer: collector is required")
	case deps.Classifier == nil:
		return nil, fmt.Errorf("syncer: classifier is required")
	case deps.Sink == nil:
		return nil, fmt.Errorf("syncer: sink writer is required")
	case deps.Publisher == nil:
		return nil, fmt.Errorf("syncer: publisher is required")
	}

	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Syncer{deps: deps}, nil
}

// Run executes overrides → fetch → classify → build → sinks → publish.
// Nothing is written unless the complete item set was fetched and classified.
// In dry-run mode the report and state are rendered but neither written nor
// published. A sink failure returns a nil result. A publish failure is returned
// together with the result, since both sinks were already written.
func (s *Syncer) Run(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	runID := uuid.NewString()
	logger := s.deps.Logger.With(slog.String("run_id", runID), slog.String("org", opts.Org))

	overrides, err := s.deps.Overrides.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	logger.Debug("overrides loaded", slog.Int("count", len(overrides)))

	items, err := s.deps.Collector.FetchAll(ctx, opts.Org)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	now := s.deps.Now()
	envs := s.deps.Classifier.Classify(items, overrides, now)
	snap := snapshot.Build(envs, opts.Org, now)

	if !opts.DryRun {
		previous, err := encoding.ReadFile(opts.StatePath)
		if err != nil {
			logger.Debug("previous state unreadable", slog.String("error", err.Error()))
		}

		snap = snapshot.KeepGeneratedAt(snap, previous)
	}

	state, err := snapshot.RenderState(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to render state: %w", err)
	}

	result := &SyncResult{
		RunID:    runID,
		Snapshot: snap,
		Report:   snapshot.RenderReport(snap),
		State:    state,
		DryRun:   opts.DryRun,
	}

	logger.Info("environments classified",
		slog.Int("environments", len(snap.Environments)),
		slog.Bool("dry_run", opts.DryRun),
	)

	if opts.DryRun {
		return result, nil
	}

	if result.ReportChanged, err = s.deps.Sink.WriteIfChanged(opts.ReportPath, result.Report); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if result.StateChanged, err = s.deps.Sink.WriteIfChanged(opts.StatePath, result.State); err != nil {
		return nil, fmt.Errorf("failed to write state: %w", err)
	}

	logger.Info("sinks persisted",
		slog.String("report", opts.ReportPath),
		slog.Bool("report_changed", result.ReportChanged),
		slog.String("state", opts.StatePath),
		slog.Bool("state_changed", result.StateChanged),
	)

	if result.Publish, err = s.deps.Publisher.Publish(ctx, runID, snap.Environments); err != nil {
		return result, fmt.Errorf("failed to publish environments: %w", err)
	}

	return result, nil
}
