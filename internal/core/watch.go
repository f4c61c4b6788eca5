package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// WatchOptions configures scheduled runs
type WatchOptions struct {
	// Schedule is a standard 5-field cron expression or a descriptor such as @hourly
	Schedule string

	// RunNow triggers one run before waiting for the first tick
	RunNow bool

	Logger *slog.Logger
}

// Watch calls run on every tick of the schedule until ctx is cancelled.
// Runs never overlap; a tick that fires while a run is in progress is skipped.
// Run errors are logged and do not stop the schedule. On cancellation Watch
// waits for the in-flight run to finish.
func Watch(ctx context.Context, opts WatchOptions, run func(ctx context.Context) error) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cl := cronLogger{logger: logger}

	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	id, err := c.AddFunc(opts.Schedule, func() {
		if ctx.Err() != nil {
			return
		}

		if err := run(ctx); err != nil {
			logger.Error("scheduled sync failed", slog.String("error", err.Error()))
			return
		}

		logger.Info("scheduled sync finished")
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", opts.Schedule, err)
	}

	entry := c.Entry(id)

	if opts.RunNow {
		entry.WrappedJob.Run()
	}

	logger.Info("watching",
		slog.String("schedule", opts.Schedule),
		slog.Time("next", entry.Schedule.Next(time.Now())),
	)

	c.Start()

	<-ctx.Done()

	logger.Info("stopping scheduler")
	<-c.Stop().Done()

	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
