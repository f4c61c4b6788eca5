package core

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_InvalidSchedule(t *testing.T) {
	err := Watch(context.Background(), WatchOptions{Schedule: "not a schedule"}, func(context.Context) error {
		t.Fatal("run must not be called")
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestWatch_RunNowThenStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{Schedule: "@yearly", RunNow: true}, func(context.Context) error {
			runs.Add(1)
			cancel()
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}

	assert.Equal(t, int32(1), runs.Load())
}

func TestWatch_RunErrorIsLoggedNotFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := Watch(ctx, WatchOptions{Schedule: "@daily", RunNow: true, Logger: logger}, func(context.Context) error {
		cancel()
		return errors.New("remote down")
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scheduled sync failed")
	assert.Contains(t, buf.String(), "remote down")
}

func TestWatch_TicksRunRepeatedly(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for scheduler ticks")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32

	err := Watch(ctx, WatchOptions{Schedule: "@every 1s"}, func(context.Context) error {
		if runs.Add(1) == 2 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_SkipsTickWhileRunning(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for scheduler ticks")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		active  atomic.Int32
		maxSeen atomic.Int32
		runs    atomic.Int32
	)

	logs := &lockedBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := Watch(ctx, WatchOptions{Schedule: "@every 1s", Logger: logger}, func(context.Context) error {
		n := active.Add(1)
		defer active.Add(-1)

		for {
			seen := maxSeen.Load()
			if n <= seen || maxSeen.CompareAndSwap(seen, n) {
				break
			}
		}

		time.Sleep(2500 * time.Millisecond)

		if runs.Add(1) == 2 {
			cancel()
		}

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
	assert.Contains(t, logs.String(), "cron: skip")
}
