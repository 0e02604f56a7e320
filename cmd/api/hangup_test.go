package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/network"
)

type recordingSetter struct {
	mu         sync.Mutex
	thresholds []float64
}

func (r *recordingSetter) SetSnapThreshold(threshold float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.thresholds = append(r.thresholds, threshold)
	return nil
}

func (r *recordingSetter) applied() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.thresholds...)
}

func TestHangupThreshold(t *testing.T) {
	t.Run("reads the snap threshold variable", func(t *testing.T) {
		threshold, err := hangupThreshold(envFrom(map[string]string{"HYDROROUTE_SNAP_THRESHOLD": "0.05"}))
		require.NoError(t, err)
		assert.Equal(t, 0.05, threshold)
	})

	t.Run("fails when unset", func(t *testing.T) {
		_, err := hangupThreshold(envFrom(nil))
		assert.ErrorContains(t, err, "HYDROROUTE_SNAP_THRESHOLD")
	})

	t.Run("rejects garbage and negative values", func(t *testing.T) {
		_, err := hangupThreshold(envFrom(map[string]string{"HYDROROUTE_SNAP_THRESHOLD": "wide"}))
		assert.Error(t, err)
		_, err = hangupThreshold(envFrom(map[string]string{"HYDROROUTE_SNAP_THRESHOLD": "-0.1"}))
		assert.ErrorIs(t, err, network.ErrInvalidThreshold)
	})
}

func TestWatchHangups(t *testing.T) {
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelInfo)

	t.Run("applies the threshold on every hangup", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		env := map[string]string{"HYDROROUTE_SNAP_THRESHOLD": "0"}
		var envMu sync.Mutex
		lookup := func(key string) (string, bool) {
			envMu.Lock()
			defer envMu.Unlock()
			v, ok := env[key]
			return v, ok
		}
		hangups := make(chan os.Signal)
		setter := &recordingSetter{}
		done := make(chan struct{})
		go func() {
			watchHangups(ctx, hangups, setter, nil, lookup, logger)
			close(done)
		}()

		hangups <- syscall.SIGHUP
		require.Eventually(t, func() bool {
			return len(setter.applied()) == 1
		}, time.Second, 5*time.Millisecond)
		envMu.Lock()
		env["HYDROROUTE_SNAP_THRESHOLD"] = "0.2"
		envMu.Unlock()
		hangups <- syscall.SIGHUP

		assert.Eventually(t, func() bool {
			return len(setter.applied()) == 2
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, []float64{0, 0.2}, setter.applied())

		cancel()
		<-done
	})

	t.Run("skips hangups without a usable threshold", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hangups := make(chan os.Signal)
		setter := &recordingSetter{}
		reloads := 0
		done := make(chan struct{})
		go func() {
			watchHangups(ctx, hangups, setter, func() error { reloads++; return nil }, envFrom(nil), logger)
			close(done)
		}()

		hangups <- syscall.SIGHUP
		hangups <- syscall.SIGHUP
		cancel()
		<-done

		assert.Equal(t, 2, reloads)
		assert.Empty(t, setter.applied())
	})
}
