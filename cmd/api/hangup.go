package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"hydroroute.org/internal/logging"
	"hydroroute.org/internal/network"
)

type snapThresholdSetter interface {
	SetSnapThreshold(threshold float64) error
}

// reloadDotEnv re-reads .env over the current environment so edits made
// since startup are visible to the next SIGHUP.
func reloadDotEnv() error {
	err := godotenv.Overload(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// hangupThreshold reads the snap threshold a SIGHUP should apply.
func hangupThreshold(lookupEnv func(string) (string, bool)) (float64, error) {
	name := envName("snap-threshold")
	value, ok := lookupEnv(name)
	if !ok || value == "" {
		return 0, fmt.Errorf("%s is not set", name)
	}
	threshold, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%s: %w", name, strconv.Quote(value), err)
	}
	if threshold < 0 {
		return 0, fmt.Errorf("%s=%s: %w", name, strconv.Quote(value), network.ErrInvalidThreshold)
	}
	return threshold, nil
}

// watchHangups rebuilds the network with the configured snap threshold on
// every value received from hangups, until ctx is done.
func watchHangups(ctx context.Context, hangups <-chan os.Signal, manager snapThresholdSetter,
	reloadEnv func() error, lookupEnv func(string) (string, bool), logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hangups:
		}

		if reloadEnv != nil {
			if err := reloadEnv(); err != nil {
				logging.LogError(logger, "error re-reading .env", err)
			}
		}
		threshold, err := hangupThreshold(lookupEnv)
		if err != nil {
			logging.LogError(logger, "ignoring SIGHUP", err)
			continue
		}
		if err := manager.SetSnapThreshold(threshold); err != nil {
			logging.LogError(logger, "error applying snap threshold", err,
				slog.Float64("snap_threshold", threshold))
			continue
		}
		logger.Info("snap threshold changed", slog.Float64("snap_threshold", threshold))
	}
}
