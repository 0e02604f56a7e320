package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"hydroroute.org/internal/logging"
)

// IsRemote reports whether source is fetched over HTTP instead of read
// from the local file system.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// rawData reads the bytes of a local file or downloads them from a URL.
func rawData(ctx context.Context, source string, logger *slog.Logger) ([]byte, error) {
	if !IsRemote(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local dataset file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating dataset request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading dataset: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "dataset_download", slog.String("source", source))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading dataset: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset response: %w", err)
	}
	return b, nil
}

// ModTime returns the modification time of a local dataset file. Remote
// sources have no modification time and return the zero time.
func ModTime(source string) (time.Time, error) {
	if IsRemote(source) {
		return time.Time{}, nil
	}
	info, err := os.Stat(source)
	if err != nil {
		return time.Time{}, fmt.Errorf("error reading dataset file info: %w", err)
	}
	return info.ModTime(), nil
}
