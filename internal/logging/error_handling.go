package logging

import (
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes a resource and logs a failed close together
// with the operation and any extra attributes, e.g. the dataset source.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, operation string, attrs ...slog.Attr) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		attrs = append([]slog.Attr{slog.String("operation", operation)}, attrs...)
		LogError(logger, "failed to close resource", err, attrs...)
	}
}
