package logging

import (
	"io"
	"log/slog"
)

// SafeCloseWithLogging closes closer and logs a failure against resource.
func SafeCloseWithLogging(closer io.Closer, logger *slog.Logger, resource string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		LogError(logger, "failed to close resource", err, slog.String("operation", resource))
	}
}
