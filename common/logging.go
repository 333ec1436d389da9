// Package common provides shared logging setup and build metadata for the
// botstrap binaries.
package common

import (
	"log/slog"
	"os"
)

// LoggingOpts configures the process-wide structured logger.
type LoggingOpts struct {
	// Service is added as a 'service' tag to all log lines when non-empty.
	Service string

	// JSON enables JSON log output instead of text.
	JSON bool

	// Debug lowers the log level to debug.
	Debug bool

	// Version is added as a 'version' tag to all log lines when non-empty.
	Version string
}

// SetupLogger creates a slog logger writing to stdout, configured per opts.
// Diagnostics go to stdout rather than stderr so they interleave with the
// downstream program's output in container logs.
func SetupLogger(opts *LoggingOpts) (log *slog.Logger) {
	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}

	if opts.JSON {
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	} else {
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	}

	if opts.Service != "" {
		log = log.With("service", opts.Service)
	}
	if opts.Version != "" {
		log = log.With("version", opts.Version)
	}
	return log
}
