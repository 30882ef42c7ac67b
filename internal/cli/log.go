// Package cli implements dashctl, a command-line tool that edits one owner's widget
// grid directly against the configured layout store.
//
// Commands log through charmbracelet/log. The same logger backs the slog.Logger the
// layout engine reads from the context, so engine warnings show up on stderr too.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// newLogger creates a logger that writes to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// withLogger attaches l to ctx as the request-style slog logger.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return logger.ToContext(ctx, slog.New(l))
}
