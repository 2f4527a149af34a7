// Package debug carries the debug flag through contexts and configures the
// process-wide slog logger.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type contextKey string

const debugKey contextKey = "debug_enabled"

// WithDebug returns a context with debug mode enabled/disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, debugKey, enabled)
}

// IsEnabled returns true if debug mode is enabled in the context.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(debugKey).(bool); ok {
		return v
	}
	return false
}

// LoggerOptions select the level and encoding of log output.
type LoggerOptions struct {
	Debug  bool
	Format string // "text" or "json"
	Writer io.Writer
}

// NewLogger builds a logger writing to opts.Writer (stderr by default).
// Debug lowers the level from warn to debug.
func NewLogger(opts LoggerOptions) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if opts.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// SetupLogger installs a text logger on stderr as the slog default.
func SetupLogger(debugEnabled bool) {
	slog.SetDefault(NewLogger(LoggerOptions{Debug: debugEnabled}))
}
