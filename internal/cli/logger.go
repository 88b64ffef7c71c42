package cli

import (
	"io"
	"log/slog"
	"strings"
)

// Environment variables that tune diagnostics on stderr.
const (
	EnvLogLevel  = "YOU_LOG_LEVEL"
	EnvLogFormat = "YOU_LOG_FORMAT"
)

// NewLogger builds an isolated logger from a level and format string.
// Unknown levels fall back to warn so regular runs only print issue lines.
func NewLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(formatStr, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
