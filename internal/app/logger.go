package app

import (
	"io"
	"log/slog"
)

// NewLogger builds an isolated slog.Logger writing to outW. It never touches
// the global logger. Unknown levels fall back to info; debug level also
// records the source location of each entry.
func NewLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := parseLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler = slog.NewTextHandler(outW, opts)
	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, opts)
	}
	return slog.New(handler).With("app", "projector")
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
