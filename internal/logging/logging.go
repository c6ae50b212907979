package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"DEBUG": slog.LevelDebug,
	"INFO":  slog.LevelInfo,
	"WARN":  slog.LevelWarn,
	"ERROR": slog.LevelError,
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(name string) slog.Level {
	if level, ok := levels[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return level
	}
	return slog.LevelInfo
}

// New builds a text logger writing to stderr.
func New(levelName string) *slog.Logger {
	return NewWithWriter(os.Stderr, levelName)
}

func NewWithWriter(w io.Writer, levelName string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(levelName)})
	return slog.New(handler)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
