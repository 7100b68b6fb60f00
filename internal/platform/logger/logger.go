package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the default text logger for interactive use.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// Discard returns a logger that drops everything; the zero-noise default
// for components whose callers did not supply one.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
