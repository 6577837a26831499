// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/italiano/internal/store"
)

// Options controls where and how much is logged.
type Options struct {
	Level slog.Level
	// File receives log output. Empty means Fallback.
	File string
	// Fallback is used when File is empty. Nil discards output, which is
	// what the TUI wants since it owns the terminal.
	Fallback io.Writer
}

// Setup builds a text logger, installs it as the slog default and returns
// it along with a closer for the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}

	switch {
	case opts.File != "":
		if err := store.EnsureDir(opts.File); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	case opts.Fallback != nil:
		w = opts.Fallback
	}

	logger := New(w, opts.Level)
	slog.SetDefault(logger)
	return logger, closer, nil
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
