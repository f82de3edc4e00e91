// Package logging builds the manager's structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures New.
type Options struct {
	Level     string
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
	// Console receives a copy of every record. Defaults to os.Stderr.
	Console io.Writer
}

// ParseLevel converts a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to the console and, when FilePath is
// set, to a rotating file. The returned closer releases the file.
//
// A file that cannot be opened is reported on the console and the logger
// falls back to console output only.
func New(opts Options) (*slog.Logger, io.Closer) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var out io.Writer = console
	var closer io.Closer = nopCloser{}
	if opts.FilePath != "" {
		f, err := OpenRotating(opts.FilePath, opts.MaxSizeMB, opts.MaxFiles)
		if err != nil {
			slog.New(slog.NewTextHandler(console, nil)).Warn("log file disabled", "error", err)
		} else {
			out = io.MultiWriter(console, f)
			closer = f
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	return slog.New(handler), closer
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
