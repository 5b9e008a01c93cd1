// Package logging builds the application logger. The terminal belongs to the
// UI, so logs go to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options controls where and how much the logger writes.
type Options struct {
	Path   string
	Level  string
	Format string
}

// New returns a logger for opts and a closer for its file. With an empty
// path the logger discards everything.
func New(opts Options) (*log.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: true,
		Prefix:          "todo",
	})
	return logger, f, nil
}

// Discard returns a logger that drops all output.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel converts a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter converts a format name to a log.Formatter, defaulting to logfmt.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "text":
		return log.TextFormatter
	default:
		return log.LogfmtFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
