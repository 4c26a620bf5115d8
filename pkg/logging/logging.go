// Package logging configures line-oriented structured logging for the
// inventory CLI.
//
// Records are appended to a log file through slog's text handler, one
// line per record with a timestamp, a severity level and the message.
// Optionally the same records are mirrored to stderr with tint.
//
// Usage:
//
//	logger, closer, err := logging.Open(logging.Options{Path: "app.log", Level: "info"})
//	defer closer.Close()
//
// Level names written to the file are DEBUG, INFO, WARNING and ERROR.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options describes where and how verbosely to log.
type Options struct {
	// Path is the log file, opened in append mode. Empty disables the file.
	Path string

	// Level is one of debug, info, warn, error (default: info).
	Level string

	// Console mirrors records to Stderr with colored output.
	Console bool

	// Stderr overrides os.Stderr for the console mirror.
	Stderr io.Writer
}

// Open builds a logger from opts. The returned closer releases the log
// file and must be called before the process exits.
func Open(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)

	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if opts.Path != "" {
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closer = f
		handlers = append(handlers, NewFileHandler(f, level))
	}

	if opts.Console {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}

	switch len(handlers) {
	case 0:
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	default:
		return slog.New(fanout(handlers)), closer, nil
	}
}

// NewFileHandler returns the text handler used for the log file.
func NewFileHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})
}

// ParseLevel maps a level name to a slog.Level (default: INFO).
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// replaceLevel spells the warning level out in full.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) != 0 {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slog.LevelWarn {
		a.Value = slog.StringValue("WARNING")
	}
	return a
}

// fanout sends every record to each of its handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
