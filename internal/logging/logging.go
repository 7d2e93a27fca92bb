// Package logging builds the slog logger used by rdsctl: plain messages on
// the console and, optionally, a rotating log file with full records.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvDebug enables debug output on the console
const EnvDebug = "RDSCTL_DEBUG"

// Options configures New.
type Options struct {
	Console io.Writer // defaults to os.Stderr
	Debug   bool
	File    string // rotating log file, disabled when empty
}

// consoleHandler writes messages without timestamps. Warnings and errors get
// a prefix; attributes are only shown in debug mode.
type consoleHandler struct {
	writer io.Writer
	debug  bool
	attrs  []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level < slog.LevelInfo {
		return h.debug
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	switch {
	case record.Level >= slog.LevelError:
		b.WriteString("error: ")
	case record.Level >= slog.LevelWarn:
		b.WriteString("warning: ")
	case record.Level < slog.LevelInfo:
		b.WriteString("debug: ")
	}
	b.WriteString(record.Message)

	if h.debug {
		write := func(a slog.Attr) bool {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
			return true
		}
		for _, a := range h.attrs {
			write(a)
		}
		record.Attrs(write)
	}

	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		writer: h.writer,
		debug:  h.debug,
		attrs:  append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// rotatingFile creates a lumberjack logger, overridable through
// RDSCTL_LOG_MAX_SIZE (MB), RDSCTL_LOG_MAX_BACKUPS and RDSCTL_LOG_MAX_AGE (days).
func rotatingFile(path string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     30,
	}
	if n, ok := envInt("RDSCTL_LOG_MAX_SIZE"); ok && n > 0 {
		l.MaxSize = n
	}
	if n, ok := envInt("RDSCTL_LOG_MAX_BACKUPS"); ok && n >= 0 {
		l.MaxBackups = n
	}
	if n, ok := envInt("RDSCTL_LOG_MAX_AGE"); ok && n > 0 {
		l.MaxAge = n
	}
	return l
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the logger. The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	debug := opts.Debug
	if v, err := strconv.ParseBool(os.Getenv(EnvDebug)); err == nil && v {
		debug = true
	}

	handlers := []slog.Handler{&consoleHandler{writer: console, debug: debug}}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file := rotatingFile(opts.File)
		closer = file
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	return slog.New(&multiHandler{handlers: handlers}), closer, nil
}
