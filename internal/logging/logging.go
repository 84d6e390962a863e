// Package logging builds the process-wide JSON logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects where log records go
type Options struct {
	Path    string // log file, parent directories are created
	Level   string // "debug", "info", "warn", "error"
	Console bool   // also write to stderr
}

// Logger wraps the slog logger with its level and file handle
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  *os.File
}

// New opens the log file (if any) and returns a JSON logger.
// When the file cannot be opened, records fall back to stderr.
func New(opts Options) *Logger {
	var writers []io.Writer
	var file *os.File

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err == nil {
			f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err == nil {
				file = f
				writers = append(writers, f)
			}
		}
		if file == nil {
			opts.Console = true
		}
	}
	if opts.Console {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	level := &slog.LevelVar{}
	level.Set(ParseLevel(opts.Level))

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
	})

	return &Logger{Logger: slog.New(handler), level: level, file: file}
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// SetLevel changes the level at runtime
func (l *Logger) SetLevel(raw string) {
	l.level.Set(ParseLevel(raw))
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
