/*
PURPOSE:
  Provides a structured logger for Jira Report.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - The report on stdout must stay clean.

  Implementation-discovered:
  - Logs go to stderr by default, quiet unless --verbose.
  - Optional rotating log file (--log-file).

ARCHITECTURE INTEGRATION:
  - Used everywhere.
  - Configured by: internal/cli

IMPLEMENTATION RULES:
  - Use `log/slog`.
  - Use lumberjack for file rotation.

USAGE:
  output.Logger.Info("message", "key", "value")
*/

package output

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// LogOptions controls where and how much is logged.
type LogOptions struct {
	Verbose bool
	File    string // empty = stderr
	Stderr  io.Writer
}

// Configure installs a logger built from opts and returns a closer for the log file, if any.
func Configure(opts LogOptions) io.Closer {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		SetLogger(slog.New(slog.NewJSONHandler(rotating, handlerOpts)))
		return rotating
	}

	w := opts.Stderr
	if w == nil {
		w = os.Stderr
	}
	SetLogger(slog.New(slog.NewTextHandler(w, handlerOpts)))
	return io.NopCloser(nil)
}
