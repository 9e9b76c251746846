// ABOUTME: Structured logging configuration using log/slog
// ABOUTME: Builds the default logger for commands (stderr) and the TUI (debug.log file)

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LogFileName is the TUI log file created inside the config directory
const LogFileName = "debug.log"

// New builds a logger writing to w.
// level: debug, info, warn, error (default: info)
// format: text, json (default: text)
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init configures the default slog logger to write to stderr, keeping stdout
// for command output.
func Init(level, format string) *slog.Logger {
	l := New(os.Stderr, level, format)
	slog.SetDefault(l)
	return l
}

// InitFile points the default logger at debug.log in configDir so the
// terminal UI is not disturbed. The returned closer must be called on exit.
// If configDir is empty, logs are discarded.
func InitFile(configDir, level, format string) (*slog.Logger, io.Closer, error) {
	if configDir == "" {
		l := New(io.Discard, level, format)
		slog.SetDefault(l)
		return l, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(filepath.Join(configDir, LogFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, err
	}

	l := New(f, level, format)
	slog.SetDefault(l)
	return l, f, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
