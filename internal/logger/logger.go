// Package logger provides a small slog-based logging wrapper.
//
// The chat TUI owns the terminal, so while it runs log records go to a file.
// One-shot commands log to stderr.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// EnvDebug forces debug level when set to "true"
const EnvDebug = "SOULGUIDE_DEBUG"

var (
	mu   sync.RWMutex
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
	file *os.File
)

// Config describes logger settings
type Config struct {
	Level string
	// File is the log file path; empty means Writer (or stderr) is used
	File   string
	Writer io.Writer
}

// Init (re)configures the global logger. It returns a close function that
// releases the log file, if one was opened.
func Init(cfg Config) (func() error, error) {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()

	level := parseLevel(cfg.Level)
	if os.Getenv(EnvDebug) == "true" {
		level = slog.LevelDebug
	}

	w := cfg.Writer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
			return noop, fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return noop, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		w = f
	}
	if w == nil {
		w = os.Stderr
	}

	base = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return Close, nil
}

// Discard silences all logging
func Discard() {
	mu.Lock()
	defer mu.Unlock()
	closeFileLocked()
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Close releases the log file opened by Init
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func noop() error { return nil }

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

func log(level slog.Level, msg string, args ...any) {
	mu.RLock()
	l := base
	mu.RUnlock()
	l.Log(context.Background(), level, msg, args...)
}

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
