package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWriterRespectsLevel(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	closeFn, err := Init(Config{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer closeFn()
	defer Discard()

	Info("hidden message")
	Warn("visible message", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "key=value") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestInitDebugEnv(t *testing.T) {
	t.Setenv(EnvDebug, "true")
	var buf bytes.Buffer
	if _, err := Init(Config{Level: "error", Writer: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Discard()

	Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("debug env should force debug level: %q", buf.String())
	}
}

func TestInitFile(t *testing.T) {
	t.Setenv(EnvDebug, "")
	path := filepath.Join(t.TempDir(), "logs", "soulguide.log")
	closeFn, err := Init(Config{Level: "info", File: path})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Error("written to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}
	Discard()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file content = %q", string(data))
	}
}
