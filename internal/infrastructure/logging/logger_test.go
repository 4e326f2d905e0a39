package logging

import (
	"log/slog"
	"testing"

	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/config"
)

func TestNew_JSONFormat(t *testing.T) {
	logger := New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "1.0.0")

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNew_TextFormat(t *testing.T) {
	logger := New(config.LoggingConfig{
		Level:  "debug",
		Format: "text",
		Output: "stderr",
	}, "1.0.0")

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning level", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "unknown defaults to info", input: "unknown", expected: slog.LevelInfo},
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
		{name: "mixed case", input: "DeBuG", expected: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWith(t *testing.T) {
	base := Default()
	child := base.With("component", "test")

	if child == nil {
		t.Fatal("expected non-nil logger")
	}
	if child == base {
		t.Error("With should return a new logger")
	}
}
