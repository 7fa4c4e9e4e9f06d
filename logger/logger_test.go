// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := parseLogLevel(tt.input); result != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/tmp/x.log")

	config := DefaultConfig().ApplyEnv()
	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", config.Level)
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "/tmp/x.log" {
		t.Errorf("FilePath = %q, want /tmp/x.log", config.FilePath)
	}
}

func TestInitialize_Console(t *testing.T) {
	defer func() { logger = nil }()

	var buf bytes.Buffer
	config := DefaultConfig()
	config.Level = "WARN"
	config.ConsoleFormat = "json"
	if err := initialize(config, &buf); err != nil {
		t.Fatal(err)
	}

	Info("hidden")
	Warning("tile grass")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("INFO message logged at WARN level:", out)
	}
	if !strings.Contains(out, `"msg":"tile grass"`) {
		t.Error("expected JSON warning, got:", out)
	}
}

func TestInitialize_File(t *testing.T) {
	defer func() { logger = nil }()

	path := filepath.Join(t.TempDir(), "logs", "tilegen.log")
	var console bytes.Buffer
	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = path
	if err := initialize(config, &console); err != nil {
		t.Fatal(err)
	}

	Error("publish failed", "type", "dirt")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, out := range []string{string(data), console.String()} {
		if !strings.Contains(out, "publish failed") || !strings.Contains(out, "type=dirt") {
			t.Error("expected message in both outputs, got:", out)
		}
	}
}

func TestInitialize_MixedFormats(t *testing.T) {
	defer func() { logger = nil }()

	path := filepath.Join(t.TempDir(), "tilegen.log")
	var console bytes.Buffer
	config := DefaultConfig()
	config.ConsoleFormat = "json"
	config.FileEnabled = true
	config.FilePath = path
	config.FileFormat = "text"
	if err := initialize(config, &console); err != nil {
		t.Fatal(err)
	}

	Info("wrote tile", "path", "grass.png")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(console.String(), `"path":"grass.png"`) {
		t.Error("expected JSON on console, got:", console.String())
	}
	if !strings.Contains(string(data), "path=grass.png") {
		t.Error("expected text in file, got:", string(data))
	}
}

func TestInitialize_FileWithoutPath(t *testing.T) {
	defer func() { logger = nil }()

	config := DefaultConfig()
	config.FileEnabled = true
	config.FilePath = ""
	if err := initialize(config, &bytes.Buffer{}); err == nil {
		t.Error("expected error for file logging without a path")
	}
}

func TestUninitialized(t *testing.T) {
	logger = nil
	// Must not panic
	Debug("x")
	Error("x", "n", 1)
}
