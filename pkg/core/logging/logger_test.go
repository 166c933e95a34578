package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("cstr")

	if cfg.Name != "cstr" {
		t.Errorf("Name = %q, want cstr", cfg.Name)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := NewLogger(LoggerConfig{Name: "cstr", Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["message"] != "shown" {
		t.Errorf("message = %v, want shown", entry["message"])
	}
	if entry["logger"] != "cstr" {
		t.Errorf("logger = %v, want cstr", entry["logger"])
	}
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggerConfig
	}{
		{"bad level", LoggerConfig{Level: "loud", Format: "text"}},
		{"bad format", LoggerConfig{Level: "info", Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, closer, err := NewLogger(tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if logger != nil {
				t.Error("logger should be nil on error")
			}
			if closer == nil {
				t.Error("closer must never be nil")
			}
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cstr.log")
	var buf bytes.Buffer

	logger, closer, err := NewLogger(LoggerConfig{Level: "info", Format: "text", File: path, Output: &buf})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("to both")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to both") {
		t.Errorf("file content = %q", data)
	}
	if !strings.Contains(buf.String(), "to both") {
		t.Errorf("console content = %q", buf.String())
	}
}

func TestNewSimpleLogger(t *testing.T) {
	if NewSimpleLogger("cstr") == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
}
