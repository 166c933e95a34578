// File: level_test.go
// Title: Log Level Tests
// Description: Tests for level names, parsing and filtering rules.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with level tests
// - 2026-10-19 v0.2.0: Structured parse errors

package log

import (
	"testing"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

func TestLevelStrings(t *testing.T) {
	tests := []struct {
		level Level
		long  string
		short string
	}{
		{LevelTrace, "trace", "TRC"},
		{LevelDebug, "debug", "DBG"},
		{LevelInfo, "info", "INF"},
		{LevelWarn, "warn", "WRN"},
		{LevelError, "error", "ERR"},
		{LevelFatal, "fatal", "FTL"},
		{LevelAudit, "audit", "AUD"},
		{Level(-1), "unknown", "???"},
		{Level(42), "unknown", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.long, func(t *testing.T) {
			if got := tt.level.String(); got != tt.long {
				t.Errorf("String() = %q, want %q", got, tt.long)
			}
			if got := tt.level.ShortString(); got != tt.short {
				t.Errorf("ShortString() = %q, want %q", got, tt.short)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"ftl", LevelFatal, false},
		{"audit", LevelAudit, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if err != nil && !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
				t.Errorf("ParseLevel(%q) error code = %v", tt.input, mdwerror.GetCode(err))
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	if LevelDebug.ShouldLog(LevelInfo) {
		t.Error("debug should not log at info")
	}
	if !LevelError.ShouldLog(LevelInfo) {
		t.Error("error should log at info")
	}
	if !LevelAudit.ShouldLog(LevelFatal + 5) {
		t.Error("audit should always log")
	}
	if len(AllLevels()) != 7 {
		t.Errorf("AllLevels() = %d levels, want 7", len(AllLevels()))
	}
}
