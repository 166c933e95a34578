// File: severity_test.go
// Title: Error Severity Tests
// Description: Tests for severity names and code-derived severities.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity tests
// - 2026-10-19 v0.2.0: Buffer and pipeline code mappings

package error

import (
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeverityShouldAlert(t *testing.T) {
	if SeverityMedium.ShouldAlert() {
		t.Error("SeverityMedium.ShouldAlert() = true, want false")
	}
	if !SeverityHigh.ShouldAlert() {
		t.Error("SeverityHigh.ShouldAlert() = false, want true")
	}
	if SeverityCritical.Level() != 3 {
		t.Errorf("SeverityCritical.Level() = %d, want 3", SeverityCritical.Level())
	}
}

func TestGetSeverityFromCode(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvariantViolated, SeverityCritical},
		{CodeAllocationFailed, SeverityCritical},
		{CodeStorageError, SeverityHigh},
		{CodeExecutionFailed, SeverityMedium},
		{CodeParseError, SeverityLow},
		{CodeInvalidInput, SeverityLow},
		{Code("OTHER"), SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := GetSeverityFromCode(tt.code); got != tt.want {
				t.Errorf("GetSeverityFromCode(%v) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
