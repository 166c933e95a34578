// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that callers can decide
//              how loudly to report them.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-19 v0.2.0: Severity mapping for buffer and pipeline codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad input that the caller can correct
	SeverityLow Severity = iota

	// SeverityMedium indicates an operation that failed but left state intact
	SeverityMedium

	// SeverityHigh indicates a failure of a backing resource (storage, files)
	SeverityHigh

	// SeverityCritical indicates broken internal invariants or exhausted memory
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should be surfaced loudly
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeAllocationFailed, CodeInvariantViolated, CodeDataCorruption:
		return SeverityCritical

	case CodeStorageError, CodeEnvironmentError, CodeInternal:
		return SeverityHigh

	case CodeExecutionFailed, CodeCancelled, CodeTimeout, CodeConfigError,
		CodeMissingConfig, CodeInvalidConfig:
		return SeverityMedium

	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength, CodeInvalidOperation,
		CodeParseError, CodeUnknownStage, CodeTypeMismatch:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
