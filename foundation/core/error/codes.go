// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used by the string core diagnostics,
//              the pipeline language, configuration, history storage and
//              the command line front end.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Replaced service/auth/business codes with buffer,
//                      pipeline and storage codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCancelled    Code = "CANCELLED"
	CodeTimeout      Code = "TIMEOUT"

	// Buffer core
	CodeAllocationFailed   Code = "ALLOCATION_FAILED"
	CodeInvariantViolated  Code = "INVARIANT_VIOLATED"
	CodeInvalidOperation   Code = "INVALID_OPERATION"

	// Pipeline language
	CodeParseError      Code = "PARSE_ERROR"
	CodeUnknownStage    Code = "UNKNOWN_STAGE"
	CodeTypeMismatch    Code = "TYPE_MISMATCH"
	CodeExecutionFailed Code = "EXECUTION_FAILED"

	// Storage
	CodeStorageError   Code = "STORAGE_ERROR"
	CodeDataCorruption Code = "DATA_CORRUPTION"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeMissingConfig    Code = "MISSING_CONFIG"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
	CodeInvalidLength    Code = "INVALID_LENGTH"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	return c.Category() != ""
}

// Category returns the high-level category of the error code, or an empty
// string for codes this package does not define.
func (c Code) Category() string {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCancelled, CodeTimeout:
		return "generic"
	case CodeAllocationFailed, CodeInvariantViolated, CodeInvalidOperation:
		return "buffer"
	case CodeParseError, CodeUnknownStage, CodeTypeMismatch, CodeExecutionFailed:
		return "pipeline"
	case CodeStorageError, CodeDataCorruption:
		return "storage"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength:
		return "validation"
	default:
		return ""
	}
}

// ExitCode maps an error code to a process exit status for the CLI.
// Usage errors map to 2, everything else to 1.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "pipeline", "validation", "configuration":
		return 2
	default:
		if c == CodeInvalidInput {
			return 2
		}
		return 1
	}
}
