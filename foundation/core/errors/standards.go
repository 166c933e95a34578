// File: standards.go
// Title: Error Standards for cstring Modules
// Description: Module identifiers and the per-module convenience
//              constructors used by the buffer core diagnostics, the
//              pipeline language, configuration and history storage.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-10-19 v0.2.0: Module set replaced by cstring, pipe, config, history, cli

package errors

import (
	"fmt"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleCstring = "cstring"
	ModulePipe    = "pipe"
	ModuleConfig  = "config"
	ModuleHistory = "history"
	ModuleCLI     = "cli"
)

// CstringInvariantViolated reports a broken buffer invariant found by Check.
func CstringInvariantViolated(operation, invariant string, size, capacity int) *mdwerror.Error {
	return NewErrorBuilder(ModuleCstring).
		Operation(operation).
		Messagef("buffer invariant violated: %s", invariant).
		Code(mdwerror.CodeInvariantViolated).
		Detail("invariant", invariant).
		Detail("size", size).
		Detail("capacity", capacity).
		Severity(mdwerror.SeverityCritical).
		Build()
}

// CstringAllocationFailed reports a storage request that cannot be served.
// The buffer core panics with it.
func CstringAllocationFailed(operation string, requested int) *mdwerror.Error {
	return NewErrorBuilder(ModuleCstring).
		Operation(operation).
		Messagef("cannot allocate storage for %d elements", requested).
		Code(mdwerror.CodeAllocationFailed).
		Detail("requested", requested).
		Severity(mdwerror.SeverityCritical).
		Build()
}

// PipeParseError reports a syntax error in a pipeline expression. cause may
// carry the parser's own error value and may be nil.
func PipeParseError(message string, offset, line, column int, cause error) *mdwerror.Error {
	return NewErrorBuilder(ModulePipe).
		Operation("parse").
		Message(message).
		Cause(cause).
		Code(mdwerror.CodeParseError).
		Detail("offset", offset).
		Detail("line", line).
		Detail("column", column).
		Severity(mdwerror.SeverityLow).
		Build()
}

// PipeUnknownStage reports a stage name that no handler is registered for.
func PipeUnknownStage(stage string) *mdwerror.Error {
	return NewErrorBuilder(ModulePipe).
		Operation("execute").
		Messagef("unknown stage %q", stage).
		Code(mdwerror.CodeUnknownStage).
		Detail("stage", stage).
		Severity(mdwerror.SeverityLow).
		Build()
}

// PipeParameterInvalid reports a missing or malformed stage parameter.
func PipeParameterInvalid(stage, param string, value interface{}, expected string) *mdwerror.Error {
	return NewErrorBuilder(ModulePipe).
		Operation(stage).
		Messagef("stage %s: invalid parameter %s (expected %s)", stage, param, expected).
		Code(mdwerror.CodeInvalidInput).
		Detail("stage", stage).
		Detail("param", param).
		Detail("value", value).
		Detail("expected", expected).
		Severity(mdwerror.SeverityLow).
		Build()
}

// PipeTypeMismatch reports a stage applied to the wrong kind of value.
func PipeTypeMismatch(stage, want, got string) *mdwerror.Error {
	return NewErrorBuilder(ModulePipe).
		Operation(stage).
		Messagef("stage %s expects %s input, got %s", stage, want, got).
		Code(mdwerror.CodeTypeMismatch).
		Detail("want", want).
		Detail("got", got).
		Severity(mdwerror.SeverityLow).
		Build()
}

// ConfigKeyMissing reports a required configuration key that is not set.
func ConfigKeyMissing(key string) *mdwerror.Error {
	return NewErrorBuilder(ModuleConfig).
		Operation("get").
		Messagef("configuration key %q not found", key).
		Code(mdwerror.CodeMissingConfig).
		Detail("key", key).
		Severity(mdwerror.SeverityMedium).
		Build()
}

// ConfigTypeMismatch reports a configuration value of an unexpected type.
func ConfigTypeMismatch(key, expected string, value interface{}) *mdwerror.Error {
	return NewErrorBuilder(ModuleConfig).
		Operation("get").
		Messagef("configuration key %q is not a %s", key, expected).
		Code(mdwerror.CodeInvalidConfig).
		Detail("key", key).
		Detail("expected", expected).
		Detail("actual_type", fmt.Sprintf("%T", value)).
		Severity(mdwerror.SeverityMedium).
		Build()
}

// HistoryStorageFailed wraps a database failure of the run history.
func HistoryStorageFailed(operation string, cause error) *mdwerror.Error {
	return NewErrorBuilder(ModuleHistory).
		Operation(operation).
		Messagef("history %s failed", operation).
		Cause(cause).
		Code(mdwerror.CodeStorageError).
		Severity(mdwerror.SeverityHigh).
		Build()
}

// HistoryRunNotFound reports an unknown run ID.
func HistoryRunNotFound(id string) *mdwerror.Error {
	return NotFound(ModuleHistory, "get", id)
}

// IsModuleError checks if an error belongs to a specific module
func IsModuleError(err error, module string) bool {
	return ExtractModule(err) == module
}
