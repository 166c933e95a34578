// Package error provides the structured error type used across cstring.
//
// Package: error
// Title: Structured Error Handling
// Description: Errors carry a code, a severity, the failing operation,
//              free-form details, an optional cause and a stack trace.
//              The buffer core itself never returns errors; its value-level
//              contracts (no-ops, -1 sentinels, untouched outputs) stay as
//              they are. This package serves the invariant checker and the
//              layers built on the core.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Codes for buffer, pipeline and storage failures
//
// Usage:
//
//	import mdwerror "github.com/msto63/cstring/foundation/core/error"
//
//	err := mdwerror.New("unknown stage").
//		WithCode(mdwerror.CodeUnknownStage).
//		WithOperation("pipe.Execute").
//		WithDetail("stage", "frobnicate")
//
//	if mdwerror.HasCode(err, mdwerror.CodeUnknownStage) {
//		// report usage
//	}
package error
