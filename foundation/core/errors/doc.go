// Package errors provides the standard error constructors for all cstring
// modules.
//
// Package: errors
// Title: Standard Error Handling API
// Description: Builds structured errors (see foundation/core/error) with a
//              module name, operation, code and details so that errors from
//              the pipeline, configuration and history layers can be
//              reported and analysed uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for cross-module error standardization
// - 2026-10-19 v0.2.0: Constructors for cstring, pipe, config and history
//
// Usage:
//
//	err := mdwerrors.NewErrorBuilder(mdwerrors.ModulePipe).
//		Operation("execute").
//		Messagef("stage %s failed", name).
//		Cause(cause).
//		Code(mdwerror.CodeExecutionFailed).
//		Build()
//
//	if mdwerrors.IsModuleError(err, mdwerrors.ModulePipe) {
//		// ...
//	}
package errors
