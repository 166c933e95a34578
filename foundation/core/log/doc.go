// Package log provides structured logging for cstring tools.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with JSON, text, logfmt and
//              styled console formats, contextual fields, correlation IDs
//              and a timer for operation durations. The buffer core never
//              logs; the pipeline executor, history store and command line
//              tool do.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Trimmed to synchronous logging for command line use
//
// Usage:
//
//	logger := mdwlog.NewWithConfig(mdwlog.Config{
//		Level:  mdwlog.LevelDebug,
//		Format: mdwlog.FormatConsole,
//		Name:   "cstr",
//	}).WithCorrelationID(runID)
//
//	timer := logger.StartTimer("stage split")
//	// ... run the stage
//	timer.WithField("tokens", n).Stop()
package log
