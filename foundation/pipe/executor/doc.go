// File: doc.go
// Title: Pipeline Executor Package Documentation
// Description: Executes pipelines over cstring buffers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial executor implementation
// - 2026-10-19 v0.2.0: Local generic stage execution

/*
Package executor runs parsed pipelines.

An Engine is generic over the cstring element type, so the same pipeline
can work on bytes, UTF-16 code units or runes:

	eng, _ := executor.New[rune](executor.Options{})
	res, err := eng.Execute(ctx, pipeline, cstring.FromString[rune]("a, b"))

The value passed between stages is a buffer or an array. Stages that map a
buffer to a buffer are applied to every element when they receive an
array. Query stages (find, count, compare, ...) replace the value with
their result rendered as text. Every run gets a UUID, is checked for
cancellation between stages and logs the duration of each stage.
*/
package executor
