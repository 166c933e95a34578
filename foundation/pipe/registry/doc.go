// File: doc.go
// Title: Stage Registry Package Documentation
// Description: Registry of pipeline stages with alias and abbreviation
//              resolution and parameter binding.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial registry implementation
// - 2026-10-19 v0.2.0: Pipeline stages

/*
Package registry describes the stages a pipeline can use.

Every stage has a StageDefinition naming the value kind it accepts and
produces and its parameters in positional order. Names resolve
case-insensitively, then through aliases (substring for substr) and, when
enabled, through generated three letter abbreviations (rvr for reverse).
Abbreviations shared by two stages are not resolvable.

Bind turns a parsed ast.Stage into a Binding with typed values:

	b, err := reg.Bind(stage, map[string]string{"mode": "head"})
	n := b.Int("length")
*/
package registry
