// File: doc.go
// Title: Pipeline AST Package Documentation
// Description: Package ast holds the syntax tree of pipeline expressions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial package documentation
// - 2026-10-19 v0.2.0: Pipeline expressions

// Package ast holds the syntax tree produced by the pipeline parser.
//
//	trim | split ";" max=3 | join sep=","
//
// parses into a Pipeline of three Stages. Parameters are either named
// (sep=",") or positional (";").
package ast
