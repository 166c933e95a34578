// File: doc.go
// Title: Pipeline Parser Package Documentation
// Description: Lexical analyzer and parser for pipeline expressions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-19 v0.2.0: Pipeline expressions

/*
Package parser turns pipeline expressions into ast.Pipeline values.

An expression is a sequence of stages separated by "|". Each stage is a
name followed by parameters, either positional or written as name=value:

	split " " max=3 | reverse | join sep="-"

Values are double or single quoted strings (with \n \t \r \0 \\ \" \'
escapes), integers with an optional minus sign, or bare words such as
both or tail. Errors carry the line and column of the offending token and
are reported with code PARSE_ERROR.
*/
package parser
