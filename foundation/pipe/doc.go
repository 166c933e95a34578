// File: doc.go
// Title: Pipeline Package Documentation
// Description: Pipeline language over cstring buffers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial package documentation
// - 2026-10-19 v0.2.0: Pipeline language

/*
Package pipe chains cstring operations into small programs:

	trim | split ";" max=-1 | trim | join sep=","

Each stage names an operation followed by positional or name=value
parameters. The value passed along is a buffer or, after split, an array
of buffers. Buffer stages given an array apply to every element; join and
pick turn an array back into a buffer.

Subpackages:

  - ast: syntax tree
  - parser: lexer and recursive descent parser
  - registry: stage definitions, aliases, abbreviations, parameter binding
  - executor: generic execution engine

Typical use:

	eng, err := pipe.New[byte](pipe.DefaultOptions())
	res, err := eng.ExecuteString(ctx, `split "," | pick -1`, "a,b,c")
	fmt.Println(res.Value) // c
*/
package pipe
