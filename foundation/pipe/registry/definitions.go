// File: definitions.go
// Title: Stage Definition Types
// Description: Describes pipeline stages: their value kinds, parameters
//              and usage examples.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial object and method definitions
// - 2026-10-19 v0.2.0: Stage and parameter definitions

package registry

import (
	mdwlog "github.com/msto63/cstring/foundation/core/log"
)

// Kind is the shape of a pipeline value
type Kind int

const (
	// KindBuffer is a single string buffer
	KindBuffer Kind = iota
	// KindArray is an array of string buffers
	KindArray
	// KindAny accepts either shape
	KindAny
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindArray:
		return "array"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Accepts reports whether a value of kind v can be passed to a stage expecting k
func (k Kind) Accepts(v Kind) bool {
	return k == KindAny || k == v
}

// ParamType is the expected type of a parameter value
type ParamType string

const (
	TypeString ParamType = "string" // any text, may be empty
	TypeInt    ParamType = "int"    // signed integer
	TypeChar   ParamType = "char"   // exactly one character
	TypeSide   ParamType = "side"   // head, tail or both
)

// Options configures registry behavior
type Options struct {
	Logger              *mdwlog.Logger
	EnableAbbreviations bool
	EnableAliases       bool
}

// StageDefinition defines a pipeline stage
type StageDefinition struct {
	Name        string             // Stage name (e.g. "trim")
	Description string             // Short description
	Input       Kind               // Accepted input
	Output      Kind               // Produced output
	Params      []*ParamDefinition // Parameters in positional order
	Aliases     []string           // Alternative names
	Examples    []string           // Usage examples
}

// Param returns the parameter definition with the given name
func (d *StageDefinition) Param(name string) (*ParamDefinition, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Elementwise reports whether the stage maps one buffer to another and may
// therefore be applied to every element of an array
func (d *StageDefinition) Elementwise() bool {
	return d.Input == KindBuffer && d.Output == KindBuffer
}

// ParamDefinition defines a stage parameter
type ParamDefinition struct {
	Name        string    // Parameter name
	Type        ParamType // Expected type
	Required    bool      // Whether the parameter must be given
	Default     string    // Default value in source form
	Description string    // Parameter description
	Values      []string  // Allowed values (for enums)
}
