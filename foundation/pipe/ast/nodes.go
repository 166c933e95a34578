// File: nodes.go
// Title: Pipeline AST Node Definitions
// Description: Defines the syntax tree of a pipeline expression: a pipeline
//              of stages, each with named or positional parameters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-19 v0.2.0: Reduced to pipelines, stages and literal values

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Position represents a position in the source expression
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ValueType identifies the literal kind of a parameter value
type ValueType int

const (
	// ValueString is a quoted string literal
	ValueString ValueType = iota
	// ValueNumber is an integer literal
	ValueNumber
	// ValueIdent is a bare word such as both or tail
	ValueIdent
)

// String returns the name of the value type
func (vt ValueType) String() string {
	switch vt {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueIdent:
		return "identifier"
	default:
		return "unknown"
	}
}

// Value is a literal parameter value. Text holds the decoded string for
// strings and the source text otherwise.
type Value struct {
	Type ValueType
	Text string
	Pos  Position
}

// Int returns the value as an integer
func (v Value) Int() (int, error) {
	return strconv.Atoi(v.Text)
}

// String renders the value in source form
func (v Value) String() string {
	if v.Type == ValueString {
		return strconv.Quote(v.Text)
	}
	return v.Text
}

// Param is a stage parameter. Name is empty for positional parameters.
type Param struct {
	Name  string
	Value Value
	Pos   Position
}

// IsPositional reports whether the parameter was given without a name
func (p Param) IsPositional() bool {
	return p.Name == ""
}

// String renders the parameter in source form
func (p Param) String() string {
	if p.IsPositional() {
		return p.Value.String()
	}
	return p.Name + "=" + p.Value.String()
}

// Stage is one step of a pipeline
type Stage struct {
	Name   string
	Params []Param
	Pos    Position
}

// Named returns the named parameter with the given name
func (s *Stage) Named(name string) (Param, bool) {
	for _, p := range s.Params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Param{}, false
}

// Positional returns the positional parameters in order
func (s *Stage) Positional() []Param {
	var out []Param
	for _, p := range s.Params {
		if p.IsPositional() {
			out = append(out, p)
		}
	}
	return out
}

// String renders the stage in source form
func (s *Stage) String() string {
	parts := make([]string, 0, len(s.Params)+1)
	parts = append(parts, s.Name)
	for _, p := range s.Params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

// Validate performs basic structural checks
func (s *Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("stage at %s has no name", s.Pos)
	}
	seen := make(map[string]bool)
	for _, p := range s.Params {
		if p.IsPositional() {
			continue
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("stage %s: duplicate parameter %s at %s", s.Name, p.Name, p.Pos)
		}
		seen[key] = true
	}
	return nil
}

// Pipeline is a sequence of stages separated by "|"
type Pipeline struct {
	Stages []*Stage
	Source string
}

// String renders the pipeline in canonical source form
func (p *Pipeline) String() string {
	parts := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		parts[i] = s.String()
	}
	return strings.Join(parts, " | ")
}

// Validate validates every stage
func (p *Pipeline) Validate() error {
	if len(p.Stages) == 0 {
		return fmt.Errorf("pipeline has no stages")
	}
	for _, s := range p.Stages {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// StageNames returns the stage names in order
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.Stages))
	for i, s := range p.Stages {
		names[i] = s.Name
	}
	return names
}
