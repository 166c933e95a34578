// File: binding.go
// Title: Stage Parameter Binding
// Description: Binds the positional and named parameters of a parsed stage
//              to its definition, applying configured and built-in
//              defaults and converting values to their declared types.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package registry

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	"github.com/msto63/cstring/foundation/pipe/ast"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Binding holds the typed parameter values of one stage invocation
type Binding struct {
	Definition *StageDefinition
	text       map[string]string
	ints       map[string]int
	sides      map[string]cstring.Side
}

// Text returns the raw text of a parameter
func (b *Binding) Text(name string) string { return b.text[name] }

// Int returns an integer parameter
func (b *Binding) Int(name string) int { return b.ints[name] }

// Side returns a side parameter
func (b *Binding) Side(name string) cstring.Side { return b.sides[name] }

// Bind resolves the stage and assigns its parameters. Positional
// parameters bind in definition order. Missing parameters take their value
// from defaults (keyed by parameter name) and then from the definition.
func (r *Registry) Bind(stage *ast.Stage, defaults map[string]string) (*Binding, error) {
	def, err := r.Resolve(stage.Name)
	if err != nil {
		return nil, err
	}

	assigned := make(map[string]string, len(def.Params))
	next := 0
	for _, p := range stage.Params {
		if p.IsPositional() {
			if next >= len(def.Params) {
				return nil, mdwerrors.PipeParameterInvalid(def.Name, fmt.Sprintf("#%d", next+1), p.Value.Text,
					fmt.Sprintf("at most %d parameters", len(def.Params)))
			}
			name := def.Params[next].Name
			if _, dup := assigned[name]; dup {
				return nil, mdwerrors.PipeParameterInvalid(def.Name, name, p.Value.Text, "a single value")
			}
			assigned[name] = p.Value.Text
			next++
			continue
		}

		name := strings.ToLower(p.Name)
		if _, ok := def.Param(name); !ok {
			return nil, mdwerrors.PipeParameterInvalid(def.Name, p.Name, p.Value.Text,
				"one of "+paramNames(def))
		}
		if _, dup := assigned[name]; dup {
			return nil, mdwerrors.PipeParameterInvalid(def.Name, p.Name, p.Value.Text, "a single value")
		}
		assigned[name] = p.Value.Text
	}

	b := &Binding{
		Definition: def,
		text:       make(map[string]string, len(def.Params)),
		ints:       make(map[string]int),
		sides:      make(map[string]cstring.Side),
	}

	for _, pdef := range def.Params {
		raw, ok := assigned[pdef.Name]
		if !ok {
			raw, ok = defaults[pdef.Name]
		}
		if !ok {
			if pdef.Required {
				return nil, mdwerrors.PipeParameterInvalid(def.Name, pdef.Name, nil, "a required "+string(pdef.Type))
			}
			raw = pdef.Default
		}
		if err := b.set(pdef, raw); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func (b *Binding) set(pdef *ParamDefinition, raw string) error {
	stage := b.Definition.Name

	switch pdef.Type {
	case TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return mdwerrors.PipeParameterInvalid(stage, pdef.Name, raw, "an integer")
		}
		b.ints[pdef.Name] = n

	case TypeChar:
		if utf8.RuneCountInString(raw) != 1 {
			return mdwerrors.PipeParameterInvalid(stage, pdef.Name, raw, "a single character")
		}

	case TypeSide:
		side, err := cstring.ParseSide(raw)
		if err != nil {
			return mdwerrors.PipeParameterInvalid(stage, pdef.Name, raw, "head, tail or both")
		}
		b.sides[pdef.Name] = side
	}

	if len(pdef.Values) > 0 && pdef.Type != TypeSide && !contains(pdef.Values, raw) {
		return mdwerrors.PipeParameterInvalid(stage, pdef.Name, raw, "one of "+strings.Join(pdef.Values, ", "))
	}

	b.text[pdef.Name] = raw
	return nil
}

func paramNames(def *StageDefinition) string {
	if len(def.Params) == 0 {
		return "no parameters"
	}
	names := make([]string, len(def.Params))
	for i, p := range def.Params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
