// File: pipe.go
// Title: Pipeline Engine
// Description: High-level interface combining parser, stage registry and
//              executor: parse, statically check and run pipeline
//              expressions over cstring buffers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine implementation
// - 2026-10-19 v0.2.0: Pipeline engine with static kind checking

package pipe

import (
	"context"
	"fmt"
	"strings"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/ast"
	"github.com/msto63/cstring/foundation/pipe/executor"
	"github.com/msto63/cstring/foundation/pipe/parser"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Result is the outcome of a pipeline run
type Result[T cstring.Element] = executor.Result[T]

// Engine parses and runs pipeline expressions
type Engine[T cstring.Element] struct {
	parser   *parser.Parser
	executor *executor.Engine[T]
	registry *registry.Registry
	logger   *mdwlog.Logger
	options  Options
}

// Options configures the pipeline engine
type Options struct {
	Logger              *mdwlog.Logger
	MaxInputLength      int
	MaxStages           int
	Defaults            map[string]map[string]string
	EnableAbbreviations bool
	EnableAliases       bool
}

// DefaultOptions returns options with aliases and abbreviations enabled
func DefaultOptions() Options {
	return Options{
		MaxInputLength:      4096,
		MaxStages:           32,
		EnableAbbreviations: true,
		EnableAliases:       true,
	}
}

// New creates a pipeline engine
func New[T cstring.Element](opts Options) (*Engine[T], error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = 4096
	}
	if opts.MaxStages == 0 {
		opts.MaxStages = 32
	}

	logger := opts.Logger.WithField("component", "pipe-engine")

	reg, err := registry.New(registry.Options{
		Logger:              opts.Logger,
		EnableAbbreviations: opts.EnableAbbreviations,
		EnableAliases:       opts.EnableAliases,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stage registry: %w", err)
	}

	exec, err := executor.New[T](executor.Options{
		Logger:    opts.Logger,
		Registry:  reg,
		MaxStages: opts.MaxStages,
		Defaults:  normalizeDefaults(opts.Defaults),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pipeline executor: %w", err)
	}

	engine := &Engine[T]{
		parser: parser.New(parser.Options{
			Logger:         opts.Logger,
			MaxInputLength: opts.MaxInputLength,
			MaxStages:      opts.MaxStages,
		}),
		executor: exec,
		registry: reg,
		logger:   logger,
		options:  opts,
	}

	logger.Debug("Pipeline engine initialized", mdwlog.Fields{
		"maxInputLength":      opts.MaxInputLength,
		"maxStages":           opts.MaxStages,
		"enableAbbreviations": opts.EnableAbbreviations,
		"enableAliases":       opts.EnableAliases,
	})

	return engine, nil
}

// Parse parses an expression without executing it
func (e *Engine[T]) Parse(expr string) (*ast.Pipeline, error) {
	return e.parser.Parse(expr)
}

// Validate parses the expression and checks stage names, parameters and
// the buffer/array flow between stages without running it
func (e *Engine[T]) Validate(expr string) (registry.Kind, error) {
	p, err := e.Parse(expr)
	if err != nil {
		return registry.KindBuffer, err
	}
	return e.Check(p)
}

// Check verifies a parsed pipeline and returns the kind of its result
func (e *Engine[T]) Check(p *ast.Pipeline) (registry.Kind, error) {
	kind := registry.KindBuffer
	defaults := normalizeDefaults(e.options.Defaults)

	for i, stage := range p.Stages {
		def, err := e.registry.Resolve(stage.Name)
		if err == nil {
			switch {
			case def.Input.Accepts(kind):
				kind = def.Output
			case def.Elementwise() && kind == registry.KindArray:
			default:
				err = mdwerrors.PipeTypeMismatch(def.Name, def.Input.String(), kind.String())
			}
		}
		if err == nil {
			_, err = e.registry.Bind(stage, defaults[def.Name])
		}
		if err != nil {
			if me, ok := err.(*mdwerror.Error); ok {
				me.WithDetail("stage", i).WithPosition(stage.Pos.Offset, stage.Pos.Line, stage.Pos.Column)
			}
			return kind, err
		}
	}
	return kind, nil
}

// Execute parses and runs expr on input
func (e *Engine[T]) Execute(ctx context.Context, expr string, input *cstring.Buffer[T]) (*Result[T], error) {
	p, err := e.Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.executor.Execute(ctx, p, input)
}

// ExecuteString runs expr on a Go string
func (e *Engine[T]) ExecuteString(ctx context.Context, expr, input string) (*Result[T], error) {
	return e.Execute(ctx, expr, cstring.FromString[T](input))
}

// Run executes an already parsed pipeline
func (e *Engine[T]) Run(ctx context.Context, p *ast.Pipeline, input *cstring.Buffer[T]) (*Result[T], error) {
	return e.executor.Execute(ctx, p, input)
}

// RegisterStage adds a custom stage
func (e *Engine[T]) RegisterStage(def *registry.StageDefinition, fn executor.StageFunc[T]) error {
	return e.executor.RegisterStage(def, fn)
}

// Registry returns the stage registry
func (e *Engine[T]) Registry() *registry.Registry {
	return e.registry
}

// Stages returns the definitions of all executable stages
func (e *Engine[T]) Stages() []*registry.StageDefinition {
	var defs []*registry.StageDefinition
	for _, name := range e.executor.Stages() {
		if def, err := e.registry.Resolve(name); err == nil {
			defs = append(defs, def)
		}
	}
	return defs
}

// Usage renders a one-line synopsis of a stage:
//
//	fix length [fill=" "] [mode="tail"]
func Usage(def *registry.StageDefinition) string {
	parts := []string{def.Name}
	for _, p := range def.Params {
		if p.Required {
			parts = append(parts, p.Name)
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s=%q]", p.Name, p.Default))
	}
	return strings.Join(parts, " ")
}

func normalizeDefaults(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for stage, params := range in {
		m := make(map[string]string, len(params))
		for k, v := range params {
			m[strings.ToLower(k)] = v
		}
		out[strings.ToLower(stage)] = m
	}
	return out
}
