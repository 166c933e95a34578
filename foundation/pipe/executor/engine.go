// File: engine.go
// Title: Pipeline Execution Engine
// Description: Executes parsed pipelines stage by stage over a cstring
//              buffer, binding parameters through the stage registry and
//              timing every stage.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial executor implementation
// - 2026-10-19 v0.2.0: Local stage execution generic over element type

package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/cstring/foundation/core/error"
	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/ast"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Engine executes pipelines over buffers of element type T
type Engine[T cstring.Element] struct {
	registry *registry.Registry
	stages   map[string]StageFunc[T]
	logger   *mdwlog.Logger
	options  Options
	mutex    sync.RWMutex
}

// Options configures executor behavior
type Options struct {
	Logger    *mdwlog.Logger
	Registry  *registry.Registry
	MaxStages int
	// Defaults overrides built-in parameter defaults per stage, e.g.
	// Defaults["split"]["delim"] = ","
	Defaults map[string]map[string]string
}

// StageResult describes one executed stage
type StageResult struct {
	Name     string        `json:"name" yaml:"name"`
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output" yaml:"output"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a pipeline run
type Result[T cstring.Element] struct {
	ID       string
	Value    Value[T]
	Stages   []StageResult
	Duration time.Duration
}

// New creates a pipeline engine
func New[T cstring.Element](opts Options) (*Engine[T], error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxStages == 0 {
		opts.MaxStages = 32
	}

	if opts.Registry == nil {
		reg, err := registry.New(registry.Options{
			Logger:              opts.Logger,
			EnableAbbreviations: true,
			EnableAliases:       true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize stage registry: %w", err)
		}
		opts.Registry = reg
	}

	engine := &Engine[T]{
		registry: opts.Registry,
		stages:   builtinStages[T](),
		logger:   opts.Logger.WithField("component", "pipe-executor"),
		options:  opts,
	}

	engine.logger.Debug("Pipeline executor initialized", mdwlog.Fields{
		"maxStages":  opts.MaxStages,
		"stageCount": len(engine.stages),
	})

	return engine, nil
}

// Registry returns the stage registry used for binding
func (e *Engine[T]) Registry() *registry.Registry {
	return e.registry
}

// RegisterStage adds a custom stage definition and its implementation
func (e *Engine[T]) RegisterStage(def *registry.StageDefinition, fn StageFunc[T]) error {
	if fn == nil {
		return mdwerrors.InvalidInput(mdwerrors.ModulePipe, "register", nil, "stage implementation")
	}
	if err := e.registry.Register(def); err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.stages[def.Name] = fn
	return nil
}

// Execute runs the pipeline on a copy of input. A nil input is treated as
// an empty buffer.
func (e *Engine[T]) Execute(ctx context.Context, p *ast.Pipeline, input *cstring.Buffer[T]) (*Result[T], error) {
	if p == nil || len(p.Stages) == 0 {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModulePipe, "execute", nil, "a pipeline with at least one stage")
	}
	if len(p.Stages) > e.options.MaxStages {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModulePipe, "execute", len(p.Stages),
			fmt.Sprintf("at most %d stages", e.options.MaxStages))
	}

	result := &Result[T]{
		ID:     uuid.NewString(),
		Stages: make([]StageResult, 0, len(p.Stages)),
	}
	logger := e.logger.WithCorrelationID(result.ID)
	start := time.Now()

	current := cstring.New[T]()
	if !input.IsAbsent() {
		current = input.Clone()
	}
	value := BufferValue(current)

	logger.Debug("Executing pipeline", mdwlog.Fields{
		"stages": strings.Join(p.StageNames(), "|"),
		"input":  current.Size(),
	})

	for i, stage := range p.Stages {
		if err := ctx.Err(); err != nil {
			value.Free()
			return nil, mdwerror.Wrap(err, "pipeline cancelled").
				WithCode(mdwerror.CodeCancelled).
				WithOperation("pipe.execute").
				WithDetail("stage", i)
		}

		next, sr, err := e.runStage(logger, stage, value)
		if err != nil {
			value.Free()
			if me, ok := err.(*mdwerror.Error); ok {
				me.WithDetail("stage", i).WithPosition(stage.Pos.Offset, stage.Pos.Line, stage.Pos.Column)
			}
			return nil, err
		}
		if next != value {
			value.Free()
		}
		value = next
		result.Stages = append(result.Stages, sr)
	}

	result.Value = value
	result.Duration = time.Since(start)

	logger.Debug("Pipeline completed", mdwlog.Fields{
		"stages":      len(result.Stages),
		"output":      value.Kind().String(),
		"duration_ms": float64(result.Duration.Nanoseconds()) / 1e6,
	})

	return result, nil
}

func (e *Engine[T]) runStage(logger *mdwlog.Logger, stage *ast.Stage, in Value[T]) (Value[T], StageResult, error) {
	def, err := e.registry.Resolve(stage.Name)
	if err != nil {
		return Value[T]{}, StageResult{}, err
	}

	e.mutex.RLock()
	fn, ok := e.stages[def.Name]
	e.mutex.RUnlock()
	if !ok {
		return Value[T]{}, StageResult{}, mdwerrors.PipeUnknownStage(stage.Name)
	}

	if !def.Input.Accepts(in.Kind()) && !(def.Elementwise() && in.Kind() == registry.KindArray) {
		return Value[T]{}, StageResult{}, mdwerrors.PipeTypeMismatch(def.Name, def.Input.String(), in.Kind().String())
	}

	args, err := e.registry.Bind(stage, e.options.Defaults[def.Name])
	if err != nil {
		return Value[T]{}, StageResult{}, err
	}

	timer := logger.StartTimer("stage " + def.Name).WithField("input", in.Kind().String())
	out, err := fn(in, args)
	if err != nil {
		timer.StopWithError(err)
		return Value[T]{}, StageResult{}, err
	}
	elapsed := timer.Stop()

	return out, StageResult{
		Name:     def.Name,
		Input:    in.Kind().String(),
		Output:   out.Kind().String(),
		Duration: elapsed,
	}, nil
}

// Stages returns the names of the stages this engine can execute
func (e *Engine[T]) Stages() []string {
	names := e.registry.Names()
	out := names[:0]

	e.mutex.RLock()
	defer e.mutex.RUnlock()
	for _, name := range names {
		if _, ok := e.stages[name]; ok {
			out = append(out, name)
		}
	}
	return out
}
