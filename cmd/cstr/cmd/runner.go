// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     cmd
// Description: Unit independent access to the generic pipe engine
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"strconv"
	"time"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	"github.com/msto63/cstring/foundation/pipe"
	"github.com/msto63/cstring/foundation/pipe/ast"
	"github.com/msto63/cstring/foundation/pipe/executor"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
	"github.com/msto63/cstring/internal/tui/playground"
)

// outcome is a pipeline result detached from its code unit
type outcome struct {
	ID       string
	Kind     registry.Kind
	Output   string
	Elements []string
	Stages   []executor.StageResult
	Duration time.Duration
}

// runner hides the code unit type parameter from the commands
type runner interface {
	Unit() string
	Parse(expr string) (*ast.Pipeline, error)
	Run(ctx context.Context, p *ast.Pipeline, input string) (*outcome, error)
	Definitions() []*registry.StageDefinition
	Registry() *registry.Registry
	Evaluator() playground.Evaluator
	Find(haystack, needle string, reverse, all bool) findResult
}

type engineRunner[T cstring.Element] struct {
	unit   string
	engine *pipe.Engine[T]
}

// newRunner creates the engine for unit: byte, rune or utf16
func newRunner(unit string, opts pipe.Options) (runner, error) {
	switch unit {
	case "byte":
		return newEngineRunner[byte](unit, opts)
	case "rune":
		return newEngineRunner[rune](unit, opts)
	case "utf16":
		return newEngineRunner[uint16](unit, opts)
	}
	return nil, mdwerrors.InvalidInput(mdwerrors.ModuleCLI, "unit", unit, "byte, rune or utf16")
}

func newEngineRunner[T cstring.Element](unit string, opts pipe.Options) (runner, error) {
	engine, err := pipe.New[T](opts)
	if err != nil {
		return nil, err
	}
	return &engineRunner[T]{unit: unit, engine: engine}, nil
}

func (r *engineRunner[T]) Unit() string { return r.unit }

func (r *engineRunner[T]) Parse(expr string) (*ast.Pipeline, error) {
	return r.engine.Parse(expr)
}

func (r *engineRunner[T]) Run(ctx context.Context, p *ast.Pipeline, input string) (*outcome, error) {
	res, err := r.engine.Run(ctx, p, cstring.FromString[T](input))
	if err != nil {
		return nil, err
	}
	defer res.Value.Free()

	out := &outcome{
		ID:       res.ID,
		Kind:     res.Value.Kind(),
		Output:   res.Value.String(),
		Stages:   res.Stages,
		Duration: res.Duration,
	}
	if out.Kind == registry.KindArray {
		out.Elements = res.Value.Strings()
	}
	return out, nil
}

func (r *engineRunner[T]) Definitions() []*registry.StageDefinition {
	return r.engine.Stages()
}

func (r *engineRunner[T]) Registry() *registry.Registry {
	return r.engine.Registry()
}

func (r *engineRunner[T]) Evaluator() playground.Evaluator {
	return playground.NewEvaluator(r.engine)
}

func (r *engineRunner[T]) Find(haystack, needle string, reverse, all bool) findResult {
	return findIn[T](haystack, needle, reverse, all)
}

// stage builds a pipeline stage from named parameters
func stage(name string, params ...ast.Param) *ast.Stage {
	return &ast.Stage{Name: name, Params: params}
}

func strParam(name, value string) ast.Param {
	return ast.Param{Name: name, Value: ast.Value{Type: ast.ValueString, Text: value}}
}

func intParam(name string, value int) ast.Param {
	return ast.Param{Name: name, Value: ast.Value{Type: ast.ValueNumber, Text: strconv.Itoa(value)}}
}

func pipeline(stages ...*ast.Stage) *ast.Pipeline {
	p := &ast.Pipeline{Stages: stages}
	p.Source = p.String()
	return p
}
