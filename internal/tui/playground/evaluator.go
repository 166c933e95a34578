// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     playground
// Description: Bridges the unit specific pipe engine to the playground
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package playground

import (
	"context"
	"time"

	"github.com/msto63/cstring/foundation/pipe"
	"github.com/msto63/cstring/foundation/pipe/registry"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Evaluation is the rendered outcome of one pipeline run
type Evaluation struct {
	Output   string        // content, array elements joined by newlines
	Elements []string      // set for array results
	Kind     string        // buffer or array
	Stages   []string      // executed stage names
	Duration time.Duration // total pipeline time
	Err      error
}

// Evaluator runs expr against input
type Evaluator func(ctx context.Context, expr, input string) Evaluation

// NewEvaluator erases the code unit of engine so the model stays non generic
func NewEvaluator[T cstring.Element](engine *pipe.Engine[T]) Evaluator {
	return func(ctx context.Context, expr, input string) Evaluation {
		res, err := engine.ExecuteString(ctx, expr, input)
		if err != nil {
			return Evaluation{Err: err}
		}
		defer res.Value.Free()

		ev := Evaluation{
			Output:   res.Value.String(),
			Kind:     res.Value.Kind().String(),
			Duration: res.Duration,
		}
		if res.Value.Kind() == registry.KindArray {
			ev.Elements = res.Value.Strings()
		}
		for _, s := range res.Stages {
			ev.Stages = append(ev.Stages, s.Name)
		}
		return ev
	}
}
