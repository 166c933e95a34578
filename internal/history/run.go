// File: run.go
// Title: Pipeline Run History
// Description: Run records and the store interface for the history of
//              executed pipelines.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/cstring/foundation/utils/cstring"
)

// Run is one executed pipeline
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	Expression string    `json:"expression" yaml:"expression"`
	Input      string    `json:"input" yaml:"input"`
	Output     string    `json:"output" yaml:"output"`
	Unit       string    `json:"unit" yaml:"unit"` // byte, rune or utf16
	Stages     []string  `json:"stages,omitempty" yaml:"stages,omitempty"`
	DurationMs float64   `json:"duration_ms" yaml:"duration_ms"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Failed reports whether the run ended with an error
func (r *Run) Failed() bool {
	return r.Error != ""
}

// Stats summarizes the stored runs
type Stats struct {
	Total         int64     `json:"total" yaml:"total"`
	Failed        int64     `json:"failed" yaml:"failed"`
	AvgDurationMs float64   `json:"avg_duration_ms" yaml:"avg_duration_ms"`
	LastRun       time.Time `json:"last_run,omitempty" yaml:"last_run,omitempty"`
}

// Store persists pipeline runs
type Store interface {
	Record(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit, offset int) ([]*Run, error)
	Search(ctx context.Context, needle string, limit int) ([]*Run, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
	Statistics(ctx context.Context) (*Stats, error)
	Close() error
}

// DefaultListLimit applies when List or Search get a non-positive limit
const DefaultListLimit = 50

// prepare fills in the ID and timestamp of a new run
func prepare(run *Run) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
}

// matches reports whether needle occurs in the expression or input of run
func matches(run *Run, needle *cstring.Buffer[byte]) bool {
	if needle.Empty() {
		return true
	}
	return cstring.FromString[byte](run.Expression).Contains(needle.Data()) ||
		cstring.FromString[byte](run.Input).Contains(needle.Data())
}
