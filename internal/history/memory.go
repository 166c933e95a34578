// File: memory.go
// Title: In-Memory History Store
// Description: Store implementation kept in memory, used when history
//              persistence is disabled and in tests.
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
	"slices"
	"sync"
	"time"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu    sync.RWMutex
	runs  []*Run // oldest first
	limit int
}

// NewMemoryStore creates an in-memory store keeping at most limit runs
// (zero for no limit)
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit}
}

// Record stores a copy of run
func (s *MemoryStore) Record(ctx context.Context, run *Run) error {
	if run.Expression == "" {
		return mdwerrors.InvalidInput(mdwerrors.ModuleHistory, "record", "", "a pipeline expression")
	}
	prepare(run)

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *run
	stored.Stages = slices.Clone(run.Stages)
	idx, _ := slices.BinarySearchFunc(s.runs, stored.CreatedAt, func(r *Run, t time.Time) int {
		return r.CreatedAt.Compare(t)
	})
	s.runs = slices.Insert(s.runs, idx, &stored)

	if s.limit > 0 && len(s.runs) > s.limit {
		s.runs = slices.Delete(s.runs, 0, len(s.runs)-s.limit)
	}
	return nil
}

// Get returns a run by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.runs {
		if r.ID == id {
			out := *r
			return &out, nil
		}
	}
	return nil, mdwerrors.HistoryRunNotFound(id)
}

// newest iterates runs from newest to oldest until yield returns false
func (s *MemoryStore) newest(yield func(*Run) bool) {
	for i := len(s.runs) - 1; i >= 0; i-- {
		out := *s.runs[i]
		if !yield(&out) {
			return
		}
	}
}

// List returns runs, newest first
func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	var runs []*Run
	skipped := 0
	s.newest(func(r *Run) bool {
		if skipped < offset {
			skipped++
			return true
		}
		runs = append(runs, r)
		return len(runs) < limit
	})
	return runs, nil
}

// Search returns runs whose expression or input contains needle
func (s *MemoryStore) Search(ctx context.Context, needle string, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	pattern := cstring.FromString[byte](needle)
	var runs []*Run
	s.newest(func(r *Run) bool {
		if matches(r, pattern) {
			runs = append(runs, r)
		}
		return len(runs) < limit
	})
	return runs, nil
}

// Delete removes a run
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.runs {
		if r.ID == id {
			s.runs = slices.Delete(s.runs, i, i+1)
			return nil
		}
	}
	return mdwerrors.HistoryRunNotFound(id)
}

// Clear removes all runs
func (s *MemoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.runs))
	s.runs = nil
	return n, nil
}

// Statistics summarizes the stored runs
func (s *MemoryStore) Statistics(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{Total: int64(len(s.runs))}
	var sum float64
	for _, r := range s.runs {
		sum += r.DurationMs
		if r.Failed() {
			stats.Failed++
		}
	}
	if stats.Total > 0 {
		stats.AvgDurationMs = sum / float64(stats.Total)
		stats.LastRun = s.runs[len(s.runs)-1].CreatedAt
	}
	return stats, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
