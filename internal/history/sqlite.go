// File: sqlite.go
// Title: SQLite History Store
// Description: Stores pipeline runs in a SQLite database in WAL mode.
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
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	"github.com/msto63/cstring/foundation/utils/cstring"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db    *sql.DB
	mu    sync.RWMutex
	limit int
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
	// Limit caps the number of stored runs; older runs are pruned. Zero
	// keeps everything.
	Limit int
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	path := "./data/history.db"
	if dir, err := os.UserConfigDir(); err == nil {
		path = filepath.Join(dir, "cstr", "history.db")
	}
	return Config{Path: path, Limit: 1000}
}

// NewSQLiteStore opens or creates the history database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, mdwerrors.HistoryStorageFailed("create directory", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, mdwerrors.HistoryStorageFailed("open", err)
	}

	store := &SQLiteStore{db: db, limit: cfg.Limit}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, mdwerrors.HistoryStorageFailed("initialize schema", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		expression TEXT NOT NULL,
		input TEXT NOT NULL DEFAULT '',
		output TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT 'byte',
		stages TEXT,
		duration_ms REAL DEFAULT 0,
		error TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run, assigning an ID and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.Expression == "" {
		return mdwerrors.InvalidInput(mdwerrors.ModuleHistory, "record", "", "a pipeline expression")
	}
	prepare(run)

	stagesJSON, err := json.Marshal(run.Stages)
	if err != nil {
		return mdwerrors.HistoryStorageFailed("record", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mdwerrors.HistoryStorageFailed("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, expression, input, output, unit, stages, duration_ms, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Expression, run.Input, run.Output, run.Unit, string(stagesJSON), run.DurationMs, run.Error, run.CreatedAt)
	if err != nil {
		return mdwerrors.HistoryStorageFailed("record", err)
	}

	if s.limit > 0 {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM runs WHERE id NOT IN (
				SELECT id FROM runs ORDER BY created_at DESC LIMIT ?
			)
		`, s.limit)
		if err != nil {
			return mdwerrors.HistoryStorageFailed("prune", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mdwerrors.HistoryStorageFailed("commit", err)
	}
	return nil
}

const runColumns = `id, expression, input, output, unit, stages, duration_ms, error, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var stagesJSON sql.NullString

	if err := row.Scan(&run.ID, &run.Expression, &run.Input, &run.Output, &run.Unit,
		&stagesJSON, &run.DurationMs, &run.Error, &run.CreatedAt); err != nil {
		return nil, err
	}

	if stagesJSON.Valid && stagesJSON.String != "" {
		if err := json.Unmarshal([]byte(stagesJSON.String), &run.Stages); err != nil {
			return nil, mdwerrors.NewErrorBuilder(mdwerrors.ModuleHistory).
				Operation("scan").
				Message("corrupt stage list").
				Cause(err).
				Detail("run_id", run.ID).
				Build()
		}
	}

	return &run, nil
}

// Get returns a run by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mdwerrors.HistoryRunNotFound(id)
		}
		return nil, mdwerrors.HistoryStorageFailed("get", err)
	}
	return run, nil
}

// List returns runs, newest first
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, mdwerrors.HistoryStorageFailed("list", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, mdwerrors.HistoryStorageFailed("list", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, mdwerrors.HistoryStorageFailed("list", err)
	}

	return runs, nil
}

// Search returns runs whose expression or input contains needle, newest
// first
func (s *SQLiteStore) Search(ctx context.Context, needle string, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, mdwerrors.HistoryStorageFailed("search", err)
	}
	defer rows.Close()

	pattern := cstring.FromString[byte](needle)
	var runs []*Run
	for rows.Next() && len(runs) < limit {
		run, err := scanRun(rows)
		if err != nil {
			return nil, mdwerrors.HistoryStorageFailed("search", err)
		}
		if matches(run, pattern) {
			runs = append(runs, run)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, mdwerrors.HistoryStorageFailed("search", err)
	}

	return runs, nil
}

// Delete removes a run
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return mdwerrors.HistoryStorageFailed("delete", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mdwerrors.HistoryStorageFailed("delete", err)
	}
	if rows == 0 {
		return mdwerrors.HistoryRunNotFound(id)
	}
	return nil
}

// Clear removes all runs and returns how many were deleted
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, mdwerrors.HistoryStorageFailed("clear", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, mdwerrors.HistoryStorageFailed("clear", err)
	}
	return rows, nil
}

// Statistics summarizes the stored runs
func (s *SQLiteStore) Statistics(ctx context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	var avg sql.NullFloat64
	var last sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0),
		       AVG(duration_ms),
		       MAX(created_at)
		FROM runs
	`).Scan(&stats.Total, &stats.Failed, &avg, &last)
	if err != nil {
		return nil, mdwerrors.HistoryStorageFailed("statistics", err)
	}

	if avg.Valid {
		stats.AvgDurationMs = avg.Float64
	}
	if last.Valid {
		stats.LastRun = parseTimestamp(last.String)
	}

	return &stats, nil
}

// parseTimestamp reads the textual timestamps SQLite returns for
// aggregates over DATETIME columns
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
