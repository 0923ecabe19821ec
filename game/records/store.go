// Package records keeps the completion history of every level in SQLite and
// answers best step count queries for the score panel.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrInvalidRecord = errors.New("invalid completion record")

// Store handles SQLite operations for level completions. Each Store tags
// its rows with a run id generated when it is opened.
type Store struct {
	db    *sql.DB
	path  string
	runID string
}

// NewStore opens or creates the database at dataSourceName and applies the schema
func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{
		db:    db,
		path:  dataSourceName,
		runID: uuid.New().String(),
	}, nil
}

// RunID returns the identifier attached to completions recorded by this store
func (s *Store) RunID() string {
	return s.runID
}

// RecordCompletion stores one completion of level in steps moves
func (s *Store) RecordCompletion(ctx context.Context, level, steps int) error {
	if level < 1 || steps < 0 {
		return fmt.Errorf("%w: level %d steps %d", ErrInvalidRecord, level, steps)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO completions (run_id, level, steps, completed_at) VALUES (?, ?, ?, ?)`,
		s.runID, level, steps, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// BestSteps returns the lowest recorded step count for level. The boolean
// is false when the level has never been completed.
func (s *Store) BestSteps(ctx context.Context, level int) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MIN(steps) FROM completions WHERE level = ?`, level,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("failed to query best steps: %w", err)
	}
	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// Completions returns the most recent completions of level, newest first
func (s *Store) Completions(ctx context.Context, level, limit int) ([]CompletionRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, level, steps, completed_at FROM completions
		 WHERE level = ? ORDER BY id DESC LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	var out []CompletionRecord
	for rows.Next() {
		var rec CompletionRecord
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Level, &rec.Steps, &rec.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completions: %w", err)
	}
	return out, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
