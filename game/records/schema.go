package records

import "time"

// CompletionRecord represents a row in the completions table
type CompletionRecord struct {
	ID          int64     `db:"id"`
	RunID       string    `db:"run_id"`
	Level       int       `db:"level"`
	Steps       int       `db:"steps"`
	CompletedAt time.Time `db:"completed_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS completions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	level INTEGER NOT NULL CHECK(level >= 1),
	steps INTEGER NOT NULL CHECK(steps >= 0),
	completed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_completions_level_steps ON completions(level, steps);
CREATE INDEX IF NOT EXISTS idx_completions_run_id ON completions(run_id);
`
