package session

import "github.com/wricardo/sokoban/game/engine"

// SnapshotPersistence stores the single save slot
type SnapshotPersistence interface {
	// Save persists a snapshot, replacing the previous one
	Save(snap *engine.Level) error

	// Load retrieves the stored snapshot
	Load() (*engine.Level, error)

	// Delete removes the stored snapshot
	Delete() error

	// Exists checks if a snapshot is stored
	Exists() bool
}
