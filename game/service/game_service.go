package service

import (
	"context"
)

// GameService defines all game operations available to remote front ends
type GameService interface {
	// Game State
	GetState(ctx context.Context) (*GameStateInfo, error)

	// Game Operations
	Move(ctx context.Context, direction string) (*MoveResult, error)
	BulkMove(ctx context.Context, moves []string) (*BulkMoveResult, error)
	Undo(ctx context.Context) (*UndoResult, error)
	Restart(ctx context.Context) (*GameStateInfo, error)
	NextLevel(ctx context.Context) (*GameStateInfo, error)

	// Save slot
	Save(ctx context.Context) (*GameStateInfo, error)
	Load(ctx context.Context) (*GameStateInfo, error)

	// Levels
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
}

// LevelCatalog lists the level files available to play
type LevelCatalog interface {
	ListLevels() ([]*LevelInfo, error)
}
