package service

import (
	"github.com/wricardo/sokoban/game/engine"
)

// MaxBulkMoves caps the moves executed by one BulkMove call
const MaxBulkMoves = 200

// Stop reason codes reported by BulkMove
const (
	StopBlockedBoundary  = "blocked_boundary"
	StopBlockedWall      = "blocked_wall"
	StopBlockedBox       = "blocked_box"
	StopInvalidDirection = "invalid_direction"
	StopLevelComplete    = "level_complete"
	StopNotPlaying       = "not_playing"
)

// GameStateInfo is the JSON view of the running game
type GameStateInfo struct {
	engine.StateView
	Status        string   `json:"status"`
	Message       string   `json:"message,omitempty"`
	MaxLevel      int      `json:"max_level"`
	BestSteps     *int     `json:"best_steps,omitempty"`
	PossibleMoves []string `json:"possible_moves"`
	Legend        string   `json:"legend"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool            `json:"success"`
	Direction   string          `json:"direction"`
	BoxMoved    bool            `json:"box_moved"`
	From        engine.Position `json:"from"`
	To          engine.Position `json:"to"`
	Message     string          `json:"message"`
	AttemptedTo *AttemptInfo    `json:"attempted_to,omitempty"`
	GameState   *GameStateInfo  `json:"game_state"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	RequestedMoves int    `json:"requested_moves"`
	MovesExecuted  int    `json:"moves_executed"`
	BoxesPushed    int    `json:"boxes_pushed"`
	Success        bool   `json:"success"`
	StoppedReason  string `json:"stopped_reason,omitempty"`
	StopReasonCode string `json:"stop_reason_code,omitempty"` // blocked_boundary|blocked_wall|blocked_box|invalid_direction|level_complete|not_playing
	StoppedOnMove  int    `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool   `json:"truncated,omitempty"`
	Limit          int    `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos engine.Position `json:"start_pos"`
	EndPos   engine.Position `json:"end_pos"`

	// Per-step compact trace
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	GameState *GameStateInfo `json:"game_state"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx      int             `json:"idx"`
	Dir      string          `json:"dir"`
	From     engine.Position `json:"from"`
	To       engine.Position `json:"to"`
	BoxMoved bool            `json:"box_moved,omitempty"`
	Complete bool            `json:"complete,omitempty"`
}

// AttemptInfo details the cell a rejected move tried to enter
type AttemptInfo struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Cell   string `json:"cell"`
	HasBox bool   `json:"has_box"`
	Reason string `json:"reason"`
}

// UndoResult contains the result of an undo
type UndoResult struct {
	Undone    bool           `json:"undone"`
	GameState *GameStateInfo `json:"game_state"`
}

// LevelInfo provides information about a level file
type LevelInfo struct {
	Number      int    `json:"number"`
	Filename    string `json:"filename"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Goals       int    `json:"goals"`
	Boxes       int    `json:"boxes"`
	GoalsFilled int    `json:"goals_filled"`
}
