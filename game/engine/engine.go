package engine

import "fmt"

// GameState owns the grid, box overlay, player, counters and undo window
// of the level being played. It is not safe for concurrent use.
type GameState struct {
	level     int
	rows      int
	cols      int
	grid      []CellKind
	boxes     []bool
	player    Position
	stepCount int

	// set by ApplyMove and consumed when the undo entry is written
	lastMoveMovedBox bool

	history *StepHistory
}

// NewGameState creates a state at level 1 with an empty grid
func NewGameState() *GameState {
	return &GameState{
		level:   1,
		history: NewStepHistory(MaxUndo),
	}
}

// LoadLevel replaces the grid, boxes and player with the given level from
// src and resets the step counter and undo window. On error the state is
// left untouched.
func (gs *GameState) LoadLevel(src LevelSource, number int) error {
	if number < 1 {
		return &LoadError{Op: "load level", Err: fmt.Errorf("%w: %d", ErrLevelOutOfRange, number)}
	}

	level, err := src.LoadLevel(number)
	if err != nil {
		return err
	}
	if err := validateLevel(level); err != nil {
		return &LoadError{Op: "load level", Err: err}
	}

	gs.reset(number, level)
	return nil
}

// Reset installs a decoded level directly, used by tests and tools that
// build levels in memory
func (gs *GameState) Reset(level *Level) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	number := level.Number
	if number < 1 {
		number = 1
	}
	gs.reset(number, level)
	return nil
}

func (gs *GameState) reset(number int, level *Level) {
	gs.level = number
	gs.rows = level.Rows
	gs.cols = level.Cols
	gs.grid = append([]CellKind(nil), level.Cells...)
	gs.boxes = append([]bool(nil), level.Boxes...)
	gs.player = level.Player
	gs.stepCount = 0
	gs.lastMoveMovedBox = false
	gs.history.Clear()
}

// Level returns the current level number
func (gs *GameState) Level() int {
	return gs.level
}

// Rows returns the grid height
func (gs *GameState) Rows() int {
	return gs.rows
}

// Cols returns the grid width
func (gs *GameState) Cols() int {
	return gs.cols
}

// Player returns the player position
func (gs *GameState) Player() Position {
	return gs.player
}

// StepCount returns the number of moves accepted since the last load
func (gs *GameState) StepCount() int {
	return gs.stepCount
}

// LastMoveMovedBox reports whether the last accepted move pushed a box
func (gs *GameState) LastMoveMovedBox() bool {
	return gs.lastMoveMovedBox
}

// UndoDepth returns how many moves can currently be undone
func (gs *GameState) UndoDepth() int {
	return gs.history.Len()
}

// History returns the undo entries, newest first
func (gs *GameState) History() []StepEntry {
	return gs.history.Entries()
}

// Loaded reports whether a level has been installed
func (gs *GameState) Loaded() bool {
	return gs.rows > 0 && gs.cols > 0
}

// InBounds reports whether pos lies inside the grid
func (gs *GameState) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < gs.rows && pos.Col >= 0 && pos.Col < gs.cols
}

func (gs *GameState) index(pos Position) int {
	return pos.Row*gs.cols + pos.Col
}

// Cell returns the cell kind at pos. Positions outside the grid read as Wall.
func (gs *GameState) Cell(pos Position) CellKind {
	if !gs.InBounds(pos) {
		return Wall
	}
	return gs.grid[gs.index(pos)]
}

// HasBox reports whether a box occupies pos
func (gs *GameState) HasBox(pos Position) bool {
	if !gs.InBounds(pos) {
		return false
	}
	return gs.boxes[gs.index(pos)]
}

// Grid returns a row-major copy of the cell kinds
func (gs *GameState) Grid() []CellKind {
	return append([]CellKind(nil), gs.grid...)
}

// Boxes returns a row-major copy of the box overlay
func (gs *GameState) Boxes() []bool {
	return append([]bool(nil), gs.boxes...)
}

// IsComplete reports whether every goal cell holds a box. A level without
// goals is complete.
func (gs *GameState) IsComplete() bool {
	for i, kind := range gs.grid {
		if kind == Goal && !gs.boxes[i] {
			return false
		}
	}
	return true
}

// View builds a read-only projection of the state
func (gs *GameState) View() StateView {
	return StateView{
		Level:       gs.level,
		Rows:        gs.rows,
		Cols:        gs.cols,
		Player:      gs.player,
		StepCount:   gs.stepCount,
		UndoDepth:   gs.history.Len(),
		GoalsTotal:  CountCells(gs.grid, Goal),
		GoalsFilled: CountFilledGoals(gs.grid, gs.boxes),
		Complete:    gs.IsComplete(),
		Board:       gs.Board(),
	}
}
