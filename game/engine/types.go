package engine

import (
	"fmt"
	"strings"
)

// CellKind represents the static layer of a grid cell
type CellKind uint8

const (
	Empty CellKind = iota
	Wall
	Goal
)

const (
	// MaxUndo is the size of the undo window
	MaxUndo = 32

	// DefaultMaxLevel bounds how far sequential level loading may advance
	DefaultMaxLevel = 20

	// Upper bound on rows*cols accepted from a level or save file
	MaxCells = 1 << 16
)

func (k CellKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Goal:
		return "goal"
	default:
		return "empty"
	}
}

// Position represents row,col coordinates
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the position shifted by the given delta
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a player move
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// Directions lists every real move in clockwise order
var Directions = []Direction{Up, Right, Down, Left}

// Delta returns the row and column offset for the direction
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case Up:
		return -1, 0
	case Right:
		return 0, 1
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// ParseDirection maps a direction name to a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north":
		return Up, nil
	case "right", "r", "east":
		return Right, nil
	case "down", "d", "south":
		return Down, nil
	case "left", "l", "west":
		return Left, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
}

// StepEntry records the player's position before an accepted move and
// whether that move pushed a box
type StepEntry struct {
	PriorRow int  `json:"prior_row"`
	PriorCol int  `json:"prior_col"`
	BoxMoved bool `json:"box_moved"`
}

// Level is a decoded level description
type Level struct {
	Number int        `json:"number"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Player Position   `json:"player"`
	Cells  []CellKind `json:"cells"`
	Boxes  []bool     `json:"boxes"`
}

// Index returns the row-major index for pos; callers must check bounds
func (l *Level) Index(pos Position) int {
	return pos.Row*l.Cols + pos.Col
}

// InBounds reports whether pos lies inside the level grid
func (l *Level) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < l.Rows && pos.Col >= 0 && pos.Col < l.Cols
}

// Clone returns a deep copy so callers can mutate buffers freely
func (l *Level) Clone() *Level {
	c := *l
	c.Cells = append([]CellKind(nil), l.Cells...)
	c.Boxes = append([]bool(nil), l.Boxes...)
	return &c
}

// StateView is a read-only, JSON friendly projection of a GameState
type StateView struct {
	Level       int      `json:"level"`
	Rows        int      `json:"rows"`
	Cols        int      `json:"cols"`
	Player      Position `json:"player"`
	StepCount   int      `json:"step_count"`
	UndoDepth   int      `json:"undo_depth"`
	GoalsTotal  int      `json:"goals_total"`
	GoalsFilled int      `json:"goals_filled"`
	Complete    bool     `json:"complete"`
	Board       []string `json:"board"`
}
