package engine

import (
	"fmt"
	"strings"
)

// Text symbols for cells, shared by board rendering and the level text format
const (
	SymbolWall         = '#'
	SymbolFloor        = ' '
	SymbolGoal         = '.'
	SymbolBox          = '$'
	SymbolBoxOnGoal    = '*'
	SymbolPlayer       = '@'
	SymbolPlayerOnGoal = '+'
)

// Symbol returns the text symbol for a cell
func Symbol(kind CellKind, box, player bool) byte {
	switch {
	case kind == Wall:
		return SymbolWall
	case player && kind == Goal:
		return SymbolPlayerOnGoal
	case player:
		return SymbolPlayer
	case box && kind == Goal:
		return SymbolBoxOnGoal
	case box:
		return SymbolBox
	case kind == Goal:
		return SymbolGoal
	default:
		return SymbolFloor
	}
}

// CountCells counts the cells of a specific kind
func CountCells(grid []CellKind, kind CellKind) int {
	count := 0
	for _, k := range grid {
		if k == kind {
			count++
		}
	}
	return count
}

// CountBoxes counts the cells holding a box
func CountBoxes(boxes []bool) int {
	count := 0
	for _, b := range boxes {
		if b {
			count++
		}
	}
	return count
}

// CountFilledGoals counts goal cells that hold a box
func CountFilledGoals(grid []CellKind, boxes []bool) int {
	count := 0
	for i, k := range grid {
		if k == Goal && boxes[i] {
			count++
		}
	}
	return count
}

// Board renders the state as text rows using the level text symbols
func (gs *GameState) Board() []string {
	rows := make([]string, gs.rows)
	var sb strings.Builder
	for r := 0; r < gs.rows; r++ {
		sb.Reset()
		for c := 0; c < gs.cols; c++ {
			pos := Position{Row: r, Col: c}
			i := gs.index(pos)
			sb.WriteByte(Symbol(gs.grid[i], gs.boxes[i], pos == gs.player))
		}
		rows[r] = sb.String()
	}
	return rows
}

// validateLevel checks dimensions, buffer sizes and layer invariants
func validateLevel(level *Level) error {
	if err := checkShape(level.Rows, level.Cols, level.Player); err != nil {
		return err
	}
	if len(level.Cells) != level.Rows*level.Cols || len(level.Boxes) != len(level.Cells) {
		return fmt.Errorf("%w: buffers do not match %dx%d", ErrInvalid, level.Rows, level.Cols)
	}
	return checkLayers(level.Cells, level.Boxes, level.Cols, level.Player)
}

// checkLayers enforces the cross-layer invariants of a level: no box on a
// wall and the player not standing on a wall or a box
func checkLayers(cells []CellKind, boxes []bool, cols int, player Position) error {
	for i, kind := range cells {
		if kind == Wall && boxes[i] {
			return fmt.Errorf("%w: box on wall at (%d,%d)", ErrInvalid, i/cols, i%cols)
		}
	}
	pi := player.Row*cols + player.Col
	if cells[pi] == Wall {
		return fmt.Errorf("%w: player on wall at %s", ErrInvalid, player)
	}
	if boxes[pi] {
		return fmt.Errorf("%w: player on box at %s", ErrInvalid, player)
	}
	return nil
}
