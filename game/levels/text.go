package levels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/sokoban/game/engine"
)

// ErrSyntax is returned for malformed level text
var ErrSyntax = errors.New("level syntax error")

// Parse reads every level in r. Levels are numbered from 1 in file order.
func Parse(r io.Reader) ([]*engine.Level, error) {
	var (
		levels []*engine.Level
		rows   []string
		start  int
	)

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		level, err := ParseRows(rows)
		if err != nil {
			return fmt.Errorf("level starting at line %d: %w", start, err)
		}
		level.Number = len(levels) + 1
		levels = append(levels, level)
		rows = nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, ";") {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(rows) == 0 {
			start = line
		}
		rows = append(rows, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no levels found", ErrSyntax)
	}
	return levels, nil
}

// ParseRows builds a level from text rows. Short rows are padded with
// floor. The result is numbered 1.
func ParseRows(rows []string) (*engine.Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty level", ErrSyntax)
	}
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if len(rows)*cols > engine.MaxCells {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrSyntax, len(rows), cols, engine.MaxCells)
	}

	level := &engine.Level{
		Number: 1,
		Rows:   len(rows),
		Cols:   cols,
		Cells:  make([]engine.CellKind, len(rows)*cols),
		Boxes:  make([]bool, len(rows)*cols),
	}

	players := 0
	for r, row := range rows {
		for c := 0; c < len(row); c++ {
			i := r*cols + c
			switch row[c] {
			case engine.SymbolWall:
				level.Cells[i] = engine.Wall
			case engine.SymbolGoal:
				level.Cells[i] = engine.Goal
			case engine.SymbolBox:
				level.Boxes[i] = true
			case engine.SymbolBoxOnGoal:
				level.Cells[i] = engine.Goal
				level.Boxes[i] = true
			case engine.SymbolPlayer:
				level.Player = engine.Position{Row: r, Col: c}
				players++
			case engine.SymbolPlayerOnGoal:
				level.Cells[i] = engine.Goal
				level.Player = engine.Position{Row: r, Col: c}
				players++
			case engine.SymbolFloor, '-', '_':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrSyntax, row[c], r+1, c+1)
			}
		}
	}

	if players != 1 {
		return nil, fmt.Errorf("%w: found %d players, want exactly 1", ErrSyntax, players)
	}
	return level, nil
}

// Format renders a level as text rows, one symbol per cell
func Format(level *engine.Level) []string {
	rows := make([]string, level.Rows)
	var sb strings.Builder
	for r := 0; r < level.Rows; r++ {
		sb.Reset()
		for c := 0; c < level.Cols; c++ {
			pos := engine.Position{Row: r, Col: c}
			i := level.Index(pos)
			sb.WriteByte(engine.Symbol(level.Cells[i], level.Boxes[i], pos == level.Player))
		}
		rows[r] = sb.String()
	}
	return rows
}
