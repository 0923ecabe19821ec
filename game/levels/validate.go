package levels

import (
	"fmt"
	"path/filepath"

	"github.com/wricardo/sokoban/game/engine"
)

// ValidationResult captures the outcome of validating a single level.
// Info holds the summary lines printed for valid levels.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ValidateFile reads a level file and validates it
func ValidateFile(path string) ValidationResult {
	level, err := engine.ReadLevelFile(path)
	if err != nil {
		return ValidationResult{
			File:   filepath.Base(path),
			Errors: []string{fmt.Sprintf("Failed to read level: %v", err)},
		}
	}
	result := Validate(level)
	result.File = filepath.Base(path)
	return result
}

// Validate checks that a level is playable: the player stands inside the
// grid on a free cell, there is at least one goal and enough boxes to fill
// the goals, every goal and box can be reached, and no box starts stuck in
// a corner away from a goal.
func Validate(level *engine.Level) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	if level.Rows <= 0 || level.Cols <= 0 {
		result.fail("Dimensions must be positive, got %dx%d", level.Rows, level.Cols)
		return result
	}
	if len(level.Cells) != level.Rows*level.Cols || len(level.Boxes) != len(level.Cells) {
		result.fail("Cell data does not match %dx%d", level.Rows, level.Cols)
		return result
	}
	if !level.InBounds(level.Player) {
		result.fail("Player %s is outside the %dx%d grid", level.Player, level.Rows, level.Cols)
		return result
	}

	pi := level.Index(level.Player)
	if level.Cells[pi] == engine.Wall {
		result.fail("Player %s stands on a wall", level.Player)
	}
	if level.Boxes[pi] {
		result.fail("Player %s stands on a box", level.Player)
	}
	for i, kind := range level.Cells {
		if kind == engine.Wall && level.Boxes[i] {
			result.fail("Box on wall at (%d,%d)", i/level.Cols, i%level.Cols)
		}
	}

	a := Analyze(level)
	if a.Goals == 0 {
		result.fail("Must have at least 1 goal")
	}
	if a.Boxes < a.Goals {
		result.fail("Not enough boxes: %d boxes for %d goals", a.Boxes, a.Goals)
	}
	for _, pos := range a.CornerBoxes {
		result.fail("Box at %s is stuck in a corner", pos)
	}

	if result.Valid {
		checkReachability(level, &result)
	}

	if result.Valid {
		result.Info = append(result.Info,
			fmt.Sprintf("✓ Grid: %dx%d", level.Rows, level.Cols),
			fmt.Sprintf("✓ Goals: %d", a.Goals),
			fmt.Sprintf("✓ Boxes: %d (%d on goals)", a.Boxes, a.BoxesOnGoals),
			fmt.Sprintf("✓ Reachable floor: %d", a.Reachable),
		)
	}
	return result
}

// checkReachability ensures every goal and box lies in the region the
// player can walk to, ignoring boxes in the way.
func checkReachability(level *engine.Level, result *ValidationResult) {
	reach := reachable(level)

	var goals, boxes []engine.Position
	for i, kind := range level.Cells {
		pos := engine.Position{Row: i / level.Cols, Col: i % level.Cols}
		if kind == engine.Goal && !reach[i] {
			goals = append(goals, pos)
		}
		if level.Boxes[i] && !reach[i] {
			boxes = append(boxes, pos)
		}
	}

	if len(goals) > 0 {
		result.fail("Connectivity failure: %d goals unreachable from the player", len(goals))
		for _, pos := range goals {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: goal at %s", pos))
		}
	}
	if len(boxes) > 0 {
		result.fail("Connectivity failure: %d boxes unreachable from the player", len(boxes))
		for _, pos := range boxes {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: box at %s", pos))
		}
	}
}

// reachable flood fills from the player over every non-wall cell
func reachable(level *engine.Level) []bool {
	visited := make([]bool, len(level.Cells))
	if !level.InBounds(level.Player) {
		return visited
	}

	queue := []engine.Position{level.Player}
	visited[level.Index(level.Player)] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range engine.Directions {
			next := current.Add(dir.Delta())
			if !level.InBounds(next) {
				continue
			}
			i := level.Index(next)
			if visited[i] || level.Cells[i] == engine.Wall {
				continue
			}
			visited[i] = true
			queue = append(queue, next)
		}
	}
	return visited
}
