package levels

import "github.com/wricardo/sokoban/game/engine"

// Analysis summarizes a level's contents
type Analysis struct {
	Rows         int
	Cols         int
	Walls        int
	Goals        int
	Boxes        int
	BoxesOnGoals int
	// Reachable counts the non-wall cells the player can walk to when
	// boxes are ignored.
	Reachable int
	// CornerBoxes lists boxes off a goal with walls on two adjacent sides.
	// Such boxes can never be moved again.
	CornerBoxes []engine.Position
}

// Analyze counts walls, goals and boxes and finds boxes stuck in corners
func Analyze(level *engine.Level) Analysis {
	a := Analysis{
		Rows:         level.Rows,
		Cols:         level.Cols,
		Walls:        engine.CountCells(level.Cells, engine.Wall),
		Goals:        engine.CountCells(level.Cells, engine.Goal),
		Boxes:        engine.CountBoxes(level.Boxes),
		BoxesOnGoals: engine.CountFilledGoals(level.Cells, level.Boxes),
	}

	for _, ok := range reachable(level) {
		if ok {
			a.Reachable++
		}
	}

	for i, box := range level.Boxes {
		if !box || level.Cells[i] == engine.Goal {
			continue
		}
		pos := engine.Position{Row: i / level.Cols, Col: i % level.Cols}
		if inCorner(level, pos) {
			a.CornerBoxes = append(a.CornerBoxes, pos)
		}
	}
	return a
}

// inCorner reports whether pos has a wall (or the grid edge) both
// vertically and horizontally
func inCorner(level *engine.Level, pos engine.Position) bool {
	blocked := func(p engine.Position) bool {
		return !level.InBounds(p) || level.Cells[level.Index(p)] == engine.Wall
	}
	vertical := blocked(pos.Add(-1, 0)) || blocked(pos.Add(1, 0))
	horizontal := blocked(pos.Add(0, -1)) || blocked(pos.Add(0, 1))
	return vertical && horizontal
}
