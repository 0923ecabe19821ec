package engine

// CanMove reports whether ApplyMove would accept dir, without mutating anything
func (gs *GameState) CanMove(dir Direction) bool {
	_, _, ok := gs.resolve(dir)
	return ok
}

// PossibleMoves returns every direction the player can currently take
func (gs *GameState) PossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if gs.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// resolve computes the target cell and, when it holds a box, the push
// destination. Both are bounds checked before the grid is indexed.
func (gs *GameState) resolve(dir Direction) (target, dest Position, ok bool) {
	dRow, dCol := dir.Delta()
	if (dRow == 0 && dCol == 0) || !gs.Loaded() {
		return target, dest, false
	}

	target = gs.player.Add(dRow, dCol)
	if !gs.InBounds(target) || gs.grid[gs.index(target)] == Wall {
		return target, dest, false
	}

	if !gs.boxes[gs.index(target)] {
		return target, target, true
	}

	dest = target.Add(dRow, dCol)
	if !gs.InBounds(dest) {
		return target, dest, false
	}
	di := gs.index(dest)
	if gs.grid[di] == Wall || gs.boxes[di] {
		return target, dest, false
	}
	return target, dest, true
}

// ApplyMove moves the player one cell in dir, pushing a box if one is in the
// way. Rejected moves return false and leave the state unchanged.
func (gs *GameState) ApplyMove(dir Direction) bool {
	target, dest, ok := gs.resolve(dir)
	if !ok {
		return false
	}

	gs.lastMoveMovedBox = false
	if ti := gs.index(target); gs.boxes[ti] {
		gs.boxes[ti] = false
		gs.boxes[gs.index(dest)] = true
		gs.lastMoveMovedBox = true
	}

	gs.history.Push(StepEntry{
		PriorRow: gs.player.Row,
		PriorCol: gs.player.Col,
		BoxMoved: gs.lastMoveMovedBox,
	})

	gs.player = target
	gs.stepCount++
	return true
}

// Undo reverts the newest move in the undo window, pulling back the box it
// pushed if any. Returns false when there is nothing to undo.
func (gs *GameState) Undo() bool {
	entry, ok := gs.history.PopFront()
	if !ok {
		return false
	}

	dRow := gs.player.Row - entry.PriorRow
	dCol := gs.player.Col - entry.PriorCol

	if entry.BoxMoved {
		pushed := gs.player.Add(dRow, dCol)
		if gs.InBounds(pushed) {
			gs.boxes[gs.index(pushed)] = false
		}
		gs.boxes[gs.index(gs.player)] = true
	}

	gs.player = Position{Row: entry.PriorRow, Col: entry.PriorCol}
	gs.stepCount--
	return true
}
