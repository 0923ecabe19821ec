package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// levelFromRows builds a level from text rows using the board symbols
func levelFromRows(t *testing.T, rows ...string) *Level {
	t.Helper()
	require.NotEmpty(t, rows)

	level := &Level{Number: 1, Rows: len(rows), Cols: len(rows[0])}
	for r, row := range rows {
		require.Len(t, row, level.Cols, "row %d has the wrong width", r)
		for c := 0; c < len(row); c++ {
			kind, box := Empty, false
			switch row[c] {
			case SymbolWall:
				kind = Wall
			case SymbolGoal:
				kind = Goal
			case SymbolBox:
				box = true
			case SymbolBoxOnGoal:
				kind, box = Goal, true
			case SymbolPlayer:
				level.Player = Position{Row: r, Col: c}
			case SymbolPlayerOnGoal:
				kind = Goal
				level.Player = Position{Row: r, Col: c}
			}
			level.Cells = append(level.Cells, kind)
			level.Boxes = append(level.Boxes, box)
		}
	}
	return level
}

func createTestGameState(t *testing.T, rows ...string) *GameState {
	t.Helper()
	state := NewGameState()
	require.NoError(t, state.Reset(levelFromRows(t, rows...)))
	return state
}

func TestApplyMove_DirectionMapping(t *testing.T) {
	tests := []struct {
		dir    Direction
		deltaR int
		deltaC int
	}{
		{Up, -1, 0},
		{Right, 0, 1},
		{Down, 1, 0},
		{Left, 0, -1},
	}

	for _, test := range tests {
		t.Run(test.dir.String(), func(t *testing.T) {
			state := createTestGameState(t,
				"   ",
				" @ ",
				"   ",
			)
			start := state.Player()

			require.True(t, state.ApplyMove(test.dir))
			assert.Equal(t, start.Add(test.deltaR, test.deltaC), state.Player())
			assert.Equal(t, 1, state.StepCount())
			assert.False(t, state.LastMoveMovedBox())
		})
	}
}

func TestApplyMove_None(t *testing.T) {
	state := createTestGameState(t, " @ ")

	assert.False(t, state.ApplyMove(None))
	assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
	assert.Equal(t, 0, state.StepCount())
	assert.Equal(t, 0, state.UndoDepth())
}

func TestApplyMove_NoLevelLoaded(t *testing.T) {
	state := NewGameState()
	for _, dir := range Directions {
		assert.False(t, state.ApplyMove(dir))
	}
}

func TestApplyMove_Rejections(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  Direction
	}{
		{"top edge", []string{"@ ", "  "}, Up},
		{"left edge", []string{"@ ", "  "}, Left},
		{"right edge", []string{" @", "  "}, Right},
		{"bottom edge", []string{"  ", "@ "}, Down},
		{"wall", []string{"@#"}, Right},
		{"box into wall", []string{"@$#"}, Right},
		{"box into box", []string{"@$$ "}, Right},
		{"box off the right edge", []string{" @$"}, Right},
		{"box off the bottom edge", []string{"@", "$"}, Down},
		{"box off the top edge", []string{"$", "@"}, Up},
		{"box off the left edge", []string{"$@"}, Left},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := createTestGameState(t, test.rows...)
			before := state.Boxes()
			start := state.Player()

			assert.False(t, state.ApplyMove(test.dir))
			assert.Equal(t, start, state.Player())
			assert.Equal(t, before, state.Boxes())
			assert.Equal(t, 0, state.StepCount())
			assert.Equal(t, 0, state.UndoDepth())
		})
	}
}

func TestApplyMove_PushBox(t *testing.T) {
	state := createTestGameState(t, "@$ .")

	require.True(t, state.ApplyMove(Right))
	assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
	assert.True(t, state.HasBox(Position{Row: 0, Col: 2}))
	assert.False(t, state.HasBox(Position{Row: 0, Col: 1}))
	assert.True(t, state.LastMoveMovedBox())

	entry, ok := state.history.Peek()
	require.True(t, ok)
	assert.Equal(t, StepEntry{PriorRow: 0, PriorCol: 0, BoxMoved: true}, entry)

	require.True(t, state.ApplyMove(Right))
	assert.True(t, state.HasBox(Position{Row: 0, Col: 3}))
	assert.True(t, state.IsComplete())
}

// Box in front of a wall: the first step is free, the push is refused.
func TestApplyMove_PushIntoWallRejected(t *testing.T) {
	state := createTestGameState(t, "@ $#")

	require.True(t, state.ApplyMove(Right))
	assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
	assert.Equal(t, 1, state.StepCount())

	assert.False(t, state.ApplyMove(Right))
	assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
	assert.Equal(t, 1, state.StepCount())
	assert.True(t, state.HasBox(Position{Row: 0, Col: 2}))
}

func TestApplyMove_BoxAdjacentToWallRejectedImmediately(t *testing.T) {
	state := createTestGameState(t, "@$#")

	assert.False(t, state.ApplyMove(Right))
	assert.False(t, state.ApplyMove(Right))
	assert.Equal(t, 0, state.StepCount())
}

// Every position and direction on a grid whose border is lined with boxes
// must resolve without indexing outside the grid.
func TestApplyMove_StaysInBounds(t *testing.T) {
	rows := []string{
		"$$$$",
		"$  $",
		"$  $",
		"$$$$",
	}
	base := levelFromRows(t, rows...)

	for r := 0; r < base.Rows; r++ {
		for c := 0; c < base.Cols; c++ {
			for _, dir := range append([]Direction{None}, Directions...) {
				level := base.Clone()
				pos := Position{Row: r, Col: c}
				level.Boxes[level.Index(pos)] = false
				level.Player = pos

				state := NewGameState()
				require.NoError(t, state.Reset(level))

				assert.NotPanics(t, func() { state.ApplyMove(dir) })
				assert.True(t, state.InBounds(state.Player()))
				assert.Equal(t, CountBoxes(level.Boxes), CountBoxes(state.Boxes()))
			}
		}
	}
}

func TestApplyMove_RandomWalkKeepsInvariants(t *testing.T) {
	state := createTestGameState(t,
		"#######",
		"#  .  #",
		"# $$$ #",
		"#. @ .#",
		"# $ $ #",
		"#  .  #",
		"#######",
	)
	boxes := CountBoxes(state.Boxes())
	rng := rand.New(rand.NewSource(7))

	accepted := 0
	for i := 0; i < 2000; i++ {
		if state.ApplyMove(Directions[rng.Intn(len(Directions))]) {
			accepted++
		}

		grid := state.Grid()
		current := state.Boxes()
		for idx := range grid {
			if grid[idx] == Wall {
				require.False(t, current[idx], "box on wall at index %d after move %d", idx, i)
			}
		}
		require.Equal(t, boxes, CountBoxes(current))
		require.False(t, state.HasBox(state.Player()))
		require.NotEqual(t, Wall, state.Cell(state.Player()))
	}

	assert.Equal(t, accepted, state.StepCount())
	assert.Equal(t, MaxUndo, state.UndoDepth())
}

func TestUndo_RestoresPreviousState(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  Direction
	}{
		{"walk", []string{"@  "}, Right},
		{"push right", []string{"@$ "}, Right},
		{"push left", []string{" $@"}, Left},
		{"push down", []string{"@", "$", " "}, Down},
		{"push up", []string{" ", "$", "@"}, Up},
		{"push onto goal", []string{"@$."}, Right},
		{"push off goal", []string{"@* "}, Right},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := createTestGameState(t, test.rows...)
			player := state.Player()
			boxes := state.Boxes()
			steps := state.StepCount()

			require.True(t, state.ApplyMove(test.dir))
			require.True(t, state.Undo())

			assert.Equal(t, player, state.Player())
			assert.Equal(t, boxes, state.Boxes())
			assert.Equal(t, steps, state.StepCount())
			assert.Equal(t, 0, state.UndoDepth())
		})
	}
}

func TestUndo_Empty(t *testing.T) {
	state := createTestGameState(t, "@ ")

	assert.False(t, state.Undo())
	assert.Equal(t, 0, state.StepCount())
	assert.Equal(t, Position{}, state.Player())
}

func TestUndo_IsNotUndoable(t *testing.T) {
	state := createTestGameState(t, "@   ")

	require.True(t, state.ApplyMove(Right))
	require.True(t, state.ApplyMove(Right))
	require.True(t, state.Undo())

	assert.Equal(t, 1, state.UndoDepth())
	require.True(t, state.Undo())
	assert.False(t, state.Undo())
	assert.Equal(t, Position{Row: 0, Col: 0}, state.Player())
	assert.Equal(t, 0, state.StepCount())
}

// 33 accepted moves leave exactly 32 undos; the first move stays applied.
func TestUndo_WindowDropsOldestMove(t *testing.T) {
	state := createTestGameState(t, "@"+spaces(40))

	for i := 0; i < MaxUndo+1; i++ {
		require.True(t, state.ApplyMove(Right), "move %d", i)
	}
	assert.Equal(t, MaxUndo+1, state.StepCount())
	assert.Equal(t, MaxUndo, state.UndoDepth())

	undone := 0
	for state.Undo() {
		undone++
	}
	assert.Equal(t, MaxUndo, undone)
	assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
	assert.Equal(t, 1, state.StepCount())
}

func TestUndo_WindowWithPushes(t *testing.T) {
	// Walk the box right and back to the left across the corridor.
	state := createTestGameState(t, "@$"+spaces(20))
	for i := 0; i < 20; i++ {
		require.True(t, state.ApplyMove(Right))
	}
	for i := 0; i < 20; i++ {
		require.True(t, state.ApplyMove(Left))
	}
	boxes := state.Boxes()
	assert.Equal(t, 40, state.StepCount())

	for i := 0; i < MaxUndo; i++ {
		require.True(t, state.Undo())
	}
	assert.False(t, state.Undo())
	assert.Equal(t, 8, state.StepCount())
	assert.Equal(t, Position{Row: 0, Col: 8}, state.Player())
	assert.True(t, state.HasBox(Position{Row: 0, Col: 9}))
	assert.Equal(t, 1, CountBoxes(boxes))
}

func TestPossibleMoves(t *testing.T) {
	state := createTestGameState(t,
		"###",
		"#@$",
		"# #",
	)

	assert.Equal(t, []Direction{Down}, state.PossibleMoves())
	assert.True(t, state.CanMove(Down))
	assert.False(t, state.CanMove(Right))
	assert.Equal(t, 0, state.StepCount())
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
