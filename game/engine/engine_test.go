package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	levels map[int]*Level
	err    error
	calls  []int
}

func (s *stubSource) LoadLevel(number int) (*Level, error) {
	s.calls = append(s.calls, number)
	if s.err != nil {
		return nil, s.err
	}
	level, ok := s.levels[number]
	if !ok {
		return nil, &LoadError{Op: "load level", Err: ErrNotFound}
	}
	return level.Clone(), nil
}

func TestNewGameState(t *testing.T) {
	state := NewGameState()

	assert.Equal(t, 1, state.Level())
	assert.False(t, state.Loaded())
	assert.Equal(t, 0, state.StepCount())
	assert.Equal(t, 0, state.UndoDepth())
	assert.Equal(t, MaxUndo, state.history.Cap())
	assert.Empty(t, state.Board())
}

func TestLoadLevel(t *testing.T) {
	level := levelFromRows(t,
		"#####",
		"#@$.#",
		"#####",
	)
	level.Number = 9
	src := &stubSource{levels: map[int]*Level{3: level}}

	state := NewGameState()
	require.NoError(t, state.LoadLevel(src, 3))

	// the requested number wins over the header
	assert.Equal(t, 3, state.Level())
	assert.Equal(t, 3, state.Rows())
	assert.Equal(t, 5, state.Cols())
	assert.Equal(t, Position{Row: 1, Col: 1}, state.Player())
	assert.True(t, state.HasBox(Position{Row: 1, Col: 2}))
	assert.Equal(t, Goal, state.Cell(Position{Row: 1, Col: 3}))
	assert.Equal(t, []int{3}, src.calls)
}

func TestLoadLevel_ResetsCounters(t *testing.T) {
	src := &stubSource{levels: map[int]*Level{
		1: levelFromRows(t, "@   "),
		2: levelFromRows(t, " @  "),
	}}
	state := NewGameState()
	require.NoError(t, state.LoadLevel(src, 1))
	require.True(t, state.ApplyMove(Right))
	require.True(t, state.ApplyMove(Right))

	require.NoError(t, state.LoadLevel(src, 2))
	assert.Equal(t, 2, state.Level())
	assert.Equal(t, 0, state.StepCount())
	assert.Equal(t, 0, state.UndoDepth())
	assert.False(t, state.LastMoveMovedBox())
	assert.False(t, state.Undo())
}

func TestLoadLevel_FailureLeavesStateUntouched(t *testing.T) {
	original := levelFromRows(t, "@ $.")

	tests := []struct {
		name   string
		src    *stubSource
		number int
		target error
	}{
		{
			name:   "missing level",
			src:    &stubSource{levels: map[int]*Level{}},
			number: 2,
			target: ErrNotFound,
		},
		{
			name:   "source error",
			src:    &stubSource{err: &LoadError{Op: "load level", Err: ErrTruncated}},
			number: 2,
			target: ErrTruncated,
		},
		{
			name:   "level zero",
			src:    &stubSource{},
			number: 0,
			target: ErrLevelOutOfRange,
		},
		{
			name: "box on wall",
			src: &stubSource{levels: map[int]*Level{2: func() *Level {
				l := levelFromRows(t, "@#")
				l.Boxes[1] = true
				return l
			}()}},
			number: 2,
			target: ErrInvalid,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := NewGameState()
			require.NoError(t, state.Reset(original.Clone()))
			require.True(t, state.ApplyMove(Right))

			err := state.LoadLevel(test.src, test.number)
			require.Error(t, err)
			assert.ErrorIs(t, err, test.target)

			var le *LoadError
			assert.True(t, errors.As(err, &le))

			assert.Equal(t, 1, state.Level())
			assert.Equal(t, 1, state.StepCount())
			assert.Equal(t, 1, state.UndoDepth())
			assert.Equal(t, Position{Row: 0, Col: 1}, state.Player())
		})
	}
}

func TestReset_RejectsBadLevels(t *testing.T) {
	tests := []struct {
		name  string
		level *Level
	}{
		{"zero rows", &Level{Rows: 0, Cols: 2}},
		{"player outside", &Level{Rows: 1, Cols: 1, Player: Position{Row: 0, Col: 1}, Cells: []CellKind{Empty}, Boxes: []bool{false}}},
		{"short buffers", &Level{Rows: 1, Cols: 2, Cells: []CellKind{Empty}, Boxes: []bool{false}}},
		{"player on wall", &Level{Rows: 1, Cols: 1, Cells: []CellKind{Wall}, Boxes: []bool{false}}},
		{"player on box", &Level{Rows: 1, Cols: 1, Cells: []CellKind{Empty}, Boxes: []bool{true}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := NewGameState()
			assert.ErrorIs(t, state.Reset(test.level), ErrInvalid)
			assert.False(t, state.Loaded())
		})
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected bool
	}{
		{"no goals", []string{"@ $"}, true},
		{"empty goal", []string{"@.$"}, false},
		{"all goals filled", []string{"@**"}, true},
		{"one goal open", []string{"@*."}, false},
		{"player on goal", []string{"+ $"}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := createTestGameState(t, test.rows...)
			assert.Equal(t, test.expected, state.IsComplete())
		})
	}
}

func TestIsComplete_AfterPush(t *testing.T) {
	state := createTestGameState(t,
		"   ",
		" @.",
		"   ",
	)
	assert.False(t, state.IsComplete())

	state = createTestGameState(t,
		"    ",
		"@$. ",
		"    ",
	)
	require.True(t, state.ApplyMove(Right))
	assert.True(t, state.IsComplete())
	assert.True(t, state.LastMoveMovedBox())
}

func TestCell_OutsideGridIsWall(t *testing.T) {
	state := createTestGameState(t, "@.")

	assert.Equal(t, Wall, state.Cell(Position{Row: -1, Col: 0}))
	assert.Equal(t, Wall, state.Cell(Position{Row: 0, Col: 2}))
	assert.Equal(t, Goal, state.Cell(Position{Row: 0, Col: 1}))
	assert.False(t, state.HasBox(Position{Row: 5, Col: 5}))
}

func TestView(t *testing.T) {
	state := createTestGameState(t,
		"#####",
		"#@$.#",
		"# * #",
		"#####",
	)
	require.True(t, state.ApplyMove(Right))

	view := state.View()
	assert.Equal(t, 1, view.Level)
	assert.Equal(t, 4, view.Rows)
	assert.Equal(t, 5, view.Cols)
	assert.Equal(t, Position{Row: 1, Col: 2}, view.Player)
	assert.Equal(t, 1, view.StepCount)
	assert.Equal(t, 1, view.UndoDepth)
	assert.Equal(t, 2, view.GoalsTotal)
	assert.Equal(t, 2, view.GoalsFilled)
	assert.True(t, view.Complete)
	assert.Equal(t, []string{
		"#####",
		"# @*#",
		"# * #",
		"#####",
	}, view.Board)
}

func TestAccessorsReturnCopies(t *testing.T) {
	state := createTestGameState(t, "@$.")

	grid := state.Grid()
	grid[2] = Wall
	boxes := state.Boxes()
	boxes[1] = false

	assert.Equal(t, Goal, state.Cell(Position{Row: 0, Col: 2}))
	assert.True(t, state.HasBox(Position{Row: 0, Col: 1}))
}

func TestHistoryExposesEntries(t *testing.T) {
	state := createTestGameState(t, "@$  ")
	require.True(t, state.ApplyMove(Right))
	require.True(t, state.ApplyMove(Right))

	assert.Equal(t, []StepEntry{
		{PriorRow: 0, PriorCol: 1, BoxMoved: true},
		{PriorRow: 0, PriorCol: 0, BoxMoved: true},
	}, state.History())
}
