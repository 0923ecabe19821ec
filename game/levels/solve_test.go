package levels

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sokoban/game/engine"
)

// unsolvable: the box can only slide along the top wall, away from the goal
var stuckAlongWall = []string{
	"#######",
	"#@ $  #",
	"#     #",
	"#.    #",
	"#######",
}

func TestSolve_Corridor(t *testing.T) {
	tests := []struct {
		rows     []string
		expected string
		pushes   int
	}{
		{[]string{"#@$.#"}, "R", 1},
		{[]string{"#@ $.#"}, "rR", 1},
		{[]string{"#.$ @#"}, "lL", 1},
		{[]string{"#", "@", "$", ".", "#"}, "D", 1},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			sol, err := Solve(context.Background(), mustParse(t, test.rows...), 0)
			require.NoError(t, err)
			assert.Equal(t, test.expected, sol.String())
			assert.Equal(t, test.pushes, sol.Pushes)
			assert.Len(t, sol.Moves, len(test.expected))
		})
	}
}

func TestSolve_SolutionCompletesLevel(t *testing.T) {
	level := mustParse(t,
		"#######",
		"#@ $ .#",
		"# $ . #",
		"#######",
	)

	sol, err := Solve(context.Background(), level, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sol.Pushes, 4)
	assert.Greater(t, sol.Explored, 0)

	state := engine.NewGameState()
	require.NoError(t, state.Reset(level))
	for i, dir := range sol.Moves {
		require.True(t, state.ApplyMove(dir), "move %d (%s) rejected", i, dir)
	}
	assert.True(t, state.IsComplete())
	assert.Equal(t, len(sol.Moves), state.StepCount())
}

func TestSolve_NoSolution(t *testing.T) {
	_, err := Solve(context.Background(), mustParse(t, stuckAlongWall...), 0)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolve_LimitReached(t *testing.T) {
	_, err := Solve(context.Background(), mustParse(t, stuckAlongWall...), 3)
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestSolve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, mustParse(t, "#@$.#"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_InvalidLevel(t *testing.T) {
	_, err := Solve(context.Background(), mustParse(t, "#@ $ #"), 0)
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestBitset(t *testing.T) {
	bits := packBits([]bool{true, false, false, false, false, false, false, false, false, true})
	assert.Len(t, bits, 2)
	assert.True(t, hasBit(bits, 0))
	assert.True(t, hasBit(bits, 9))
	assert.False(t, hasBit(bits, 1))

	moved := moveBit(bits, 0, 8)
	assert.False(t, hasBit(moved, 0))
	assert.True(t, hasBit(moved, 8))
	assert.True(t, hasBit(bits, 0), "source bitset must not change")
}
