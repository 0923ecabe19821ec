package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wricardo/sokoban/game/engine"
)

func TestAnalyze(t *testing.T) {
	a := Analyze(mustParse(t,
		"#######",
		"#@ $ .#",
		"#*$   #",
		"#######",
	))

	assert.Equal(t, 4, a.Rows)
	assert.Equal(t, 7, a.Cols)
	assert.Equal(t, 18, a.Walls)
	assert.Equal(t, 2, a.Goals)
	assert.Equal(t, 3, a.Boxes)
	assert.Equal(t, 1, a.BoxesOnGoals)
	assert.Equal(t, 10, a.Reachable)
	assert.Empty(t, a.CornerBoxes)
}

func TestAnalyze_CornerBoxes(t *testing.T) {
	a := Analyze(mustParse(t,
		"$ @ ",
		"   $",
		".  .",
	))

	assert.Equal(t, []engine.Position{{Row: 0, Col: 0}}, a.CornerBoxes)
	assert.Equal(t, 12, a.Reachable)
}
