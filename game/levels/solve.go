package levels

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/sokoban/game/engine"
)

var (
	ErrNoSolution   = errors.New("no solution")
	ErrLimitReached = errors.New("search limit reached")
)

// DefaultMaxStates bounds the search when Solve is given no limit
const DefaultMaxStates = 1 << 20

// Solution is a move sequence that completes a level
type Solution struct {
	Moves    []engine.Direction
	Pushes   int
	Explored int

	lurd string
}

// String renders the moves in LURD notation, upper case for pushes
func (s *Solution) String() string {
	return s.lurd
}

type searchNode struct {
	player int
	boxes  string // bitset over cells
	parent int
	dir    engine.Direction
	push   bool
}

// Solve runs a breadth-first search over player and box positions and
// returns a solution with the fewest moves. Pushes onto a non-goal corner
// are pruned. The search stops with ErrLimitReached after maxStates
// distinct states.
func Solve(ctx context.Context, level *engine.Level, maxStates int) (*Solution, error) {
	if result := Validate(level); !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidLevel, strings.Join(result.Errors, "; "))
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	var goals []int
	for i, kind := range level.Cells {
		if kind == engine.Goal {
			goals = append(goals, i)
		}
	}
	solved := func(boxes string) bool {
		for _, g := range goals {
			if !hasBit(boxes, g) {
				return false
			}
		}
		return true
	}
	free := func(pos engine.Position) bool {
		return level.InBounds(pos) && level.Cells[level.Index(pos)] != engine.Wall
	}

	nodes := []searchNode{{
		player: level.Index(level.Player),
		boxes:  packBits(level.Boxes),
		parent: -1,
	}}
	seen := map[string]struct{}{nodes[0].key(): {}}

	for head := 0; head < len(nodes); head++ {
		if head%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := nodes[head]
		if solved(current.boxes) {
			return buildSolution(nodes, head, len(nodes)), nil
		}

		at := engine.Position{Row: current.player / level.Cols, Col: current.player % level.Cols}
		for _, dir := range engine.Directions {
			dRow, dCol := dir.Delta()
			target := at.Add(dRow, dCol)
			if !free(target) {
				continue
			}

			next := searchNode{player: level.Index(target), boxes: current.boxes, parent: head, dir: dir}
			if hasBit(current.boxes, next.player) {
				dest := target.Add(dRow, dCol)
				if !free(dest) {
					continue
				}
				di := level.Index(dest)
				if hasBit(current.boxes, di) {
					continue
				}
				if level.Cells[di] != engine.Goal && inCorner(level, dest) {
					continue
				}
				next.boxes = moveBit(current.boxes, next.player, di)
				next.push = true
			}

			key := next.key()
			if _, ok := seen[key]; ok {
				continue
			}
			if len(nodes) >= maxStates {
				return nil, fmt.Errorf("%w: explored %d states", ErrLimitReached, len(nodes))
			}
			seen[key] = struct{}{}
			nodes = append(nodes, next)
		}
	}
	return nil, fmt.Errorf("%w: explored %d states", ErrNoSolution, len(nodes))
}

func (n searchNode) key() string {
	return n.boxes + strconv.Itoa(n.player)
}

func buildSolution(nodes []searchNode, end, explored int) *Solution {
	var path []searchNode
	for i := end; nodes[i].parent >= 0; i = nodes[i].parent {
		path = append(path, nodes[i])
	}

	sol := &Solution{Moves: make([]engine.Direction, 0, len(path)), Explored: explored}
	var lurd strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		sol.Moves = append(sol.Moves, step.dir)
		letter := lurdLetter(step.dir)
		if step.push {
			sol.Pushes++
			letter = strings.ToUpper(letter)
		}
		lurd.WriteString(letter)
	}
	sol.lurd = lurd.String()
	return sol
}

func lurdLetter(dir engine.Direction) string {
	switch dir {
	case engine.Up:
		return "u"
	case engine.Right:
		return "r"
	case engine.Down:
		return "d"
	case engine.Left:
		return "l"
	default:
		return ""
	}
}

func packBits(bits []bool) string {
	packed := make([]byte, (len(bits)+7)/8)
	for i, set := range bits {
		if set {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	return string(packed)
}

func hasBit(bits string, i int) bool {
	return bits[i/8]&(1<<(i%8)) != 0
}

func moveBit(bits string, from, to int) string {
	b := []byte(bits)
	b[from/8] &^= 1 << (from % 8)
	b[to/8] |= 1 << (to % 8)
	return string(b)
}
