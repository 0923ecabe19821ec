package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/wricardo/sokoban/game/controller"
	"github.com/wricardo/sokoban/game/engine"
)

const (
	blockGlyph = "▒▒"
	goalGlyph  = "◆◆"
	emptyGlyph = "  "
	panelWidth = 18
)

// Frame is everything needed to draw one screen
type Frame struct {
	State    *engine.GameState
	Status   controller.Status
	Message  string
	Best     int
	HasBest  bool
	MaxLevel int
	Menu     []controller.MenuAction
	Cursor   int
	Color    bool
}

// FrameFor captures the controller's current screen
func FrameFor(ctrl *controller.Controller, cursor int, color bool) Frame {
	best, ok := ctrl.BestSteps()
	return Frame{
		State:    ctrl.State(),
		Status:   ctrl.Status(),
		Message:  ctrl.Message(),
		Best:     best,
		HasBest:  ok,
		MaxLevel: ctrl.MaxLevel(),
		Menu:     ctrl.Menu(),
		Cursor:   cursor,
		Color:    color,
	}
}

// Render draws a frame over the previous one
func Render(w io.Writer, f Frame) error {
	var b strings.Builder
	b.WriteString(cursorHome)
	for _, line := range Lines(f) {
		b.WriteString(line)
		b.WriteString(clearToEOL)
		b.WriteString("\r\n")
	}
	b.WriteString(clearToEnd)
	_, err := io.WriteString(w, b.String())
	return err
}

// Lines lays out the score panel, the field, the info panel and any menu
func Lines(f Frame) []string {
	var lines []string
	lines = append(lines, box("", scoreLines(f), panelWidth)...)
	lines = append(lines, fieldLines(f)...)
	lines = append(lines, box("", infoLines(), panelWidth)...)

	if len(f.Menu) > 0 {
		title := "Paused"
		if f.Status == controller.Completed {
			title = "Level complete"
		}
		lines = append(lines, box(title, menuLines(f.Menu, f.Cursor), panelWidth)...)
	}
	if f.Message != "" {
		lines = append(lines, " "+f.Message)
	}
	return lines
}

func scoreLines(f Frame) []string {
	best := "-"
	if f.HasBest {
		best = fmt.Sprint(f.Best)
	}
	return []string{
		fmt.Sprintf("level: %d/%d", f.State.Level(), f.MaxLevel),
		fmt.Sprintf("steps made: %d", f.State.StepCount()),
		fmt.Sprintf("best: %s", best),
		fmt.Sprintf("undo: %d", f.State.UndoDepth()),
	}
}

func infoLines() []string {
	return []string{
		"space: pause",
		"z: step back",
		"S: save",
		"L: load",
		"q: quit",
	}
}

func menuLines(menu []controller.MenuAction, cursor int) []string {
	lines := make([]string, len(menu))
	for i, action := range menu {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		lines[i] = marker + action.String()
	}
	return lines
}

func fieldLines(f Frame) []string {
	state := f.State
	width := state.Cols() * 2
	lines := []string{"┌" + strings.Repeat("─", width) + "┐"}
	player := state.Player()

	for r := 0; r < state.Rows(); r++ {
		var row strings.Builder
		row.WriteString("│")
		for c := 0; c < state.Cols(); c++ {
			pos := engine.Position{Row: r, Col: c}
			row.WriteString(cellGlyph(state.Cell(pos), state.HasBox(pos), pos == player, f.Color))
		}
		row.WriteString("│")
		lines = append(lines, row.String())
	}
	return append(lines, "└"+strings.Repeat("─", width)+"┘")
}

// cellGlyph draws one cell as two columns. The player is drawn over
// everything else.
func cellGlyph(kind engine.CellKind, hasBox, player, color bool) string {
	glyph, tint := emptyGlyph, ""
	switch {
	case player:
		glyph, tint = blockGlyph, Yellow
	case hasBox && kind == engine.Goal:
		glyph, tint = blockGlyph, Green
	case hasBox:
		glyph, tint = blockGlyph, Cyan
	case kind == engine.Wall:
		glyph, tint = blockGlyph, White
	case kind == engine.Goal:
		glyph, tint = goalGlyph, Red
	}
	if !color || tint == "" {
		return glyph
	}
	return tint + glyph + Reset
}

// box frames lines in a single-line border, padded to width
func box(title string, lines []string, width int) []string {
	for _, line := range lines {
		if n := runeLen(line); n > width {
			width = n
		}
	}

	top := "┌" + strings.Repeat("─", width) + "┐"
	if title != "" {
		label := "─ " + title + " "
		if pad := width - runeLen(label); pad >= 0 {
			top = "┌" + label + strings.Repeat("─", pad) + "┐"
		}
	}

	out := []string{top}
	for _, line := range lines {
		out = append(out, "│"+line+strings.Repeat(" ", width-runeLen(line))+"│")
	}
	return append(out, "└"+strings.Repeat("─", width)+"┘")
}

func runeLen(s string) int {
	return len([]rune(s))
}
