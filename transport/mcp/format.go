package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/sokoban/game/service"
)

// formatGameState renders the state as a compact text report with a
// numbered board
func formatGameState(state *service.GameStateInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Level %d/%d - %s\n", state.Level, state.MaxLevel, state.Status))
	sb.WriteString(fmt.Sprintf("Steps: %d | Undo available: %d | Goals: %d/%d\n",
		state.StepCount, state.UndoDepth, state.GoalsFilled, state.GoalsTotal))
	if state.BestSteps != nil {
		sb.WriteString(fmt.Sprintf("Best: %d steps\n", *state.BestSteps))
	}
	sb.WriteString(fmt.Sprintf("Player: row %d, col %d\n", state.Player.Row, state.Player.Col))
	if state.Message != "" {
		sb.WriteString(fmt.Sprintf("Message: %s\n", state.Message))
	}

	sb.WriteString("\n")
	sb.WriteString(formatBoard(state.Board))

	if len(state.PossibleMoves) > 0 {
		sb.WriteString(fmt.Sprintf("\nPossible moves: %s\n", strings.Join(state.PossibleMoves, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Legend: %s\n", state.Legend))
	return sb.String()
}

// formatBoard prefixes each row with its number and adds a column ruler
func formatBoard(board []string) string {
	if len(board) == 0 {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("    ")
	for c := 0; c < len(board[0]); c++ {
		sb.WriteString(fmt.Sprintf("%d", c%10))
	}
	sb.WriteString("\n")
	for r, row := range board {
		sb.WriteString(fmt.Sprintf("%2d  %s\n", r, row))
	}
	return sb.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var sb strings.Builder

	if result.Success {
		sb.WriteString(fmt.Sprintf("Moved %s from (%d,%d) to (%d,%d)",
			result.Direction, result.From.Row, result.From.Col, result.To.Row, result.To.Col))
		if result.BoxMoved {
			sb.WriteString(", pushing a box")
		}
		sb.WriteString(".\n")
	} else {
		sb.WriteString(fmt.Sprintf("Move %s rejected: %s\n", result.Direction, result.Message))
		if a := result.AttemptedTo; a != nil {
			sb.WriteString(fmt.Sprintf("Attempted cell (%d,%d): %s", a.Row, a.Col, a.Cell))
			if a.HasBox {
				sb.WriteString(" with a box")
			}
			sb.WriteString("\n")
		}
	}
	if result.Success && result.Message != "" && !strings.HasPrefix(result.Message, "Moved") {
		sb.WriteString(result.Message + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}

func formatBulkMoveResult(result *service.BulkMoveResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Executed %d of %d moves", result.MovesExecuted, result.RequestedMoves))
	if result.BoxesPushed > 0 {
		sb.WriteString(fmt.Sprintf(" (%d pushes)", result.BoxesPushed))
	}
	sb.WriteString(fmt.Sprintf(". Position (%d,%d) -> (%d,%d)\n",
		result.StartPos.Row, result.StartPos.Col, result.EndPos.Row, result.EndPos.Col))

	if result.Truncated {
		sb.WriteString(fmt.Sprintf("Only the first %d moves were considered.\n", result.Limit))
	}
	if result.StopReasonCode != "" {
		sb.WriteString(fmt.Sprintf("Stopped on move %d: %s [%s]\n",
			result.StoppedOnMove, result.StoppedReason, result.StopReasonCode))
	}
	if a := result.AttemptedTo; a != nil {
		sb.WriteString(fmt.Sprintf("Attempted cell (%d,%d): %s", a.Row, a.Col, a.Cell))
		if a.HasBox {
			sb.WriteString(" with a box")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(formatGameState(result.GameState))
	return sb.String()
}
