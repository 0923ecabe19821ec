package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/wricardo/sokoban/game/controller"
	"github.com/wricardo/sokoban/game/engine"
)

const legend = "# wall, . goal, $ box, * box on goal, @ player, + player on goal"

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	ctrl   *controller.Controller
	levels LevelCatalog
	mu     sync.Mutex
}

// NewGameService creates a service over a controller. levels may be nil.
func NewGameService(ctrl *controller.Controller, levels LevelCatalog) GameService {
	return &gameServiceImpl{
		ctrl:   ctrl,
		levels: levels,
	}
}

// GetState returns the current game state
func (s *gameServiceImpl) GetState(ctx context.Context) (*GameStateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stateInfo(), nil
}

// Move executes a single move
func (s *gameServiceImpl) Move(ctx context.Context, direction string) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.ctrl.State()
	result := &MoveResult{
		Direction: dir.String(),
		From:      state.Player(),
	}

	if status := s.ctrl.Status(); status != controller.Playing {
		result.To = result.From
		result.Message = notPlayingMessage(status)
		result.GameState = s.stateInfo()
		return result, nil
	}

	attempt := describeAttempt(state, dir)
	changed, err := s.ctrl.Dispatch(ctx, commandFor(dir))
	if err != nil {
		return nil, err
	}

	result.Success = changed
	result.To = state.Player()
	if changed {
		result.BoxMoved = state.LastMoveMovedBox()
		result.Message = s.ctrl.Message()
		if result.Message == "" {
			result.Message = fmt.Sprintf("Moved %s", dir)
		}
	} else {
		result.AttemptedTo = attempt
		result.Message = fmt.Sprintf("Cannot move %s: %s", dir, attempt.Reason)
	}
	result.GameState = s.stateInfo()
	return result, nil
}

// BulkMove executes moves in sequence, stopping at the first rejected move
// or when the level is completed
func (s *gameServiceImpl) BulkMove(ctx context.Context, moves []string) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.ctrl.State()
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Success:        true,
		StartPos:       state.Player(),
	}

	// Limit moves to prevent abuse
	if len(moves) > MaxBulkMoves {
		result.Truncated = true
		result.Limit = MaxBulkMoves
		moves = moves[:MaxBulkMoves]
	}

	for i, move := range moves {
		if status := s.ctrl.Status(); status != controller.Playing {
			if status == controller.Completed {
				result.StoppedReason = "level complete"
				result.StopReasonCode = StopLevelComplete
			} else {
				result.Success = false
				result.StoppedReason = notPlayingMessage(status)
				result.StopReasonCode = StopNotPlaying
			}
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d invalid: %q", i+1, move)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		from := state.Player()
		attempt := describeAttempt(state, dir)
		changed, err := s.ctrl.Dispatch(ctx, commandFor(dir))
		if err != nil {
			return nil, err
		}
		if !changed {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, dir)
			result.StopReasonCode = attempt.Reason
			result.StoppedOnMove = i + 1
			result.AttemptedTo = attempt
			break
		}

		result.MovesExecuted++
		step := StepInfo{
			Idx:      i + 1,
			Dir:      dir.String(),
			From:     from,
			To:       state.Player(),
			BoxMoved: state.LastMoveMovedBox(),
			Complete: s.ctrl.Status() == controller.Completed,
		}
		if step.BoxMoved {
			result.BoxesPushed++
		}
		result.Steps = append(result.Steps, step)
	}

	result.EndPos = state.Player()
	result.GameState = s.stateInfo()
	return result, nil
}

// Undo reverts the most recent move
func (s *gameServiceImpl) Undo(ctx context.Context) (*UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ctrl.State().UndoDepth()
	if _, err := s.ctrl.Dispatch(ctx, controller.Undo); err != nil {
		return nil, err
	}
	return &UndoResult{
		Undone:    s.ctrl.State().UndoDepth() < before,
		GameState: s.stateInfo(),
	}, nil
}

// Restart reloads the current level
func (s *gameServiceImpl) Restart(ctx context.Context) (*GameStateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Restart(ctx); err != nil {
		return nil, fmt.Errorf("failed to restart level: %w", err)
	}
	return s.stateInfo(), nil
}

// NextLevel advances to the following level
func (s *gameServiceImpl) NextLevel(ctx context.Context) (*GameStateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.NextLevel(ctx); err != nil {
		return nil, fmt.Errorf("failed to advance level: %w", err)
	}
	return s.stateInfo(), nil
}

// Save writes the game to the save slot
func (s *gameServiceImpl) Save(ctx context.Context) (*GameStateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Save(); err != nil {
		return nil, err
	}
	return s.stateInfo(), nil
}

// Load restores the game from the save slot
func (s *gameServiceImpl) Load(ctx context.Context) (*GameStateInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Load(ctx); err != nil {
		return nil, err
	}
	return s.stateInfo(), nil
}

// ListLevels returns the available levels
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	if s.levels == nil {
		return nil, fmt.Errorf("level catalog not configured")
	}
	return s.levels.ListLevels()
}

// stateInfo builds the JSON view; callers hold s.mu
func (s *gameServiceImpl) stateInfo() *GameStateInfo {
	state := s.ctrl.State()
	info := &GameStateInfo{
		StateView: state.View(),
		Status:    s.ctrl.Status().String(),
		Message:   s.ctrl.Message(),
		MaxLevel:  s.ctrl.MaxLevel(),
		Legend:    legend,
	}
	if best, ok := s.ctrl.BestSteps(); ok {
		info.BestSteps = &best
	}
	info.PossibleMoves = []string{}
	if s.ctrl.Status() == controller.Playing {
		for _, dir := range state.PossibleMoves() {
			info.PossibleMoves = append(info.PossibleMoves, dir.String())
		}
	}
	return info
}

// describeAttempt explains what lies in the way of a move; it is computed
// before the move is dispatched
func describeAttempt(state *engine.GameState, dir engine.Direction) *AttemptInfo {
	dRow, dCol := dir.Delta()
	target := state.Player().Add(dRow, dCol)
	info := &AttemptInfo{Row: target.Row, Col: target.Col}

	if !state.InBounds(target) {
		info.Cell = "boundary"
		info.Reason = StopBlockedBoundary
		return info
	}
	info.Cell = state.Cell(target).String()
	info.HasBox = state.HasBox(target)

	switch {
	case state.Cell(target) == engine.Wall:
		info.Reason = StopBlockedWall
	case info.HasBox && !state.InBounds(target.Add(dRow, dCol)):
		info.Reason = StopBlockedBoundary
	case info.HasBox:
		info.Reason = StopBlockedBox
	}
	return info
}

func commandFor(dir engine.Direction) controller.Command {
	switch dir {
	case engine.Up:
		return controller.Up
	case engine.Right:
		return controller.Right
	case engine.Down:
		return controller.Down
	case engine.Left:
		return controller.Left
	default:
		return controller.None
	}
}

func notPlayingMessage(status controller.Status) string {
	switch status {
	case controller.Completed:
		return "Level complete. Use next_level or restart_level to continue"
	case controller.Paused:
		return "Game is paused"
	default:
		return "Game is " + status.String()
	}
}
