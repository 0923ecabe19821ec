package controller

import (
	"context"
	"errors"

	"github.com/wricardo/sokoban/game/engine"
)

var (
	ErrNoNextLevel       = errors.New("no next level")
	ErrActionUnavailable = errors.New("menu action not available")
	ErrPersistenceOff    = errors.New("save slot not configured")
	ErrStopped           = errors.New("game stopped")
)

// Status is the phase of the control loop
type Status int

const (
	Playing Status = iota
	Paused
	Completed
	Stopped
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Command is an input decoded by a front end
type Command int

const (
	None Command = iota
	Up
	Right
	Down
	Left
	Undo
	TogglePause
	Quit
	Save
	Load
)

func (c Command) String() string {
	switch c {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Undo:
		return "undo"
	case TogglePause:
		return "pause"
	case Quit:
		return "quit"
	case Save:
		return "save"
	case Load:
		return "load"
	default:
		return "none"
	}
}

// Direction maps movement commands onto engine directions
func (c Command) Direction() engine.Direction {
	switch c {
	case Up:
		return engine.Up
	case Right:
		return engine.Right
	case Down:
		return engine.Down
	case Left:
		return engine.Left
	default:
		return engine.None
	}
}

// MenuAction is an entry of the pause or completion menu
type MenuAction int

const (
	Resume MenuAction = iota
	Restart
	NextLevel
	Exit
)

func (a MenuAction) String() string {
	switch a {
	case Resume:
		return "Resume"
	case Restart:
		return "Restart"
	case NextLevel:
		return "Next level"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// SnapshotStore is the save slot used by the Save and Load commands
type SnapshotStore interface {
	Save(snap *engine.Level) error
	Load() (*engine.Level, error)
}

// Recorder keeps completion records
type Recorder interface {
	RecordCompletion(ctx context.Context, level, steps int) error
	BestSteps(ctx context.Context, level int) (int, bool, error)
}
