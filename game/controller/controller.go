package controller

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/wricardo/sokoban/game/engine"
)

// Options wires a Controller. Levels is required; a nil Store disables the
// save slot and a nil Recorder disables completion records.
type Options struct {
	Levels     engine.LevelSource
	Store      SnapshotStore
	Recorder   Recorder
	Logger     *zap.Logger
	MaxLevel   int
	StartLevel int
}

// Controller drives a GameState through the Playing, Paused, Completed and
// Stopped phases. It is owned by a single control loop.
type Controller struct {
	state    *engine.GameState
	levels   engine.LevelSource
	store    SnapshotStore
	recorder Recorder
	logger   *zap.Logger
	maxLevel int

	status  Status
	message string

	best    int
	hasBest bool
}

// New creates a controller and loads the start level
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Levels == nil {
		return nil, fmt.Errorf("level source is required")
	}
	if opts.MaxLevel <= 0 {
		opts.MaxLevel = engine.DefaultMaxLevel
	}
	if opts.StartLevel <= 0 {
		opts.StartLevel = 1
	}
	if opts.StartLevel > opts.MaxLevel {
		return nil, fmt.Errorf("%w: start level %d exceeds max %d", engine.ErrLevelOutOfRange, opts.StartLevel, opts.MaxLevel)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Controller{
		state:    engine.NewGameState(),
		levels:   opts.Levels,
		store:    opts.Store,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		maxLevel: opts.MaxLevel,
	}
	if err := c.loadLevel(ctx, opts.StartLevel); err != nil {
		return nil, err
	}
	return c, nil
}

// State exposes the game state for rendering. Callers must not mutate it.
func (c *Controller) State() *engine.GameState {
	return c.state
}

// Status returns the current phase
func (c *Controller) Status() Status {
	return c.status
}

// Message returns the last user-facing notice
func (c *Controller) Message() string {
	return c.message
}

// MaxLevel returns the last level reachable with NextLevel
func (c *Controller) MaxLevel() int {
	return c.maxLevel
}

// BestSteps returns the cached best step count for the current level
func (c *Controller) BestSteps() (int, bool) {
	return c.best, c.hasBest
}

// Dispatch applies one command. It reports whether anything visible
// changed. Errors are limited to save and load failures, which leave the
// game running.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (bool, error) {
	if c.status == Stopped {
		return false, nil
	}

	switch cmd {
	case Up, Right, Down, Left:
		return c.move(ctx, cmd.Direction()), nil

	case Undo:
		if c.status != Playing {
			return false, nil
		}
		if !c.state.Undo() {
			c.message = "Nothing to undo"
			return true, nil
		}
		c.message = ""
		return true, nil

	case TogglePause:
		switch c.status {
		case Playing:
			c.status = Paused
			return true, nil
		case Paused:
			c.status = Playing
			return true, nil
		}
		return false, nil

	case Quit:
		c.status = Stopped
		c.logger.Info("game stopped", zap.Int("number", c.state.Level()), zap.Int("steps", c.state.StepCount()))
		return true, nil

	case Save:
		return true, c.Save()

	case Load:
		return true, c.Load(ctx)
	}
	return false, nil
}

func (c *Controller) move(ctx context.Context, dir engine.Direction) bool {
	if c.status != Playing {
		return false
	}
	if !c.state.ApplyMove(dir) {
		return false
	}
	c.message = ""
	if c.state.IsComplete() {
		c.complete(ctx)
	}
	return true
}

// complete handles a transition into Completed
func (c *Controller) complete(ctx context.Context) {
	c.status = Completed
	level, steps := c.state.Level(), c.state.StepCount()
	c.message = fmt.Sprintf("Level %d complete in %d steps", level, steps)
	c.logger.Info("level completed", zap.Int("number", level), zap.Int("steps", steps))

	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordCompletion(ctx, level, steps); err != nil {
		c.logger.Warn("failed to record completion", zap.Int("number", level), zap.Error(err))
		return
	}
	if !c.hasBest || steps < c.best {
		c.best, c.hasBest = steps, true
	}
}

// Menu lists the entries shown while paused or completed
func (c *Controller) Menu() []MenuAction {
	switch c.status {
	case Completed:
		if c.state.Level() < c.maxLevel {
			return []MenuAction{NextLevel, Resume, Restart, Exit}
		}
		return []MenuAction{Resume, Restart, Exit}
	case Paused:
		return []MenuAction{Resume, Restart, Exit}
	default:
		return nil
	}
}

// Select runs a menu entry. Only entries listed by Menu are accepted.
func (c *Controller) Select(ctx context.Context, action MenuAction) error {
	if !slices.Contains(c.Menu(), action) {
		return fmt.Errorf("%w: %s while %s", ErrActionUnavailable, action, c.status)
	}

	switch action {
	case Resume:
		c.status = Playing
		c.message = ""
		return nil
	case Restart:
		return c.Restart(ctx)
	case NextLevel:
		return c.NextLevel(ctx)
	case Exit:
		c.status = Stopped
		return nil
	}
	return fmt.Errorf("%w: %d", ErrActionUnavailable, action)
}

// Restart reloads the current level from its file
func (c *Controller) Restart(ctx context.Context) error {
	if c.status == Stopped {
		return ErrStopped
	}
	return c.loadLevel(ctx, c.state.Level())
}

// NextLevel loads the following level. At the last level it returns
// ErrNoNextLevel and leaves the game as it was.
func (c *Controller) NextLevel(ctx context.Context) error {
	if c.status == Stopped {
		return ErrStopped
	}
	next := c.state.Level() + 1
	if next > c.maxLevel {
		return fmt.Errorf("%w: level %d is the last", ErrNoNextLevel, c.state.Level())
	}
	return c.loadLevel(ctx, next)
}

// Save writes the current state to the save slot
func (c *Controller) Save() error {
	if c.store == nil {
		return ErrPersistenceOff
	}
	snap, err := c.state.Snapshot()
	if err != nil {
		return err
	}
	if err := c.store.Save(snap); err != nil {
		c.message = "Save failed"
		c.logger.Warn("save failed", zap.Error(err))
		return fmt.Errorf("save game: %w", err)
	}
	c.message = "Game saved"
	c.logger.Info("game saved", zap.Int("number", snap.Number), zap.Int("steps", c.state.StepCount()))
	return nil
}

// Load replaces the current state with the save slot. A failed load leaves
// the game untouched.
func (c *Controller) Load(ctx context.Context) error {
	if c.store == nil {
		return ErrPersistenceOff
	}
	snap, err := c.store.Load()
	if err != nil {
		c.message = "Load failed"
		c.logger.Warn("load failed", zap.Error(err))
		return fmt.Errorf("load game: %w", err)
	}
	if err := c.state.Restore(snap); err != nil {
		c.message = "Load failed"
		c.logger.Warn("load failed", zap.Error(err))
		return fmt.Errorf("load game: %w", err)
	}

	c.status = Playing
	if c.state.IsComplete() {
		c.status = Completed
	}
	c.message = "Game loaded"
	c.refreshBest(ctx)
	c.logger.Info("game loaded", zap.Int("number", snap.Number))
	return nil
}

func (c *Controller) loadLevel(ctx context.Context, number int) error {
	if number < 1 || number > c.maxLevel {
		return &engine.LoadError{Op: "load level", Err: fmt.Errorf("%w: %d not in 1..%d", engine.ErrLevelOutOfRange, number, c.maxLevel)}
	}
	if err := c.state.LoadLevel(c.levels, number); err != nil {
		c.logger.Error("level load failed", zap.Int("number", number), zap.Error(err))
		return err
	}

	c.status = Playing
	c.message = fmt.Sprintf("Level %d", number)
	c.refreshBest(ctx)
	c.logger.Info("level loaded",
		zap.Int("number", number),
		zap.Int("rows", c.state.Rows()),
		zap.Int("cols", c.state.Cols()),
	)
	return nil
}

func (c *Controller) refreshBest(ctx context.Context) {
	c.best, c.hasBest = 0, false
	if c.recorder == nil {
		return
	}
	best, ok, err := c.recorder.BestSteps(ctx, c.state.Level())
	if err != nil {
		c.logger.Warn("failed to read best steps", zap.Int("number", c.state.Level()), zap.Error(err))
		return
	}
	c.best, c.hasBest = best, ok
}
