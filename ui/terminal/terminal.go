// Package terminal runs the interactive game on a raw-mode terminal.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wricardo/sokoban/game/controller"
)

// ErrNotTerminal is returned when the input is not an interactive terminal
var ErrNotTerminal = errors.New("input is not a terminal")

// DefaultTick is the redraw interval used when Options.Tick is unset
const DefaultTick = 50 * time.Millisecond

// Options configures a UI. Zero values select stdin, stdout, DefaultTick
// and a no-op logger.
type Options struct {
	In      *os.File
	Out     io.Writer
	Tick    time.Duration
	Logger  *zap.Logger
	NoColor bool
}

// UI owns the control loop for one controller
type UI struct {
	ctrl   *controller.Controller
	opts   Options
	cursor int
	notice string
}

// New creates a UI for ctrl
func New(ctrl *controller.Controller, opts Options) *UI {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &UI{ctrl: ctrl, opts: opts}
}

// Run puts the terminal in raw mode and plays until the game stops or ctx
// is cancelled. The terminal is restored on every exit path.
func (u *UI) Run(ctx context.Context) error {
	fd := int(u.opts.In.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		fmt.Fprint(u.opts.Out, Reset+clearScreen+cursorHome+showCursor)
		if err := term.Restore(fd, old); err != nil {
			u.opts.Logger.Warn("failed to restore terminal", zap.Error(err))
		}
	}()
	fmt.Fprint(u.opts.Out, hideCursor+clearScreen)

	input := make(chan []byte)
	readErrs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go readInput(u.opts.In, input, readErrs, done)

	ticker := time.NewTicker(u.opts.Tick)
	defer ticker.Stop()

	var dec keyDecoder
	dirty := true
	for u.ctrl.Status() != controller.Stopped {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErrs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read input: %w", err)

		case data := <-input:
			for _, key := range dec.Feed(data) {
				u.HandleKey(ctx, key)
			}
			dirty = true

		case <-ticker.C:
			for _, key := range dec.Flush() {
				u.HandleKey(ctx, key)
				dirty = true
			}
			if !dirty {
				continue
			}
			if err := Render(u.opts.Out, u.Frame()); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			dirty = false
		}
	}
	return nil
}

// HandleKey applies one key press. While a menu is open, arrows move the
// cursor and Enter selects. Failures are shown on the message line.
func (u *UI) HandleKey(ctx context.Context, k Key) {
	u.notice = ""

	if menu := u.ctrl.Menu(); len(menu) > 0 {
		u.cursor = clampCursor(u.cursor, len(menu))
		switch {
		case k.Kind == KeyUp:
			u.cursor = (u.cursor + len(menu) - 1) % len(menu)
			return
		case k.Kind == KeyDown:
			u.cursor = (u.cursor + 1) % len(menu)
			return
		case k.Kind == KeyEnter:
			action := menu[u.cursor]
			u.cursor = 0
			if err := u.ctrl.Select(ctx, action); err != nil {
				u.fail(fmt.Sprintf("select %s", action), err)
			}
			return
		case k.Kind == KeyEscape:
			k = Key{Kind: KeyRune, Rune: ' '}
		}
	}

	cmd := CommandForKey(k)
	if cmd == controller.None {
		return
	}
	if _, err := u.ctrl.Dispatch(ctx, cmd); err != nil {
		u.fail(cmd.String(), err)
	}
}

// Frame captures the screen for the current state
func (u *UI) Frame() Frame {
	f := FrameFor(u.ctrl, 0, !u.opts.NoColor)
	f.Cursor = clampCursor(u.cursor, len(f.Menu))
	if u.notice != "" {
		f.Message = u.notice
	}
	return f
}

func (u *UI) fail(op string, err error) {
	u.notice = fmt.Sprintf("%s: %v", op, err)
	u.opts.Logger.Warn("command failed", zap.String("op", op), zap.Error(err))
}

func clampCursor(cursor, n int) int {
	if cursor < 0 || cursor >= n {
		return 0
	}
	return cursor
}

// readInput forwards raw reads until the reader fails or done is closed
func readInput(r io.Reader, out chan<- []byte, errs chan<- error, done <-chan struct{}) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case out <- data:
			case <-done:
				return
			}
		}
		if err != nil {
			errs <- err
			return
		}
	}
}
