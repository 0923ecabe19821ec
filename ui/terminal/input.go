package terminal

import "github.com/wricardo/sokoban/game/controller"

// KeyKind classifies a decoded key press
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyEnter
	KeyEscape
)

// Key is one decoded key press. Rune is set for KeyRune only.
type Key struct {
	Kind KeyKind
	Rune rune
}

const esc = 0x1b

// keyDecoder turns raw-mode input bytes into keys. Escape sequences split
// across reads are held until the next Feed.
type keyDecoder struct {
	pending []byte
}

// Feed decodes data, returning every complete key
func (d *keyDecoder) Feed(data []byte) []Key {
	buf := append(d.pending, data...)
	d.pending = nil

	var keys []Key
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == esc:
			if i+1 >= len(buf) {
				d.pending = append(d.pending, buf[i:]...)
				return keys
			}
			if buf[i+1] != '[' && buf[i+1] != 'O' {
				keys = append(keys, Key{Kind: KeyEscape})
				i++
				continue
			}
			if i+2 >= len(buf) {
				d.pending = append(d.pending, buf[i:]...)
				return keys
			}
			if kind, ok := arrowKind(buf[i+2]); ok {
				keys = append(keys, Key{Kind: kind})
			}
			i += 3

		case b == '\r' || b == '\n':
			keys = append(keys, Key{Kind: KeyEnter})
			i++

		default:
			keys = append(keys, Key{Kind: KeyRune, Rune: rune(b)})
			i++
		}
	}
	return keys
}

// Flush returns a lone pending escape as an Escape key
func (d *keyDecoder) Flush() []Key {
	if len(d.pending) == 0 {
		return nil
	}
	d.pending = nil
	return []Key{{Kind: KeyEscape}}
}

func arrowKind(b byte) (KeyKind, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	default:
		return KeyRune, false
	}
}

// CommandForKey maps a key pressed during play to a controller command
func CommandForKey(k Key) controller.Command {
	switch k.Kind {
	case KeyUp:
		return controller.Up
	case KeyDown:
		return controller.Down
	case KeyRight:
		return controller.Right
	case KeyLeft:
		return controller.Left
	case KeyRune:
		switch k.Rune {
		case 'z', 'u':
			return controller.Undo
		case ' ':
			return controller.TogglePause
		case 'q':
			return controller.Quit
		case 'S':
			return controller.Save
		case 'L':
			return controller.Load
		}
	}
	return controller.None
}
