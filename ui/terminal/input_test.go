package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wricardo/sokoban/game/controller"
)

func TestKeyDecoder_Feed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Key
	}{
		{"arrows csi", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{{Kind: KeyUp}, {Kind: KeyDown}, {Kind: KeyRight}, {Kind: KeyLeft}}},
		{"arrows ss3", "\x1bOA\x1bOD", []Key{{Kind: KeyUp}, {Kind: KeyLeft}}},
		{"runes", "zq ", []Key{{Kind: KeyRune, Rune: 'z'}, {Kind: KeyRune, Rune: 'q'}, {Kind: KeyRune, Rune: ' '}}},
		{"enter", "\r\n", []Key{{Kind: KeyEnter}, {Kind: KeyEnter}}},
		{"escape then rune", "\x1bx", []Key{{Kind: KeyEscape}, {Kind: KeyRune, Rune: 'x'}}},
		{"unknown sequence dropped", "\x1b[Zq", []Key{{Kind: KeyRune, Rune: 'q'}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var dec keyDecoder
			assert.Equal(t, test.expected, dec.Feed([]byte(test.input)))
			assert.Empty(t, dec.Flush())
		})
	}
}

func TestKeyDecoder_SplitSequence(t *testing.T) {
	var dec keyDecoder

	assert.Empty(t, dec.Feed([]byte{esc}))
	assert.Empty(t, dec.Feed([]byte{'['}))
	assert.Equal(t, []Key{{Kind: KeyRight}}, dec.Feed([]byte{'C'}))
}

func TestKeyDecoder_FlushLoneEscape(t *testing.T) {
	var dec keyDecoder

	assert.Empty(t, dec.Feed([]byte{esc}))
	assert.Equal(t, []Key{{Kind: KeyEscape}}, dec.Flush())
	assert.Empty(t, dec.Flush())
}

func TestCommandForKey(t *testing.T) {
	tests := []struct {
		key      Key
		expected controller.Command
	}{
		{Key{Kind: KeyUp}, controller.Up},
		{Key{Kind: KeyDown}, controller.Down},
		{Key{Kind: KeyRight}, controller.Right},
		{Key{Kind: KeyLeft}, controller.Left},
		{Key{Kind: KeyRune, Rune: 'z'}, controller.Undo},
		{Key{Kind: KeyRune, Rune: 'u'}, controller.Undo},
		{Key{Kind: KeyRune, Rune: ' '}, controller.TogglePause},
		{Key{Kind: KeyRune, Rune: 'q'}, controller.Quit},
		{Key{Kind: KeyRune, Rune: 'S'}, controller.Save},
		{Key{Kind: KeyRune, Rune: 'L'}, controller.Load},
		{Key{Kind: KeyRune, Rune: 's'}, controller.None},
		{Key{Kind: KeyEnter}, controller.None},
		{Key{Kind: KeyEscape}, controller.None},
	}

	for _, test := range tests {
		t.Run(test.expected.String(), func(t *testing.T) {
			assert.Equal(t, test.expected, CommandForKey(test.key))
		})
	}
}
