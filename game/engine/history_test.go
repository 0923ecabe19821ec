package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(col int) StepEntry {
	return StepEntry{PriorRow: 0, PriorCol: col}
}

func TestStepHistory_PushPop(t *testing.T) {
	h := NewStepHistory(4)

	_, ok := h.PopFront()
	assert.False(t, ok)

	h.Push(entryAt(1))
	h.Push(entryAt(2))
	h.Push(entryAt(3))
	assert.Equal(t, 3, h.Len())

	top, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, entryAt(3), top)

	for _, want := range []int{3, 2, 1} {
		got, ok := h.PopFront()
		require.True(t, ok)
		assert.Equal(t, entryAt(want), got)
	}
	_, ok = h.PopFront()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
}

func TestStepHistory_EvictsOldest(t *testing.T) {
	h := NewStepHistory(MaxUndo)
	for i := 0; i < MaxUndo+5; i++ {
		h.Push(entryAt(i))
	}

	assert.Equal(t, MaxUndo, h.Len())
	entries := h.Entries()
	require.Len(t, entries, MaxUndo)
	assert.Equal(t, entryAt(MaxUndo+4), entries[0])
	assert.Equal(t, entryAt(5), entries[MaxUndo-1])
}

func TestStepHistory_PushAfterPop(t *testing.T) {
	h := NewStepHistory(3)
	h.Push(entryAt(1))
	h.Push(entryAt(2))
	h.Push(entryAt(3))
	h.Push(entryAt(4))

	got, ok := h.PopFront()
	require.True(t, ok)
	assert.Equal(t, entryAt(4), got)

	h.Push(entryAt(5))
	assert.Equal(t, []StepEntry{entryAt(5), entryAt(3), entryAt(2)}, h.Entries())
}

func TestStepHistory_Clear(t *testing.T) {
	h := NewStepHistory(2)
	h.Push(entryAt(1))
	h.Push(entryAt(2))
	h.Clear()

	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
	_, ok := h.Peek()
	assert.False(t, ok)

	h.Push(entryAt(7))
	assert.Equal(t, []StepEntry{entryAt(7)}, h.Entries())
}

func TestNewStepHistory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, MaxUndo, NewStepHistory(0).Cap())
	assert.Equal(t, MaxUndo, NewStepHistory(-3).Cap())
	assert.Equal(t, 5, NewStepHistory(5).Cap())
}
