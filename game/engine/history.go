package engine

// StepHistory is a fixed-capacity ring of StepEntry values, newest first.
// Pushing onto a full history overwrites the oldest entry.
type StepHistory struct {
	entries []StepEntry
	newest  int
	length  int
}

// NewStepHistory creates an empty history. A non-positive capacity selects MaxUndo.
func NewStepHistory(capacity int) *StepHistory {
	if capacity <= 0 {
		capacity = MaxUndo
	}
	return &StepHistory{
		entries: make([]StepEntry, capacity),
		newest:  -1,
	}
}

// Push records entry as the newest step, evicting the oldest one when full
func (h *StepHistory) Push(entry StepEntry) {
	h.newest = (h.newest + 1) % len(h.entries)
	h.entries[h.newest] = entry
	if h.length < len(h.entries) {
		h.length++
	}
}

// PopFront removes and returns the newest entry
func (h *StepHistory) PopFront() (StepEntry, bool) {
	if h.length == 0 {
		return StepEntry{}, false
	}
	entry := h.entries[h.newest]
	h.entries[h.newest] = StepEntry{}
	h.newest = (h.newest - 1 + len(h.entries)) % len(h.entries)
	h.length--
	return entry, true
}

// Peek returns the newest entry without removing it
func (h *StepHistory) Peek() (StepEntry, bool) {
	if h.length == 0 {
		return StepEntry{}, false
	}
	return h.entries[h.newest], true
}

// Len returns the number of undoable steps
func (h *StepHistory) Len() int {
	return h.length
}

// Cap returns the window size
func (h *StepHistory) Cap() int {
	return len(h.entries)
}

// Entries returns a copy of the history, newest first
func (h *StepHistory) Entries() []StepEntry {
	out := make([]StepEntry, 0, h.length)
	idx := h.newest
	for i := 0; i < h.length; i++ {
		out = append(out, h.entries[idx])
		idx = (idx - 1 + len(h.entries)) % len(h.entries)
	}
	return out
}

// Clear drops every entry
func (h *StepHistory) Clear() {
	clear(h.entries)
	h.newest = -1
	h.length = 0
}
