package undofsm

// history is a linear record of visited states with a cursor at the active entry.
// cursor is -1 iff entries is empty.
type history struct {
	entries []StateID
	cursor  int
}

func newHistory() history {
	return history{cursor: -1}
}

// record drops any redo branch after the cursor and appends id
func (h *history) record(id StateID) {
	h.entries = append(h.entries[:h.cursor+1], id)
	h.cursor = len(h.entries) - 1
}

// peek returns the entry delta steps from the cursor without moving
func (h *history) peek(delta int) (StateID, bool) {
	if h.cursor < 0 {
		return "", false
	}
	i := h.cursor + delta
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

func (h *history) move(delta int) {
	h.cursor += delta
}

func (h *history) canUndo() bool {
	return h.cursor > 0
}

func (h *history) canRedo() bool {
	return h.cursor < len(h.entries)-1
}

func (h *history) clear() {
	h.entries = nil
	h.cursor = -1
}

func (h *history) snapshot() []StateID {
	out := make([]StateID, len(h.entries))
	copy(out, h.entries)
	return out
}
