package domain

// History holds the undo/redo timeline as full task snapshots.
// Commit must be called with the pre-mutation state before every mutating
// command, so one discrete user action is exactly one undo step.
//
// Snapshots are owned by the history once passed in; callers hand over deep
// copies (Task.Clone) and receive exclusive ownership back from Undo/Redo.
type History struct {
	undo []*Task // past states, most recent last
	redo []*Task // future states, most recent last
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{}
}

// Commit pushes the pre-mutation snapshot and clears the redo stack
func (h *History) Commit(prior *Task) {
	h.undo = append(h.undo, prior)
	h.redo = nil
}

// Undo pops the most recent past state, stashing current as a future state.
// Returns (nil, false) when there is nothing to undo.
func (h *History) Undo(current *Task) (*Task, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prior := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prior, true
}

// Redo pops the most recent future state, stashing current as a past state.
// Returns (nil, false) when there is nothing to redo.
func (h *History) Redo(current *Task) (*Task, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}

// CanUndo reports whether an undo step is available
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Depth returns the sizes of the undo and redo stacks
func (h *History) Depth() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
