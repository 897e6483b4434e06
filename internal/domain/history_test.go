package domain

import "testing"

func TestHistoryUndoRestoresCommittedState(t *testing.T) {
	h := NewHistory()
	task := testTask("1")

	prior := task.Clone()
	h.Commit(prior)
	task.AddNode("Second")

	restored, ok := h.Undo(task)
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if len(restored.Nodes) != 1 || restored.Nodes[0].ID != "1" {
		t.Errorf("undo did not restore the committed snapshot: %+v", restored.Nodes)
	}

	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("expected redo to succeed")
	}
	if len(redone.Nodes) != 2 {
		t.Errorf("redo did not restore the pre-undo state, got %d nodes", len(redone.Nodes))
	}
}

func TestHistoryCommitClearsRedo(t *testing.T) {
	h := NewHistory()
	task := testTask("1")

	h.Commit(task.Clone())
	task.AddNode("Second")

	restored, ok := h.Undo(task)
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if !h.CanRedo() {
		t.Fatal("expected a redo step after undo")
	}

	// A new mutation after undo forks the timeline.
	h.Commit(restored.Clone())
	restored.AddNode("Third")

	if h.CanRedo() {
		t.Error("commit after undo must clear the redo stack")
	}
}

func TestHistoryEmptyStacksAreNoOps(t *testing.T) {
	h := NewHistory()
	task := testTask("1")

	if _, ok := h.Undo(task); ok {
		t.Error("undo on empty history should be a no-op")
	}
	if _, ok := h.Redo(task); ok {
		t.Error("redo on empty history should be a no-op")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history reports available steps")
	}
}

func TestHistoryDepth(t *testing.T) {
	h := NewHistory()
	task := testTask("1")

	h.Commit(task.Clone())
	h.Commit(task.Clone())
	if undo, redo := h.Depth(); undo != 2 || redo != 0 {
		t.Errorf("depth = (%d, %d), want (2, 0)", undo, redo)
	}

	h.Undo(task)
	if undo, redo := h.Depth(); undo != 1 || redo != 1 {
		t.Errorf("depth after undo = (%d, %d), want (1, 1)", undo, redo)
	}
}
