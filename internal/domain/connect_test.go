package domain

import "testing"

func TestConnectSessionCreatesOneEdge(t *testing.T) {
	task := testTask("A", "B")
	var s ConnectSession

	s.Begin("A", Position{X: 1, Y: 1})
	s.Move(Position{X: 5, Y: 5})
	s.Move(Position{X: 9, Y: 9})

	if got := s.Pointer(); got != (Position{X: 9, Y: 9}) {
		t.Errorf("preview pointer = %+v, want {9 9}", got)
	}
	if len(task.Edges()) != 0 {
		t.Error("pointer moves must not mutate the graph")
	}

	source, ok := s.Release("B")
	if !ok || source != "A" {
		t.Fatalf("Release = (%q, %v), want (A, true)", source, ok)
	}
	task.AddEdge(source, "B")

	if s.Active() {
		t.Error("session should be idle after release")
	}
	edges := task.Edges()
	if len(edges) != 1 || edges[0] != (EdgeRef{SourceID: "A", TargetID: "B"}) {
		t.Errorf("expected exactly one edge A→B, got %v", edges)
	}
}

func TestConnectSessionReleaseOnSourceCancels(t *testing.T) {
	var s ConnectSession
	s.Begin("A", Position{})

	if _, ok := s.Release("A"); ok {
		t.Error("release on the source node must cancel, not connect")
	}
	if s.Active() {
		t.Error("session should be idle after a self-release")
	}
}

func TestConnectSessionCancel(t *testing.T) {
	var s ConnectSession
	s.Begin("A", Position{})
	s.Cancel()

	if s.Active() || s.Source() != "" {
		t.Error("cancel should fully reset the session")
	}
	if _, ok := s.Release("B"); ok {
		t.Error("release after cancel must be a no-op")
	}
}

func TestConnectSessionSecondBeginReplacesDraft(t *testing.T) {
	var s ConnectSession
	s.Begin("A", Position{})
	s.Begin("B", Position{X: 3})

	source, ok := s.Release("C")
	if !ok || source != "B" {
		t.Errorf("Release = (%q, %v), want (B, true): second Begin must replace the draft", source, ok)
	}
}

func TestConnectSessionIdleOperations(t *testing.T) {
	var s ConnectSession

	s.Move(Position{X: 4, Y: 4})
	if s.Pointer() != (Position{}) {
		t.Error("move while idle should not record a pointer")
	}
	if _, ok := s.Release("B"); ok {
		t.Error("release while idle should be a no-op")
	}
}
