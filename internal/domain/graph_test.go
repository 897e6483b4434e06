package domain

import "testing"

func testTask(ids ...string) *Task {
	t := NewTask("Test Task", "")
	for _, id := range ids {
		t.Nodes = append(t.Nodes, &Node{ID: id, Label: "Step " + id, Status: StatusNotStarted})
	}
	return t
}

func TestAddNode(t *testing.T) {
	task := NewTask("Test Task", "")

	a := task.AddNode("First")
	b := task.AddNode("Second")

	if a.ID == "" || b.ID == "" {
		t.Fatal("expected fresh ids for new nodes")
	}
	if a.ID == b.ID {
		t.Errorf("expected unique ids, both were %q", a.ID)
	}
	if a.Status != StatusNotStarted {
		t.Errorf("expected new node status %q, got %q", StatusNotStarted, a.Status)
	}
	if len(task.Nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(task.Nodes))
	}
	if a.Position == b.Position {
		t.Error("expected staggered default positions")
	}
}

func TestRemoveNodePurgesOutgoingSets(t *testing.T) {
	task := testTask("1", "2", "3")
	task.AddEdge("1", "2")
	task.AddEdge("3", "2")
	task.AddEdge("2", "3")

	if !task.RemoveNode("2") {
		t.Fatal("expected RemoveNode to report success")
	}

	if task.Node("2") != nil {
		t.Error("node 2 still present after removal")
	}
	for _, n := range task.Nodes {
		for _, target := range n.LeadsTo {
			if target == "2" {
				t.Errorf("node %s still leads to removed node 2", n.ID)
			}
		}
	}
}

func TestRemoveNodeMissing(t *testing.T) {
	task := testTask("1")
	if task.RemoveNode("nope") {
		t.Error("expected removal of missing node to be a no-op")
	}
	if len(task.Nodes) != 1 {
		t.Errorf("expected 1 node, got %d", len(task.Nodes))
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		target  string
		changed bool
	}{
		{name: "valid edge", source: "1", target: "2", changed: true},
		{name: "self loop rejected", source: "1", target: "1", changed: false},
		{name: "missing source rejected", source: "9", target: "2", changed: false},
		{name: "missing target rejected", source: "1", target: "9", changed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := testTask("1", "2")
			if got := task.AddEdge(tt.source, tt.target); got != tt.changed {
				t.Errorf("AddEdge(%s, %s) = %v, want %v", tt.source, tt.target, got, tt.changed)
			}
		})
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	task := testTask("1", "2")

	if !task.AddEdge("1", "2") {
		t.Fatal("first AddEdge should change the graph")
	}
	if task.AddEdge("1", "2") {
		t.Error("second AddEdge should be a no-op")
	}
	if got := len(task.Node("1").LeadsTo); got != 1 {
		t.Errorf("expected 1 outgoing edge, got %d", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	task := testTask("1", "2")
	task.AddEdge("1", "2")

	if !task.RemoveEdge("1", "2") {
		t.Error("expected RemoveEdge to report a change")
	}
	if task.RemoveEdge("1", "2") {
		t.Error("expected repeated RemoveEdge to be a no-op")
	}
	if task.RemoveEdge("9", "2") {
		t.Error("expected RemoveEdge with missing source to be a no-op")
	}
}

func TestUpdateNode(t *testing.T) {
	task := testTask("1")

	label := "Renamed"
	status := StatusCompleted
	pos := Position{X: 10, Y: 20}
	if !task.UpdateNode("1", NodePatch{Label: &label, Status: &status, Position: &pos}) {
		t.Fatal("expected UpdateNode to succeed")
	}

	n := task.Node("1")
	if n.Label != "Renamed" || n.Status != StatusCompleted || n.Position != pos {
		t.Errorf("patch not applied: %+v", n)
	}

	if task.UpdateNode("missing", NodePatch{Label: &label}) {
		t.Error("expected update of missing node to be a no-op")
	}
}

func TestEdgesSkipsDanglingTargets(t *testing.T) {
	task := testTask("1", "2")
	task.AddEdge("1", "2")
	// Simulate a stale reference slipping in from outside the graph ops.
	task.Node("1").LeadsTo = append(task.Node("1").LeadsTo, "ghost")

	edges := task.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0] != (EdgeRef{SourceID: "1", TargetID: "2"}) {
		t.Errorf("unexpected edge %+v", edges[0])
	}
}

func TestCloneIsDeep(t *testing.T) {
	task := testTask("1", "2")
	task.AddEdge("1", "2")
	task.Node("1").ActionItems = []ActionItem{{Text: "check", Done: false}}

	snapshot := task.Clone()

	task.Node("1").Label = "mutated"
	task.Node("1").ActionItems[0].Done = true
	task.AddEdge("2", "1")

	if snapshot.Node("1").Label != "Step 1" {
		t.Error("clone shares node structs with the original")
	}
	if snapshot.Node("1").ActionItems[0].Done {
		t.Error("clone shares action item slices with the original")
	}
	if len(snapshot.Node("2").LeadsTo) != 0 {
		t.Error("clone shares outgoing sets with the original")
	}
}

func TestStatusNext(t *testing.T) {
	tests := []struct {
		in   Status
		want Status
	}{
		{StatusNotStarted, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusCompleted, StatusNotStarted},
	}
	for _, tt := range tests {
		if got := tt.in.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.in, got, tt.want)
		}
	}
}
