package sqlite

import (
	"testing"

	"flowboard/internal/domain"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	idx := NewIndex()
	if err := idx.Open(t.TempDir()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func indexedTask(title string, ids ...string) *domain.Task {
	task := domain.NewTask(title, "")
	for _, id := range ids {
		task.Nodes = append(task.Nodes, &domain.Node{ID: id, Label: "Step " + id, Status: domain.StatusNotStarted})
	}
	return task
}

func TestIndexSyncAndSearch(t *testing.T) {
	idx := openTestIndex(t)

	task := indexedTask("Launch", "a", "b")
	task.Node("a").Label = "Research the market"
	task.Node("b").Label = "Build prototype"
	task.AddEdge("a", "b")

	stats, err := idx.SyncTask(task)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if stats.NodesAdded != 2 || stats.EdgesAdded != 1 {
		t.Errorf("stats = %+v, want 2 nodes and 1 edge added", stats)
	}

	hits, err := idx.SearchNodes("prototype")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].NodeID != "b" || hits[0].TaskTitle != "Launch" {
		t.Errorf("unexpected hit %+v", hits[0])
	}
}

func TestIndexSyncIsReplace(t *testing.T) {
	idx := openTestIndex(t)

	task := indexedTask("Launch", "a", "b")
	task.AddEdge("a", "b")
	if _, err := idx.SyncTask(task); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// Remove a node and resync; stale rows must disappear.
	task.RemoveNode("b")
	stats, err := idx.SyncTask(task)
	if err != nil {
		t.Fatalf("resync failed: %v", err)
	}
	if stats.NodesDeleted != 2 || stats.NodesAdded != 1 {
		t.Errorf("stats = %+v, want full replace of the task rows", stats)
	}

	_, nodes, edges, err := idx.Stats()
	if err != nil {
		t.Fatalf("stats query failed: %v", err)
	}
	if nodes != 1 || edges != 0 {
		t.Errorf("index holds %d nodes / %d edges, want 1 / 0", nodes, edges)
	}
}

func TestIndexEdgeQueries(t *testing.T) {
	idx := openTestIndex(t)

	task := indexedTask("Launch", "a", "b", "c")
	task.AddEdge("a", "c")
	task.AddEdge("b", "c")
	if _, err := idx.SyncTask(task); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	incoming, err := idx.FindEdgesTo("c")
	if err != nil {
		t.Fatalf("FindEdgesTo failed: %v", err)
	}
	if len(incoming) != 2 {
		t.Errorf("expected 2 incoming edges, got %d", len(incoming))
	}

	outgoing, err := idx.FindEdgesFrom("a")
	if err != nil {
		t.Fatalf("FindEdgesFrom failed: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].TargetID != "c" {
		t.Errorf("unexpected outgoing edges %+v", outgoing)
	}
}

func TestIndexRemoveTask(t *testing.T) {
	idx := openTestIndex(t)

	task := indexedTask("Launch", "a", "b")
	task.AddEdge("a", "b")
	if _, err := idx.SyncTask(task); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if err := idx.RemoveTask(task.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	tasks, nodes, edges, err := idx.Stats()
	if err != nil {
		t.Fatalf("stats query failed: %v", err)
	}
	if tasks != 0 || nodes != 0 || edges != 0 {
		t.Errorf("index not empty after removal: %d/%d/%d", tasks, nodes, edges)
	}
}
