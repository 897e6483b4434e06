package application

import (
	"testing"

	"flowboard/internal/domain"
)

type fakeRepo struct {
	saved *domain.Task
}

func (r *fakeRepo) List() ([]domain.TaskSummary, error) { return nil, nil }
func (r *fakeRepo) Load(id string) (*domain.Task, error) {
	return nil, ErrNotFound
}
func (r *fakeRepo) Save(task *domain.Task) error { r.saved = task; return nil }
func (r *fakeRepo) Create(title, description string) (*domain.Task, error) {
	return domain.NewTask(title, description), nil
}
func (r *fakeRepo) Delete(id string) error { return nil }

func newTestSession() (*Session, *fakeRepo) {
	repo := &fakeRepo{}
	return NewSession(repo, domain.NewTask("Test", "")), repo
}

func TestSessionOneActionOneUndoStep(t *testing.T) {
	s, _ := newTestSession()

	a := s.AddNode("First")
	b := s.AddNode("Second")
	s.Connect(a.ID, b.ID)

	if undo, _ := s.history.Depth(); undo != 3 {
		t.Fatalf("expected 3 undo steps, got %d", undo)
	}

	s.Undo()
	if len(s.Task().Edges()) != 0 {
		t.Error("undo did not revert the connect")
	}
	s.Undo()
	if len(s.Task().Nodes) != 1 {
		t.Errorf("undo did not revert the second add, %d nodes remain", len(s.Task().Nodes))
	}
	s.Redo()
	if len(s.Task().Nodes) != 2 {
		t.Error("redo did not restore the second add")
	}
}

func TestSessionNoOpsRecordNoHistory(t *testing.T) {
	s, _ := newTestSession()
	a := s.AddNode("First")
	b := s.AddNode("Second")
	s.Connect(a.ID, b.ID)
	base, _ := s.history.Depth()

	if s.Connect(a.ID, a.ID) {
		t.Error("self-loop connect should be rejected")
	}
	if s.Connect(a.ID, b.ID) {
		t.Error("duplicate connect should be rejected")
	}
	if s.Connect(a.ID, "missing") {
		t.Error("connect to missing node should be rejected")
	}
	if s.RemoveNode("missing") {
		t.Error("remove of missing node should be rejected")
	}
	if s.MoveNode(a.ID, s.Task().Node(a.ID).Position) {
		t.Error("move to the current position should be rejected")
	}

	if undo, _ := s.history.Depth(); undo != base {
		t.Errorf("no-ops added history: %d steps, want %d", undo, base)
	}
}

func TestSessionMutationAfterUndoClearsRedo(t *testing.T) {
	s, _ := newTestSession()
	s.AddNode("First")
	s.AddNode("Second")

	s.Undo()
	if !s.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	s.AddNode("Fork")
	if s.CanRedo() {
		t.Error("a mutation after undo must clear the redo stack")
	}
}

func TestSessionAcceptProposalsIsOneStep(t *testing.T) {
	s, _ := newTestSession()

	nodes := s.AcceptProposals([]domain.Proposal{
		{Title: "Research", Description: "collect sources"},
		{Title: "Draft"},
		{Title: "Review"},
	})
	if len(nodes) != 3 {
		t.Fatalf("expected 3 created nodes, got %d", len(nodes))
	}
	if len(s.Task().Nodes) != 3 {
		t.Fatalf("expected 3 nodes on the task, got %d", len(s.Task().Nodes))
	}
	if nodes[0].ActionItems[0].Text != "collect sources" {
		t.Error("proposal description not carried onto the node")
	}

	s.Undo()
	if len(s.Task().Nodes) != 0 {
		t.Errorf("bulk accept should undo as a single step, %d nodes remain", len(s.Task().Nodes))
	}

	if s.AcceptProposals(nil) != nil {
		t.Error("accepting zero proposals should be a no-op")
	}
}

func TestSessionAutoLayoutUndo(t *testing.T) {
	s, _ := newTestSession()
	a := s.AddNode("First")
	b := s.AddNode("Second")
	s.Connect(a.ID, b.ID)

	before := s.Task().Node(b.ID).Position
	size := s.AutoLayout(1000)
	if size == (domain.Size{}) {
		t.Fatal("expected a non-zero content size")
	}
	if s.Task().Node(b.ID).Position == before {
		t.Fatal("auto layout did not move the second node")
	}

	s.Undo()
	if got := s.Task().Node(b.ID).Position; got != before {
		t.Errorf("undo after layout restored %+v, want %+v", got, before)
	}
}

func TestSessionAutoLayoutEmptyTask(t *testing.T) {
	s, _ := newTestSession()
	if size := s.AutoLayout(800); size != (domain.Size{}) {
		t.Errorf("layout of an empty task should be a no-op, got %+v", size)
	}
	if s.CanUndo() {
		t.Error("empty layout must not record history")
	}
}

func TestSessionReplaceTaskKeepsID(t *testing.T) {
	s, _ := newTestSession()
	originalID := s.Task().ID
	s.AddNode("First")

	regenerated := domain.NewTask("Regenerated", "")
	regenerated.AddNode("New step")
	s.ReplaceTask(regenerated)

	if s.Task().ID != originalID {
		t.Error("replace must preserve the stored task id")
	}
	if s.Task().Title != "Regenerated" {
		t.Error("replace did not swap in the new task")
	}

	s.Undo()
	if s.Task().Title != "Test" {
		t.Error("undo did not restore the pre-replace task")
	}
}

func TestSessionSaveClearsDirty(t *testing.T) {
	s, repo := newTestSession()
	s.AddNode("First")

	if !s.Dirty() {
		t.Fatal("expected dirty after a mutation")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if s.Dirty() {
		t.Error("save should clear the dirty flag")
	}
	if repo.saved == nil || len(repo.saved.Nodes) != 1 {
		t.Error("save did not hand the task to the repository")
	}
}
