package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"flowboard/internal/application"
	"flowboard/internal/domain"
)

type stubRepo struct {
	saved *domain.Task
}

func (r *stubRepo) List() ([]domain.TaskSummary, error) { return nil, nil }

func (r *stubRepo) Load(id string) (*domain.Task, error) {
	return nil, application.ErrNotFound
}

func (r *stubRepo) Save(task *domain.Task) error {
	r.saved = task.Clone()
	return nil
}

func (r *stubRepo) Create(title, description string) (*domain.Task, error) {
	return domain.NewTask(title, description), nil
}

func (r *stubRepo) Delete(id string) error { return nil }

func newTestCanvas(t *testing.T, labels ...string) (*CanvasModel, *application.Session) {
	t.Helper()

	task := domain.NewTask("test task", "")
	for _, label := range labels {
		task.AddNode(label)
	}
	task.AutoLayout(1200)

	session := application.NewSession(&stubRepo{}, task)
	m := NewCanvasModel(session, nil, nil)
	m.SetSize(80, 24)
	return m, session
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCanvasSelectionCycles(t *testing.T) {
	m, session := newTestCanvas(t, "one", "two", "three")
	nodes := session.Task().Nodes

	if m.selected != nodes[0].ID {
		t.Fatalf("initial selection = %q, want first node %q", m.selected, nodes[0].ID)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != nodes[1].ID {
		t.Errorf("after tab, selection = %q, want %q", m.selected, nodes[1].ID)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.selected != nodes[0].ID {
		t.Errorf("selection should wrap back to the first node")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != nodes[2].ID {
		t.Errorf("shift+tab should wrap backwards to the last node")
	}
}

func TestCanvasMouseDragMovesNode(t *testing.T) {
	m, session := newTestCanvas(t, "only")
	node := session.Task().Nodes[0]
	node.Position = domain.Position{X: 0, Y: 0}

	press := tea.MouseMsg{X: 10, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m.Update(press)
	if m.drag == nil {
		t.Fatal("press on a card should start a drag")
	}
	if m.selected != node.ID {
		t.Errorf("press should select the card")
	}

	m.Update(tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	if node.Position != (domain.Position{X: 0, Y: 0}) {
		t.Errorf("motion must not touch the stored position, got %+v", node.Position)
	}

	m.Update(tea.MouseMsg{X: 30, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.drag != nil {
		t.Error("release should end the drag")
	}
	want := domain.Position{X: 160, Y: 96}
	if node.Position != want {
		t.Errorf("after drop, position = %+v, want %+v", node.Position, want)
	}

	// The whole drag is one undo step
	if !session.Undo() {
		t.Fatal("drop should be undoable")
	}
	node = session.Task().Nodes[0]
	if node.Position != (domain.Position{X: 0, Y: 0}) {
		t.Errorf("undo should restore the pre-drag position, got %+v", node.Position)
	}
	if session.Undo() {
		t.Error("a drag should record exactly one history entry")
	}
}

func TestCanvasConnectByKeyboard(t *testing.T) {
	m, session := newTestCanvas(t, "src", "dst")
	nodes := session.Task().Nodes

	m.Update(keyRune('c'))
	if !m.connect.Active() {
		t.Fatal("c on a selected step should start a draft")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(keyRune('c'))

	if m.connect.Active() {
		t.Error("release should end the draft")
	}
	if !session.Task().HasEdge(nodes[0].ID, nodes[1].ID) {
		t.Error("releasing on a target should add the edge")
	}
}

func TestCanvasConnectTogglesExistingEdge(t *testing.T) {
	m, session := newTestCanvas(t, "src", "dst")
	nodes := session.Task().Nodes
	session.Connect(nodes[0].ID, nodes[1].ID)

	m.SelectNode(nodes[0].ID)
	m.Update(keyRune('c'))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(keyRune('c'))

	if session.Task().HasEdge(nodes[0].ID, nodes[1].ID) {
		t.Error("releasing on an already-connected target should remove the edge")
	}
}

func TestCanvasConnectCancelsOnEmptyCanvasClick(t *testing.T) {
	m, session := newTestCanvas(t, "src", "dst")

	m.Update(keyRune('c'))
	if !m.connect.Active() {
		t.Fatal("c should start a connect draft")
	}

	m.Update(tea.MouseMsg{X: 70, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.connect.Active() {
		t.Error("clicking empty canvas should cancel the draft")
	}
	if len(session.Task().Edges()) != 0 {
		t.Error("cancelled draft must not create an edge")
	}
}

func TestCanvasConnectReleaseOnSourceCancels(t *testing.T) {
	m, session := newTestCanvas(t, "src", "dst")

	m.Update(keyRune('c'))
	m.Update(keyRune('c')) // still on the source

	if m.connect.Active() {
		t.Error("releasing on the source should cancel the draft")
	}
	if len(session.Task().Edges()) != 0 {
		t.Error("cancelled draft must not create an edge")
	}
}

func TestCanvasRemoveStepNeedsConfirmation(t *testing.T) {
	m, session := newTestCanvas(t, "doomed", "safe")
	nodes := session.Task().Nodes

	m.Update(keyRune('x'))
	if m.mode != CanvasConfirmRemove {
		t.Fatal("x should enter the confirmation prompt")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(session.Task().Nodes) != 2 {
		t.Error("cancelling must keep the step")
	}

	m.Update(keyRune('x'))
	m.Update(keyRune('y'))
	if len(session.Task().Nodes) != 1 {
		t.Fatal("confirming should remove the step")
	}
	if m.selected != nodes[1].ID {
		t.Errorf("selection should move to a surviving step")
	}
}

func TestCanvasPanStopsAtOrigin(t *testing.T) {
	m, _ := newTestCanvas(t, "one")

	m.Update(keyRune('h'))
	m.Update(keyRune('k'))
	if m.panX != 0 || m.panY != 0 {
		t.Errorf("panning above the origin should clamp to zero, got (%v, %v)", m.panX, m.panY)
	}

	m.Update(keyRune('l'))
	m.Update(keyRune('j'))
	if m.panX <= 0 || m.panY <= 0 {
		t.Errorf("panning right and down should move the viewport, got (%v, %v)", m.panX, m.panY)
	}
}

func TestCanvasPointerMapping(t *testing.T) {
	m, _ := newTestCanvas(t, "one")
	m.panX = 16
	m.panY = 48

	got := m.toCanvas(10, 2)
	want := domain.Position{X: 16 + 10*UnitsPerCol, Y: 48 + 2*UnitsPerRow}
	if got != want {
		t.Errorf("toCanvas(10, 2) = %+v, want %+v", got, want)
	}
}

func TestCanvasViewRendersCards(t *testing.T) {
	m, session := newTestCanvas(t, "alpha", "beta")
	session.Connect(session.Task().Nodes[0].ID, session.Task().Nodes[1].ID)
	session.AutoLayout(m.contentWidth())

	out := m.View()
	if out == "" {
		t.Fatal("view should render")
	}
	for _, want := range []string{"alpha", "beta", "╭", "╰"} {
		if !strings.Contains(out, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}
