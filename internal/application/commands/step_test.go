package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flowboard/internal/application"
	"flowboard/internal/domain"
)

// memRepo is an in-memory TaskRepository for command tests
type memRepo struct {
	tasks map[string]*domain.Task
}

func newMemRepo(tasks ...*domain.Task) *memRepo {
	r := &memRepo{tasks: make(map[string]*domain.Task)}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *memRepo) List() ([]domain.TaskSummary, error) {
	var out []domain.TaskSummary
	for _, t := range r.tasks {
		out = append(out, domain.TaskSummary{ID: t.ID, Title: t.Title, Steps: len(t.Nodes)})
	}
	return out, nil
}

func (r *memRepo) Load(id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *memRepo) Save(task *domain.Task) error {
	r.tasks[task.ID] = task.Clone()
	return nil
}

func (r *memRepo) Create(title, description string) (*domain.Task, error) {
	t := domain.NewTask(title, description)
	r.tasks[t.ID] = t
	return t, nil
}

func (r *memRepo) Delete(id string) error {
	if _, ok := r.tasks[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func graphTask(ids ...string) *domain.Task {
	t := domain.NewTask("Graph Task", "")
	for _, id := range ids {
		t.Nodes = append(t.Nodes, &domain.Node{ID: id, Label: "Step " + id, Status: domain.StatusNotStarted})
	}
	return t
}

func TestAddStepCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		taskID  string
		label   string
		wantErr bool
		errMsg  string
	}{
		{name: "valid", taskID: "t1", label: "Do research", wantErr: false},
		{name: "empty task ID", taskID: "", label: "Do research", wantErr: true, errMsg: "task ID is required"},
		{name: "empty label", taskID: "t1", label: "  ", wantErr: true, errMsg: "label is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddStepCommand{TaskID: tt.taskID, Label: tt.label}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddStepCommand_Execute(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)

	result, err := NewAddStepCommand(repo, task.ID, "New step").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Node.Label != "New step" {
		t.Errorf("node label = %q, want %q", result.Node.Label, "New step")
	}

	stored, _ := repo.Load(task.ID)
	if len(stored.Nodes) != 2 {
		t.Errorf("expected 2 stored nodes, got %d", len(stored.Nodes))
	}
}

func TestRemoveStepCommand_Execute(t *testing.T) {
	task := graphTask("1", "2", "3")
	task.AddEdge("1", "2")
	task.AddEdge("3", "2")
	repo := newMemRepo(task)

	_, err := NewRemoveStepCommand(repo, task.ID, "2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := repo.Load(task.ID)
	if stored.Node("2") != nil {
		t.Error("step 2 still stored after removal")
	}
	for _, n := range stored.Nodes {
		for _, target := range n.LeadsTo {
			if target == "2" {
				t.Errorf("node %s still leads to removed step", n.ID)
			}
		}
	}
}

func TestRemoveStepCommand_MissingStep(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)

	_, err := NewRemoveStepCommand(repo, task.ID, "nope").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetStatusCommand_Execute(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)

	result, err := NewSetStatusCommand(repo, task.ID, "1", "in_progress").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Node.Status != domain.StatusInProgress {
		t.Errorf("status = %q, want %q", result.Node.Status, domain.StatusInProgress)
	}
}

func TestSetStatusCommand_UnknownStatus(t *testing.T) {
	cmd := &SetStatusCommand{TaskID: "t", StepID: "1", RawStatus: "almost_done"}
	err := cmd.Validate()
	if err == nil || !contains(err.Error(), "unknown status") {
		t.Errorf("expected unknown status error, got %v", err)
	}
}
