package commands

import (
	"context"
	"errors"
	"testing"

	"flowboard/internal/application"
	"flowboard/internal/domain"
)

// fakePlanner is a canned PlanService for command tests
type fakePlanner struct {
	available bool
	proposals []domain.Proposal
	generated *domain.Task
	err       error
}

func (p *fakePlanner) ProposeSubSteps(task *domain.Task, count int) ([]domain.Proposal, error) {
	return p.proposals, p.err
}

func (p *fakePlanner) GenerateTask(prompt string) (*domain.Task, error) {
	return p.generated, p.err
}

func (p *fakePlanner) RegenerateTask(current *domain.Task, instructions string) (*domain.Task, error) {
	return p.generated, p.err
}

func (p *fakePlanner) IsAvailable() bool { return p.available }

func TestProposeStepsCommand_Accept(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)
	planner := &fakePlanner{
		available: true,
		proposals: []domain.Proposal{
			{Title: "Outline", Description: "rough structure"},
			{Title: "Write"},
		},
	}

	result, err := NewProposeStepsCommand(repo, planner, task.ID, 5, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("expected 2 created steps, got %d", len(result.Created))
	}

	stored, _ := repo.Load(task.ID)
	if len(stored.Nodes) != 3 {
		t.Errorf("expected 3 stored nodes, got %d", len(stored.Nodes))
	}
}

func TestProposeStepsCommand_ReviewOnly(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)
	planner := &fakePlanner{available: true, proposals: []domain.Proposal{{Title: "Outline"}}}

	result, err := NewProposeStepsCommand(repo, planner, task.ID, 5, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Proposals) != 1 || len(result.Created) != 0 {
		t.Errorf("review-only run should return proposals without creating steps: %+v", result)
	}

	stored, _ := repo.Load(task.ID)
	if len(stored.Nodes) != 1 {
		t.Errorf("expected untouched task, got %d nodes", len(stored.Nodes))
	}
}

func TestProposeStepsCommand_PlannerUnavailable(t *testing.T) {
	repo := newMemRepo(graphTask("1"))
	cmd := NewProposeStepsCommand(repo, &fakePlanner{available: false}, "t1", 5, false)

	if err := cmd.Validate(); !errors.Is(err, application.ErrPlannerUnavailable) {
		t.Errorf("expected ErrPlannerUnavailable, got %v", err)
	}
}

func TestRegenerateTaskCommand_KeepsTaskID(t *testing.T) {
	task := graphTask("1", "2")
	repo := newMemRepo(task)

	revised := domain.NewTask("Revised plan", "")
	revised.AddNode("Different step")
	planner := &fakePlanner{available: true, generated: revised}

	result, err := NewRegenerateTaskCommand(repo, planner, task.ID, "shorter").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Task.ID != task.ID {
		t.Errorf("regenerated task id = %q, want original %q", result.Task.ID, task.ID)
	}

	stored, err := repo.Load(task.ID)
	if err != nil {
		t.Fatalf("regenerated task not stored under the original id: %v", err)
	}
	if stored.Title != "Revised plan" {
		t.Errorf("stored title = %q, want %q", stored.Title, "Revised plan")
	}
}

func TestGenerateTaskCommand_PlanError(t *testing.T) {
	repo := newMemRepo()
	planner := &fakePlanner{available: true, err: errors.New("model overloaded")}

	_, err := NewGenerateTaskCommand(repo, planner, "plan a launch").Execute(context.Background())
	var planErr *application.PlanError
	if !errors.As(err, &planErr) {
		t.Fatalf("expected PlanError, got %v", err)
	}
	if !contains(planErr.Error(), "model overloaded") {
		t.Errorf("plan error lost the reason: %v", planErr)
	}
}
