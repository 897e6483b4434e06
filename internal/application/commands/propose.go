package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// ProposeStepsResult contains the proposals and, when accepted, the new nodes
type ProposeStepsResult struct {
	Proposals []domain.Proposal
	Created   []*domain.Node
	Message   string
}

// ProposeStepsCommand asks the plan generation service for sub-step proposals
// and optionally bulk-creates them on the task
type ProposeStepsCommand struct {
	repo    ports.TaskRepository
	planner ports.PlanService
	TaskID  string
	Count   int
	Accept  bool
}

// NewProposeStepsCommand creates a new ProposeStepsCommand
func NewProposeStepsCommand(repo ports.TaskRepository, planner ports.PlanService, taskID string, count int, accept bool) *ProposeStepsCommand {
	if count <= 0 {
		count = 5
	}
	return &ProposeStepsCommand{repo: repo, planner: planner, TaskID: taskID, Count: count, Accept: accept}
}

// Validate checks if the propose operation is valid
func (c *ProposeStepsCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	if c.planner == nil || !c.planner.IsAvailable() {
		return application.ErrPlannerUnavailable
	}
	return nil
}

// Execute runs the propose steps command
func (c *ProposeStepsCommand) Execute(ctx context.Context) (*ProposeStepsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	proposals, err := c.planner.ProposeSubSteps(task, c.Count)
	if err != nil {
		return nil, &application.PlanError{Operation: "propose", Reason: err.Error()}
	}
	if len(proposals) == 0 {
		return &ProposeStepsResult{Message: "No proposals returned"}, nil
	}

	result := &ProposeStepsResult{
		Proposals: proposals,
		Message:   fmt.Sprintf("Received %d proposals", len(proposals)),
	}
	if !c.Accept {
		return result, nil
	}

	for _, p := range proposals {
		n := task.AddNode(p.Title)
		if p.Description != "" {
			n.ActionItems = []domain.ActionItem{{Text: p.Description}}
		}
		result.Created = append(result.Created, n)
	}
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	result.Message = fmt.Sprintf("Created %d steps from proposals", len(result.Created))
	return result, nil
}

// GenerateTaskResult contains the generated task
type GenerateTaskResult struct {
	Task    *domain.Task
	Message string
}

// GenerateTaskCommand asks the plan generation service for a complete task
// and stores it in the workspace
type GenerateTaskCommand struct {
	repo    ports.TaskRepository
	planner ports.PlanService
	Prompt  string
}

// NewGenerateTaskCommand creates a new GenerateTaskCommand
func NewGenerateTaskCommand(repo ports.TaskRepository, planner ports.PlanService, prompt string) *GenerateTaskCommand {
	return &GenerateTaskCommand{repo: repo, planner: planner, Prompt: prompt}
}

// Validate checks if the generate operation is valid
func (c *GenerateTaskCommand) Validate() error {
	if err := application.ValidateRequired("prompt", c.Prompt); err != nil {
		return err
	}
	if c.planner == nil || !c.planner.IsAvailable() {
		return application.ErrPlannerUnavailable
	}
	return nil
}

// Execute runs the generate task command
func (c *GenerateTaskCommand) Execute(ctx context.Context) (*GenerateTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.planner.GenerateTask(c.Prompt)
	if err != nil {
		return nil, &application.PlanError{Operation: "generate", Reason: err.Error()}
	}

	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save generated task: %w", err)
	}

	return &GenerateTaskResult{
		Task:    task,
		Message: fmt.Sprintf("Generated task %q with %d steps", task.Title, len(task.Nodes)),
	}, nil
}

// RegenerateTaskResult contains the revised task
type RegenerateTaskResult struct {
	Task    *domain.Task
	Message string
}

// RegenerateTaskCommand hands the current task to the plan generation service
// as plain data and stores the revised result under the same id
type RegenerateTaskCommand struct {
	repo         ports.TaskRepository
	planner      ports.PlanService
	TaskID       string
	Instructions string
}

// NewRegenerateTaskCommand creates a new RegenerateTaskCommand
func NewRegenerateTaskCommand(repo ports.TaskRepository, planner ports.PlanService, taskID, instructions string) *RegenerateTaskCommand {
	return &RegenerateTaskCommand{repo: repo, planner: planner, TaskID: taskID, Instructions: instructions}
}

// Validate checks if the regenerate operation is valid
func (c *RegenerateTaskCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	if c.planner == nil || !c.planner.IsAvailable() {
		return application.ErrPlannerUnavailable
	}
	return nil
}

// Execute runs the regenerate task command
func (c *RegenerateTaskCommand) Execute(ctx context.Context) (*RegenerateTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	revised, err := c.planner.RegenerateTask(current, c.Instructions)
	if err != nil {
		return nil, &application.PlanError{Operation: "regenerate", Reason: err.Error()}
	}

	// The stored unit keeps its identity across regenerations.
	revised.ID = current.ID
	revised.CreatedAt = current.CreatedAt
	if err := c.repo.Save(revised); err != nil {
		return nil, fmt.Errorf("failed to save regenerated task: %w", err)
	}

	return &RegenerateTaskResult{
		Task:    revised,
		Message: fmt.Sprintf("Regenerated task %q with %d steps", revised.Title, len(revised.Nodes)),
	}, nil
}
