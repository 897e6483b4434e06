package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// loadTask fetches a task, translating a missing id into ErrNotFound
func loadTask(repo ports.TaskRepository, taskID string) (*domain.Task, error) {
	task, err := repo.Load(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task %s: %w", taskID, err)
	}
	return task, nil
}

// AddStepResult contains the result of adding a step
type AddStepResult struct {
	Node    *domain.Node
	Message string
}

// AddStepCommand appends a new sub-step to a task's workflow
type AddStepCommand struct {
	repo   ports.TaskRepository
	TaskID string
	Label  string
}

// NewAddStepCommand creates a new AddStepCommand
func NewAddStepCommand(repo ports.TaskRepository, taskID, label string) *AddStepCommand {
	return &AddStepCommand{repo: repo, TaskID: taskID, Label: label}
}

// Validate checks if the add operation is valid
func (c *AddStepCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	return application.ValidateRequired("label", c.Label)
}

// Execute runs the add step command
func (c *AddStepCommand) Execute(ctx context.Context) (*AddStepResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	node := task.AddNode(c.Label)
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &AddStepResult{
		Node:    node,
		Message: fmt.Sprintf("Added step: %s (%s)", node.Label, node.ID),
	}, nil
}

// RemoveStepResult contains the result of removing a step
type RemoveStepResult struct {
	Message string
}

// RemoveStepCommand deletes a sub-step and every edge pointing at it
type RemoveStepCommand struct {
	repo   ports.TaskRepository
	TaskID string
	StepID string
}

// NewRemoveStepCommand creates a new RemoveStepCommand
func NewRemoveStepCommand(repo ports.TaskRepository, taskID, stepID string) *RemoveStepCommand {
	return &RemoveStepCommand{repo: repo, TaskID: taskID, StepID: stepID}
}

// Validate checks if the remove operation is valid
func (c *RemoveStepCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	return application.ValidateRequired("stepID", c.StepID)
}

// Execute runs the remove step command
func (c *RemoveStepCommand) Execute(ctx context.Context) (*RemoveStepResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.RemoveNode(c.StepID) {
		return nil, fmt.Errorf("step %s: %w", c.StepID, application.ErrNotFound)
	}
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &RemoveStepResult{
		Message: fmt.Sprintf("Removed step: %s", c.StepID),
	}, nil
}

// SetStatusResult contains the result of a status change
type SetStatusResult struct {
	Node    *domain.Node
	Message string
}

// SetStatusCommand updates a sub-step's status
type SetStatusCommand struct {
	repo      ports.TaskRepository
	TaskID    string
	StepID    string
	RawStatus string
}

// NewSetStatusCommand creates a new SetStatusCommand
func NewSetStatusCommand(repo ports.TaskRepository, taskID, stepID, rawStatus string) *SetStatusCommand {
	return &SetStatusCommand{repo: repo, TaskID: taskID, StepID: stepID, RawStatus: rawStatus}
}

// Validate checks if the status change is valid
func (c *SetStatusCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	if err := application.ValidateRequired("stepID", c.StepID); err != nil {
		return err
	}
	_, err := application.ValidateStatus("status", c.RawStatus)
	return err
}

// Execute runs the set status command
func (c *SetStatusCommand) Execute(ctx context.Context) (*SetStatusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	status, _ := application.ValidateStatus("status", c.RawStatus)

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.UpdateNode(c.StepID, domain.NodePatch{Status: &status}) {
		return nil, fmt.Errorf("step %s: %w", c.StepID, application.ErrNotFound)
	}
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &SetStatusResult{
		Node:    task.Node(c.StepID),
		Message: fmt.Sprintf("Step %s is now %s", c.StepID, status),
	}, nil
}
