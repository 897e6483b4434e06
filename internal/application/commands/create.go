package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// CreateTaskResult contains the result of creating a task
type CreateTaskResult struct {
	Task    *domain.Task
	Message string
}

// CreateTaskCommand creates a new empty task in the workspace
type CreateTaskCommand struct {
	repo        ports.TaskRepository
	Title       string
	Description string
}

// NewCreateTaskCommand creates a new CreateTaskCommand
func NewCreateTaskCommand(repo ports.TaskRepository, title, description string) *CreateTaskCommand {
	return &CreateTaskCommand{
		repo:        repo,
		Title:       title,
		Description: description,
	}
}

// Validate checks if the create operation is valid
func (c *CreateTaskCommand) Validate() error {
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the create task command
func (c *CreateTaskCommand) Execute(ctx context.Context) (*CreateTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.repo.Create(c.Title, c.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &CreateTaskResult{
		Task:    task,
		Message: fmt.Sprintf("Created task: %s (%s)", task.Title, task.ID),
	}, nil
}

// DeleteTaskResult contains the result of deleting a task
type DeleteTaskResult struct {
	Message string
}

// DeleteTaskCommand removes a stored task
type DeleteTaskCommand struct {
	repo   ports.TaskRepository
	TaskID string
}

// NewDeleteTaskCommand creates a new DeleteTaskCommand
func NewDeleteTaskCommand(repo ports.TaskRepository, taskID string) *DeleteTaskCommand {
	return &DeleteTaskCommand{repo: repo, TaskID: taskID}
}

// Validate checks if the delete operation is valid
func (c *DeleteTaskCommand) Validate() error {
	return application.ValidateRequired("taskID", c.TaskID)
}

// Execute runs the delete task command
func (c *DeleteTaskCommand) Execute(ctx context.Context) (*DeleteTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(c.TaskID); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return &DeleteTaskResult{
		Message: fmt.Sprintf("Deleted task: %s", c.TaskID),
	}, nil
}
