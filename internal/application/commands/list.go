package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// ListTasksResult contains the stored task summaries
type ListTasksResult struct {
	Tasks   []domain.TaskSummary
	Message string
}

// ListTasksCommand lists all tasks in the workspace
type ListTasksCommand struct {
	repo ports.TaskRepository
}

// NewListTasksCommand creates a new ListTasksCommand
func NewListTasksCommand(repo ports.TaskRepository) *ListTasksCommand {
	return &ListTasksCommand{repo: repo}
}

// Execute runs the list tasks command
func (c *ListTasksCommand) Execute(ctx context.Context) (*ListTasksResult, error) {
	tasks, err := c.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ListTasksResult{
		Tasks:   tasks,
		Message: fmt.Sprintf("%d tasks", len(tasks)),
	}, nil
}

// ShowTaskResult contains a full task with its derived edges and layers
type ShowTaskResult struct {
	Task   *domain.Task
	Edges  []domain.EdgeRef
	Layers [][]*domain.Node
}

// ShowTaskCommand loads one task and derives its graph structure
type ShowTaskCommand struct {
	repo   ports.TaskRepository
	TaskID string
}

// NewShowTaskCommand creates a new ShowTaskCommand
func NewShowTaskCommand(repo ports.TaskRepository, taskID string) *ShowTaskCommand {
	return &ShowTaskCommand{repo: repo, TaskID: taskID}
}

// Validate checks if the show operation is valid
func (c *ShowTaskCommand) Validate() error {
	return application.ValidateRequired("taskID", c.TaskID)
}

// Execute runs the show task command
func (c *ShowTaskCommand) Execute(ctx context.Context) (*ShowTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	return &ShowTaskResult{
		Task:   task,
		Edges:  task.Edges(),
		Layers: task.Layers(),
	}, nil
}
