package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// DefaultLayoutWidth is the content width assumed when no canvas is attached
// (CLI and MCP surfaces)
const DefaultLayoutWidth = 1200.0

// AutoLayoutResult contains the result of an auto layout pass
type AutoLayoutResult struct {
	Size    domain.Size
	Layers  [][]*domain.Node
	Message string
}

// AutoLayoutCommand recomputes node positions as layered columns
type AutoLayoutCommand struct {
	repo   ports.TaskRepository
	TaskID string
	Width  float64
}

// NewAutoLayoutCommand creates a new AutoLayoutCommand
func NewAutoLayoutCommand(repo ports.TaskRepository, taskID string, width float64) *AutoLayoutCommand {
	if width <= 0 {
		width = DefaultLayoutWidth
	}
	return &AutoLayoutCommand{repo: repo, TaskID: taskID, Width: width}
}

// Validate checks if the layout operation is valid
func (c *AutoLayoutCommand) Validate() error {
	return application.ValidateRequired("taskID", c.TaskID)
}

// Execute runs the auto layout command
func (c *AutoLayoutCommand) Execute(ctx context.Context) (*AutoLayoutResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	layers := task.Layers()
	size := task.AutoLayout(c.Width)
	if len(layers) == 0 {
		return &AutoLayoutResult{Message: "Nothing to lay out"}, nil
	}

	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &AutoLayoutResult{
		Size:   size,
		Layers: layers,
		Message: fmt.Sprintf("Arranged %d steps into %d layers (%.0f×%.0f)",
			len(task.Nodes), len(layers), size.Width, size.Height),
	}, nil
}
