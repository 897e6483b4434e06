package commands

import (
	"context"
	"fmt"

	"flowboard/internal/application"
	"flowboard/internal/ports"
)

// ConnectStepsResult contains the result of connecting two steps
type ConnectStepsResult struct {
	Created bool
	Message string
}

// ConnectStepsCommand adds a "leads to" edge between two sub-steps.
// Self-loops, duplicates and missing steps are reported, not applied.
type ConnectStepsCommand struct {
	repo     ports.TaskRepository
	TaskID   string
	SourceID string
	TargetID string
}

// NewConnectStepsCommand creates a new ConnectStepsCommand
func NewConnectStepsCommand(repo ports.TaskRepository, taskID, sourceID, targetID string) *ConnectStepsCommand {
	return &ConnectStepsCommand{repo: repo, TaskID: taskID, SourceID: sourceID, TargetID: targetID}
}

// Validate checks if the connect operation is valid
func (c *ConnectStepsCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}
	if err := application.ValidateRequired("targetID", c.TargetID); err != nil {
		return err
	}
	if c.SourceID == c.TargetID {
		return &application.ValidationError{
			Field:   "targetID",
			Message: "a step cannot lead to itself",
		}
	}
	return nil
}

// Execute runs the connect steps command
func (c *ConnectStepsCommand) Execute(ctx context.Context) (*ConnectStepsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.AddEdge(c.SourceID, c.TargetID) {
		// Already connected or a step is missing; the graph is unchanged.
		return &ConnectStepsResult{
			Created: false,
			Message: fmt.Sprintf("No edge created: %s → %s", c.SourceID, c.TargetID),
		}, nil
	}
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &ConnectStepsResult{
		Created: true,
		Message: fmt.Sprintf("Connected %s → %s", c.SourceID, c.TargetID),
	}, nil
}

// DisconnectStepsResult contains the result of removing an edge
type DisconnectStepsResult struct {
	Removed bool
	Message string
}

// DisconnectStepsCommand removes a "leads to" edge between two sub-steps
type DisconnectStepsCommand struct {
	repo     ports.TaskRepository
	TaskID   string
	SourceID string
	TargetID string
}

// NewDisconnectStepsCommand creates a new DisconnectStepsCommand
func NewDisconnectStepsCommand(repo ports.TaskRepository, taskID, sourceID, targetID string) *DisconnectStepsCommand {
	return &DisconnectStepsCommand{repo: repo, TaskID: taskID, SourceID: sourceID, TargetID: targetID}
}

// Validate checks if the disconnect operation is valid
func (c *DisconnectStepsCommand) Validate() error {
	if err := application.ValidateRequired("taskID", c.TaskID); err != nil {
		return err
	}
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}
	return application.ValidateRequired("targetID", c.TargetID)
}

// Execute runs the disconnect steps command
func (c *DisconnectStepsCommand) Execute(ctx context.Context) (*DisconnectStepsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := loadTask(c.repo, c.TaskID)
	if err != nil {
		return nil, err
	}

	if !task.RemoveEdge(c.SourceID, c.TargetID) {
		return &DisconnectStepsResult{
			Removed: false,
			Message: fmt.Sprintf("No such edge: %s → %s", c.SourceID, c.TargetID),
		}, nil
	}
	if err := c.repo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return &DisconnectStepsResult{
		Removed: true,
		Message: fmt.Sprintf("Disconnected %s → %s", c.SourceID, c.TargetID),
	}, nil
}
