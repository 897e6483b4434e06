package ports

import "flowboard/internal/domain"

// TaskRepository defines the interface for task storage operations.
// Tasks are the save/reload unit; node ids must be stable across cycles.
type TaskRepository interface {
	// List returns lightweight summaries of all stored tasks
	List() ([]domain.TaskSummary, error)

	// Load reads a full task by id
	Load(id string) (*domain.Task, error)

	// Save writes the task atomically
	Save(task *domain.Task) error

	// Create stores a new empty task and returns it
	Create(title, description string) (*domain.Task, error)

	// Delete removes a stored task
	Delete(id string) error
}
