package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flowboard/internal/application"
	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// Repository implements ports.TaskRepository using one JSON document per
// task in a workspace directory. Node ids live inside the document and are
// untouched by storage, so they survive save/reload cycles.
type Repository struct {
	workspacePath string
}

// Ensure Repository implements TaskRepository
var _ ports.TaskRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository
func NewRepository(workspacePath string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(workspacePath, "~") {
		home, _ := os.UserHomeDir()
		workspacePath = filepath.Join(home, workspacePath[1:])
	}
	return &Repository{workspacePath: workspacePath}
}

// WorkspacePath returns the expanded workspace directory
func (r *Repository) WorkspacePath() string {
	return r.workspacePath
}

func (r *Repository) taskPath(id string) string {
	return filepath.Join(r.workspacePath, id+".json")
}

// List returns summaries of all stored tasks, most recently updated first
func (r *Repository) List() ([]domain.TaskSummary, error) {
	entries, err := os.ReadDir(r.workspacePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	var summaries []domain.TaskSummary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		task, err := r.readTask(filepath.Join(r.workspacePath, entry.Name()))
		if err != nil {
			// Skip unreadable documents rather than failing the whole listing.
			continue
		}
		summaries = append(summaries, domain.TaskSummary{
			ID:        task.ID,
			Title:     task.Title,
			Steps:     len(task.Nodes),
			UpdatedAt: task.UpdatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	return summaries, nil
}

// Load reads a full task by id
func (r *Repository) Load(id string) (*domain.Task, error) {
	task, err := r.readTask(r.taskPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("task %s: %w", id, application.ErrNotFound)
	}
	return task, err
}

func (r *Repository) readTask(path string) (*domain.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var task domain.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &task, nil
}

// Save writes the task atomically via a temp file and rename
func (r *Repository) Save(task *domain.Task) error {
	if task.ID == "" {
		return fmt.Errorf("task has no id: %w", application.ErrInvalidID)
	}
	if err := os.MkdirAll(r.workspacePath, 0755); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	data, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode task: %w", err)
	}

	tmp, err := os.CreateTemp(r.workspacePath, "."+task.ID+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write task: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, r.taskPath(task.ID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to store task: %w", err)
	}
	return nil
}

// Create stores a new empty task and returns it
func (r *Repository) Create(title, description string) (*domain.Task, error) {
	task := domain.NewTask(title, description)
	if err := r.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a stored task
func (r *Repository) Delete(id string) error {
	err := os.Remove(r.taskPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("task %s: %w", id, application.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
