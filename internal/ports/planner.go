package ports

import "flowboard/internal/domain"

// PlanService defines the interface to the external plan generation service.
// It accepts plain structured requests and returns plain proposals or full
// task objects; none of the editor's algorithms live behind this boundary.
type PlanService interface {
	// ProposeSubSteps suggests up to count new sub-steps for the task,
	// taking its existing steps into account
	ProposeSubSteps(task *domain.Task, count int) ([]domain.Proposal, error)

	// GenerateTask builds a complete task (steps, edges, positions) from a
	// free-form prompt
	GenerateTask(prompt string) (*domain.Task, error)

	// RegenerateTask hands the current task over as plain data and returns a
	// revised task honoring the given instructions. Node ids present in the
	// current task are preserved where the step survives.
	RegenerateTask(current *domain.Task, instructions string) (*domain.Task, error)

	// IsAvailable returns true if the backing service can be reached
	IsAvailable() bool
}
