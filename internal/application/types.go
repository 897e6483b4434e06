package application

import "flowboard/internal/domain"

// Re-export domain types for use by adapters
type (
	Task        = domain.Task
	TaskSummary = domain.TaskSummary
	Node        = domain.Node
	EdgeRef     = domain.EdgeRef
	Position    = domain.Position
	Size        = domain.Size
	Status      = domain.Status
	Proposal    = domain.Proposal
	NodeHit     = domain.NodeHit
)

const (
	StatusNotStarted = domain.StatusNotStarted
	StatusInProgress = domain.StatusInProgress
	StatusCompleted  = domain.StatusCompleted
)

// ParseStatus converts user input to a Status
func ParseStatus(s string) Status {
	return domain.ParseStatus(s)
}
