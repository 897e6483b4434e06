package ports

import "flowboard/internal/domain"

// TaskIndex provides cached cross-task access to nodes and edges.
// Query operations should be O(log n) via database indexes.
type TaskIndex interface {
	// Lifecycle
	Open(workspaceDir string) error
	Close() error

	// SyncTask replaces the cached rows for one task in a single transaction
	SyncTask(task *domain.Task) (*domain.SyncStats, error)

	// RemoveTask drops all cached rows for a task
	RemoveTask(taskID string) error

	// SearchNodes finds nodes whose label matches the query, across tasks
	SearchNodes(query string) ([]domain.NodeHit, error)

	// Edge queries
	FindEdgesTo(nodeID string) ([]domain.IndexedEdge, error)
	FindEdgesFrom(nodeID string) ([]domain.IndexedEdge, error)

	// Stats returns row counts for diagnostics
	Stats() (tasks, nodes, edges int, err error)
}
