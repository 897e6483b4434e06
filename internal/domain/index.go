package domain

import "time"

// NodeHit is a cached index entry for a node, used for cross-task search
type NodeHit struct {
	TaskID    string
	TaskTitle string
	NodeID    string
	Label     string
	Status    Status
}

// IndexedEdge is a cached edge row scoped to its owning task
type IndexedEdge struct {
	TaskID   string
	SourceID string
	TargetID string
}

// SyncStats holds statistics from an index sync operation
type SyncStats struct {
	TasksSynced  int
	NodesAdded   int
	NodesDeleted int
	EdgesAdded   int
	EdgesDeleted int
	Duration     time.Duration
}
