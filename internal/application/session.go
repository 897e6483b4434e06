package application

import (
	"fmt"
	"time"

	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// Session owns the single task being edited interactively. Every mutating
// method records a pre-mutation snapshot through the history before touching
// the graph, so one user action maps to exactly one undo step. Operations
// that would not change the graph (self-loops, missing ids, duplicate edges)
// skip both the commit and the mutation.
//
// A session is not safe for concurrent use. All mutations must happen on
// the event loop driving the UI.
type Session struct {
	repo    ports.TaskRepository
	task    *domain.Task
	history *domain.History
	dirty   bool
}

// NewSession starts editing the given task
func NewSession(repo ports.TaskRepository, task *domain.Task) *Session {
	return &Session{
		repo:    repo,
		task:    task,
		history: domain.NewHistory(),
	}
}

// Task returns the current editable task
func (s *Session) Task() *domain.Task {
	return s.task
}

// Dirty reports whether there are unsaved changes
func (s *Session) Dirty() bool {
	return s.dirty
}

func (s *Session) commit() {
	s.history.Commit(s.task.Clone())
	s.dirty = true
}

// AddNode creates a new sub-step as one undo step
func (s *Session) AddNode(label string) *domain.Node {
	s.commit()
	return s.task.AddNode(label)
}

// RemoveNode deletes a sub-step, purging it from all outgoing sets.
// Returns false (and records nothing) if the id is absent.
func (s *Session) RemoveNode(id string) bool {
	if s.task.Node(id) == nil {
		return false
	}
	s.commit()
	return s.task.RemoveNode(id)
}

// Rename changes a sub-step's label
func (s *Session) Rename(id, label string) bool {
	n := s.task.Node(id)
	if n == nil || n.Label == label {
		return false
	}
	s.commit()
	return s.task.UpdateNode(id, domain.NodePatch{Label: &label})
}

// SetStatus changes a sub-step's status
func (s *Session) SetStatus(id string, status domain.Status) bool {
	n := s.task.Node(id)
	if n == nil || n.Status == status {
		return false
	}
	s.commit()
	return s.task.UpdateNode(id, domain.NodePatch{Status: &status})
}

// CycleStatus advances a sub-step to its next status
func (s *Session) CycleStatus(id string) bool {
	n := s.task.Node(id)
	if n == nil {
		return false
	}
	return s.SetStatus(id, n.Status.Next())
}

// MoveNode places a sub-step at the given position. Called once per drop,
// not per pointer-move frame; the drag preview never touches the task.
func (s *Session) MoveNode(id string, pos domain.Position) bool {
	n := s.task.Node(id)
	if n == nil || n.Position == pos {
		return false
	}
	s.commit()
	return s.task.UpdateNode(id, domain.NodePatch{Position: &pos})
}

// Connect adds a source→target edge. No-ops (self-loop, missing node,
// duplicate) record no history.
func (s *Session) Connect(sourceID, targetID string) bool {
	if sourceID == targetID || s.task.HasEdge(sourceID, targetID) {
		return false
	}
	if s.task.Node(sourceID) == nil || s.task.Node(targetID) == nil {
		return false
	}
	s.commit()
	return s.task.AddEdge(sourceID, targetID)
}

// Disconnect removes a source→target edge
func (s *Session) Disconnect(sourceID, targetID string) bool {
	if !s.task.HasEdge(sourceID, targetID) {
		return false
	}
	s.commit()
	return s.task.RemoveEdge(sourceID, targetID)
}

// AcceptProposals bulk-creates sub-steps from plan service proposals as a
// single undo step. Returns the created nodes.
func (s *Session) AcceptProposals(proposals []domain.Proposal) []*domain.Node {
	if len(proposals) == 0 {
		return nil
	}
	s.commit()
	nodes := make([]*domain.Node, 0, len(proposals))
	for _, p := range proposals {
		n := s.task.AddNode(p.Title)
		if p.Description != "" {
			n.ActionItems = []domain.ActionItem{{Text: p.Description}}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// AutoLayout recomputes every node position for the given content width and
// returns the required content-area size. A task with no nodes is a no-op.
func (s *Session) AutoLayout(contentWidth float64) domain.Size {
	if len(s.task.Nodes) == 0 {
		return domain.Size{}
	}
	s.commit()
	return s.task.AutoLayout(contentWidth)
}

// ReplaceTask swaps in a regenerated task as one undo step.
// The task id is preserved so the session stays bound to the same stored unit.
func (s *Session) ReplaceTask(next *domain.Task) {
	s.commit()
	next.ID = s.task.ID
	next.CreatedAt = s.task.CreatedAt
	s.task = next
}

// Undo restores the most recent past state. No-op on an empty stack.
func (s *Session) Undo() bool {
	prior, ok := s.history.Undo(s.task)
	if !ok {
		return false
	}
	s.task = prior
	s.dirty = true
	return true
}

// Redo restores the most recent undone state. No-op on an empty stack.
func (s *Session) Redo() bool {
	next, ok := s.history.Redo(s.task)
	if !ok {
		return false
	}
	s.task = next
	s.dirty = true
	return true
}

// CanUndo reports whether an undo step is available
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step is available
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Save persists the current task and clears the dirty flag
func (s *Session) Save() error {
	s.task.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(s.task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	s.dirty = false
	return nil
}
