package domain

import "github.com/google/uuid"

// Graph operations on a Task. All integrity violations (self-loops, edges to
// missing nodes, removal of missing nodes) are silent no-ops: they can arise
// from UI races and must never fail the editing session.

// EdgeRef is a derived (source, target) pair; edges are not stored independently
type EdgeRef struct {
	SourceID string `json:"sourceId"`
	TargetID string `json:"targetId"`
}

// defaultPosition staggers new nodes diagonally so freshly added
// cards do not stack exactly on top of each other.
func defaultPosition(index int) Position {
	step := float64(index % 8)
	return Position{
		X: LayoutMarginX + step*24,
		Y: LayoutMarginY + step*24,
	}
}

// AddNode appends a new sub-step with a fresh unique id and a default position
func (t *Task) AddNode(label string) *Node {
	n := &Node{
		ID:       uuid.NewString(),
		Label:    label,
		Status:   StatusNotStarted,
		Position: defaultPosition(len(t.Nodes)),
	}
	t.Nodes = append(t.Nodes, n)
	return n
}

// Node returns the node with the given id, or nil
func (t *Task) Node(id string) *Node {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// RemoveNode deletes the node and strips its id from every other node's
// outgoing set in the same step, so no intermediate state is observable.
// Returns false if the id is absent.
func (t *Task) RemoveNode(id string) bool {
	idx := -1
	for i, n := range t.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	t.Nodes = append(t.Nodes[:idx], t.Nodes[idx+1:]...)
	for _, n := range t.Nodes {
		n.LeadsTo = removeID(n.LeadsTo, id)
	}
	return true
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// NodePatch carries optional field updates for UpdateNode
type NodePatch struct {
	Label       *string
	Status      *Status
	Position    *Position
	ActionItems *[]ActionItem
	Attachments *[]Attachment
}

// UpdateNode merges the patch into the node. Returns false if the id is absent.
func (t *Task) UpdateNode(id string, patch NodePatch) bool {
	n := t.Node(id)
	if n == nil {
		return false
	}
	if patch.Label != nil {
		n.Label = *patch.Label
	}
	if patch.Status != nil {
		n.Status = *patch.Status
	}
	if patch.Position != nil {
		n.Position = *patch.Position
	}
	if patch.ActionItems != nil {
		n.ActionItems = *patch.ActionItems
	}
	if patch.Attachments != nil {
		n.Attachments = *patch.Attachments
	}
	return true
}

// HasEdge reports whether source already leads to target
func (t *Task) HasEdge(sourceID, targetID string) bool {
	n := t.Node(sourceID)
	if n == nil {
		return false
	}
	for _, id := range n.LeadsTo {
		if id == targetID {
			return true
		}
	}
	return false
}

// AddEdge records that source leads to target. Self-loops, duplicates and
// edges touching missing nodes are rejected as no-ops. Returns whether the
// graph changed.
func (t *Task) AddEdge(sourceID, targetID string) bool {
	if sourceID == targetID {
		return false
	}
	src := t.Node(sourceID)
	if src == nil || t.Node(targetID) == nil {
		return false
	}
	for _, id := range src.LeadsTo {
		if id == targetID {
			return false
		}
	}
	src.LeadsTo = append(src.LeadsTo, targetID)
	return true
}

// RemoveEdge deletes the source→target edge if present. Returns whether the
// graph changed.
func (t *Task) RemoveEdge(sourceID, targetID string) bool {
	src := t.Node(sourceID)
	if src == nil {
		return false
	}
	before := len(src.LeadsTo)
	src.LeadsTo = removeID(src.LeadsTo, targetID)
	return len(src.LeadsTo) != before
}

// Edges returns all derived (source, target) pairs in insertion order.
// Targets that no longer resolve to a node are skipped.
func (t *Task) Edges() []EdgeRef {
	var edges []EdgeRef
	for _, n := range t.Nodes {
		for _, target := range n.LeadsTo {
			if t.Node(target) == nil {
				continue
			}
			edges = append(edges, EdgeRef{SourceID: n.ID, TargetID: target})
		}
	}
	return edges
}
