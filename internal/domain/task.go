package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the progress of a sub-step
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus converts user input to a Status (empty string on failure)
func ParseStatus(s string) Status {
	switch s {
	case "not_started", "todo":
		return StatusNotStarted
	case "in_progress", "active":
		return StatusInProgress
	case "completed", "done":
		return StatusCompleted
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Next cycles to the following status (wrapping back to NotStarted)
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// Position is a canvas-local coordinate in floating point units
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size describes a width/height pair in canvas units
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ActionItem is a checklist entry carried on a node.
// Opaque to the graph algorithms; it only travels through snapshots and persistence.
type ActionItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Attachment is a reference to an external file carried on a node
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Node represents a sub-step placed on the workflow canvas
type Node struct {
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Status      Status       `json:"status"`
	Position    Position     `json:"position"`
	LeadsTo     []string     `json:"leadsTo"`
	ActionItems []ActionItem `json:"actionItems,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Clone returns a deep copy of the node
func (n *Node) Clone() *Node {
	c := *n
	c.LeadsTo = append([]string(nil), n.LeadsTo...)
	c.ActionItems = append([]ActionItem(nil), n.ActionItems...)
	c.Attachments = append([]Attachment(nil), n.Attachments...)
	return &c
}

// Task is the editable unit: a workflow of sub-steps forming a directed graph.
// Nodes keep insertion order; edges are derived from each node's LeadsTo set.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Nodes       []*Node   `json:"nodes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTask creates an empty task with a fresh id
func NewTask(title, description string) *Task {
	now := time.Now().UTC()
	return &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy of the task, used as a history snapshot
func (t *Task) Clone() *Task {
	c := *t
	c.Nodes = make([]*Node, len(t.Nodes))
	for i, n := range t.Nodes {
		c.Nodes[i] = n.Clone()
	}
	return &c
}

// TaskSummary is a lightweight listing of a stored task
type TaskSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Steps     int       `json:"steps"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Proposal is a sub-step suggestion returned by the plan generation service
type Proposal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
