package entities

import "time"

// Task priorities. Free-form beyond these in the stores; the constants cover
// what the CLI offers.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a unit of work subject to the approval workflow. Unlike
// documents, tasks complete rather than approve, and a rejection reopens the
// task instead of closing it.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Status      Status    `json:"status"`
	CreatedBy   int64     `json:"created_by"`
	AssignedTo  int64     `json:"assigned_to,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ref returns the typed reference for this task.
func (t *Task) Ref() EntityRef {
	return EntityRef{Type: TypeTask, ID: t.ID}
}

// WorkflowStatus returns the task's current workflow state.
func (t *Task) WorkflowStatus() Status { return t.Status }

// Owner returns the id of the user that created the task.
func (t *Task) Owner() int64 { return t.CreatedBy }

// DisplayTitle returns the task title for activity details.
func (t *Task) DisplayTitle() string { return t.Title }
