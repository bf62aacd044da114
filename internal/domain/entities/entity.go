// Package entities contains core domain data structures.
package entities

import "fmt"

// EntityType identifies which kind of workflow entity a reference points at.
type EntityType string

const (
	TypeDocument EntityType = "document"
	TypeTask     EntityType = "task"
	TypePolicy   EntityType = "policy"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case TypeDocument, TypeTask, TypePolicy:
		return true
	}
	return false
}

// EntityRef is a typed reference to exactly one workflow entity. It replaces
// the nullable documentID/taskID/policyID triple with a single tagged pair so
// there is never ambiguity about which id is set.
type EntityRef struct {
	Type EntityType `json:"type"`
	ID   int64      `json:"id"`
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}

// Status represents the workflow state of an entity or an approval record.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	// Task-only lifecycle states, driven by approval outcomes.
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Terminal reports whether the status forbids further workflow mutation.
// Approved and completed entities are frozen; the engine never touches them.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusCompleted || s == StatusCanceled
}

// Submittable reports whether an entity in this status may enter the approval
// workflow. Rejected entities may be resubmitted.
func (s Status) Submittable() bool {
	return s == StatusDraft || s == StatusRejected
}

// DecisionStatus reports whether s is a status an approver may record on an
// approval record.
func (s Status) DecisionStatus() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusInProgress
}

// Entity is the capability shared by all workflow entity variants.
type Entity interface {
	// Ref returns the typed reference identifying this entity.
	Ref() EntityRef
	// WorkflowStatus returns the entity's current workflow state.
	WorkflowStatus() Status
	// Owner returns the id of the user that created the entity.
	Owner() int64
	// DisplayTitle returns the human-readable title used in activity details.
	DisplayTitle() string
}

// ApprovedOutcome returns the status an entity of the given type takes when
// its approvers reach unanimous approval. Tasks complete rather than approve.
func ApprovedOutcome(t EntityType) Status {
	if t == TypeTask {
		return StatusCompleted
	}
	return StatusApproved
}

// RejectedOutcome returns the status an entity of the given type takes when
// any approver rejects. A rejected task goes back to the queue instead of
// closing.
func RejectedOutcome(t EntityType) Status {
	if t == TypeTask {
		return StatusPending
	}
	return StatusRejected
}
