package entities

import "time"

// Approval records one approver's pending or decided vote against one entity.
// One row exists per (entity, approver) pair, created at submission fan-out.
type Approval struct {
	ID         int64      `json:"id"`
	Entity     EntityRef  `json:"entity"`
	UserID     int64      `json:"user_id"`
	Status     Status     `json:"status"`
	Comments   string     `json:"comments,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// Decided reports whether the approver has recorded a decision.
func (a *Approval) Decided() bool {
	return a.ApprovedAt != nil
}
