package entities

import "time"

// Activity actions not derived from a decision status. Decision activities
// use the decision status value itself as the action.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionSubmit = "submit"
	ActionAccept = "accept"
	ActionDelete = "delete"
)

// Activity represents a logged state change in the system. Rows are
// append-only; nothing mutates or deletes them.
type Activity struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	Entity    EntityRef `json:"entity"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
