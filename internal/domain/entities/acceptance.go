package entities

import "time"

// PolicyAcceptance records one user's acknowledgement of an approved policy
// document. At most one row exists per (user, document) pair; re-accepting
// returns the existing row unchanged.
type PolicyAcceptance struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	DocumentID int64     `json:"document_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}
