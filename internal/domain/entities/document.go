package entities

import "time"

// CategoryPolicy marks a document as an organizational policy. Policy
// documents share the document lifecycle but carry the policy entity type and
// their own approver set.
const CategoryPolicy = "policy"

// Document represents a versioned organizational document subject to the
// approval workflow.
type Document struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Department string    `json:"department,omitempty"`
	Category   string    `json:"category,omitempty"`
	Content    string    `json:"content"`
	Version    string    `json:"version"`
	Status     Status    `json:"status"`
	CreatedBy  int64     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsPolicy reports whether the document is a policy.
func (d *Document) IsPolicy() bool {
	return d.Category == CategoryPolicy
}

// Ref returns the typed reference for this document. Policies carry their own
// entity type tag.
func (d *Document) Ref() EntityRef {
	if d.IsPolicy() {
		return EntityRef{Type: TypePolicy, ID: d.ID}
	}
	return EntityRef{Type: TypeDocument, ID: d.ID}
}

// WorkflowStatus returns the document's current workflow state.
func (d *Document) WorkflowStatus() Status { return d.Status }

// Owner returns the id of the user that created the document.
func (d *Document) Owner() int64 { return d.CreatedBy }

// DisplayTitle returns the document title for activity details.
func (d *Document) DisplayTitle() string { return d.Title }
