package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// ApprovalStore defines durable storage for approval records.
type ApprovalStore interface {
	// Create persists a single approval record and assigns its id.
	CreateApproval(ctx context.Context, approval *entities.Approval) error

	// CreateBatch persists a set of approval records atomically: either all
	// records are written or none are. Submission fan-out depends on this
	// to never leave an entity pending with a partial approver set.
	CreateApprovalBatch(ctx context.Context, approvals []*entities.Approval) error

	// Get returns an approval by id, or entities.ErrNotFound.
	GetApproval(ctx context.Context, id int64) (*entities.Approval, error)

	// Update persists the approval's status, comments, and decision time.
	UpdateApproval(ctx context.Context, approval *entities.Approval) error

	// ListByEntity returns all approval records referencing the entity,
	// oldest first.
	ListApprovalsByEntity(ctx context.Context, ref entities.EntityRef) ([]entities.Approval, error)

	// ListByApprover returns all approval records addressed to the user,
	// optionally filtered by status (empty status means all), newest first.
	ListApprovalsByApprover(ctx context.Context, userID int64, status entities.Status) ([]entities.Approval, error)
}
