package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// AcceptanceStore defines storage for policy acceptance records.
type AcceptanceStore interface {
	// CreateAcceptance persists a new acceptance row and assigns its id.
	CreateAcceptance(ctx context.Context, acceptance *entities.PolicyAcceptance) error

	// FindAcceptance returns the acceptance row for the (user, document)
	// pair, or entities.ErrNotFound.
	FindAcceptance(ctx context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error)

	// ListAcceptancesByDocument returns all acceptance rows for a document,
	// newest first.
	ListAcceptancesByDocument(ctx context.Context, documentID int64) ([]entities.PolicyAcceptance, error)
}
