package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// VersionStore defines append-only storage for document content snapshots.
type VersionStore interface {
	// Append writes a new version row. Rows are immutable once written.
	AppendVersion(ctx context.Context, version *entities.DocumentVersion) error

	// ListByDocument returns all versions of a document, newest first.
	ListVersionsByDocument(ctx context.Context, documentID int64) ([]entities.DocumentVersion, error)

	// Latest returns the most recent version of a document, or
	// entities.ErrNotFound if none exists.
	LatestVersion(ctx context.Context, documentID int64) (*entities.DocumentVersion, error)
}
