package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// ActivityLog defines append-only storage for audit entries. Entries are
// never mutated or deleted.
type ActivityLog interface {
	// Append writes a new activity entry and assigns its id.
	AppendActivity(ctx context.Context, activity *entities.Activity) error

	// ListByEntity returns activity entries for one entity, newest first.
	ListActivityByEntity(ctx context.Context, ref entities.EntityRef) ([]entities.Activity, error)

	// ListByAction returns activity entries with the given action, newest
	// first, up to limit.
	ListActivityByAction(ctx context.Context, action string, limit int) ([]entities.Activity, error)
}
