package handlers

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
)

// ActivityHandler handles audit trail queries.
type ActivityHandler struct {
	activity ports.ActivityLog
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityLog ports.ActivityLog) *ActivityHandler {
	return &ActivityHandler{activity: activityLog}
}

// HandleForEntity returns the audit trail of one entity, newest first.
func (h *ActivityHandler) HandleForEntity(ctx context.Context, ref entities.EntityRef) ([]entities.Activity, error) {
	return h.activity.ListActivityByEntity(ctx, ref)
}

// HandleByAction returns recent audit entries with the given action.
func (h *ActivityHandler) HandleByAction(ctx context.Context, action string, limit int) ([]entities.Activity, error) {
	return h.activity.ListActivityByAction(ctx, action, limit)
}
