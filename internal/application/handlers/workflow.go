// Package handlers provides the pre-authorized application surface over the
// domain services. Role and ownership checks live here; the services trust
// calls that reach them.
package handlers

import (
	"context"
	"fmt"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
	"github.com/docflow/docflow-core/internal/domain/services"
)

// WorkflowHandler handles submission and decision operations.
type WorkflowHandler struct {
	workflow  *services.WorkflowService
	entities  ports.EntityStore
	approvals ports.ApprovalStore
	directory ports.RoleDirectory
}

// NewWorkflowHandler creates a new WorkflowHandler.
func NewWorkflowHandler(
	workflow *services.WorkflowService,
	entityStore ports.EntityStore,
	approvalStore ports.ApprovalStore,
	directory ports.RoleDirectory,
) *WorkflowHandler {
	return &WorkflowHandler{
		workflow:  workflow,
		entities:  entityStore,
		approvals: approvalStore,
		directory: directory,
	}
}

// HandleSubmit submits an entity for approval. The actor must own the entity
// or hold a privileged role.
func (h *WorkflowHandler) HandleSubmit(ctx context.Context, ref entities.EntityRef, actorID int64) error {
	entity, err := h.entities.Get(ctx, ref)
	if err != nil {
		return fmt.Errorf("%w: %s", entities.ErrNotFound, ref)
	}
	if entity.Owner() != actorID {
		privileged, err := h.directory.HasAnyRole(ctx, actorID, entities.PrivilegedRoles...)
		if err != nil {
			return fmt.Errorf("%w: checking actor roles: %v", entities.ErrDependency, err)
		}
		if !privileged {
			return fmt.Errorf("%w: user %d may not submit %s", entities.ErrForbidden, actorID, ref)
		}
	}
	return h.workflow.Submit(ctx, ref, actorID)
}

// HandleDecide records an approval decision. The actor must hold a decider
// role.
func (h *WorkflowHandler) HandleDecide(ctx context.Context, approvalID int64, status entities.Status, comments string, actorID int64) (*entities.Approval, error) {
	allowed, err := h.directory.HasAnyRole(ctx, actorID, entities.DeciderRoles...)
	if err != nil {
		return nil, fmt.Errorf("%w: checking actor roles: %v", entities.ErrDependency, err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: user %d may not decide approvals", entities.ErrForbidden, actorID)
	}
	return h.workflow.Decide(ctx, approvalID, status, comments, actorID)
}

// HandleListApprovals returns the approval records addressed to a user,
// optionally filtered by status.
func (h *WorkflowHandler) HandleListApprovals(ctx context.Context, userID int64, status entities.Status) ([]entities.Approval, error) {
	return h.approvals.ListApprovalsByApprover(ctx, userID, status)
}

// HandleListEntityApprovals returns all approval records for an entity.
func (h *WorkflowHandler) HandleListEntityApprovals(ctx context.Context, ref entities.EntityRef) ([]entities.Approval, error) {
	return h.approvals.ListApprovalsByEntity(ctx, ref)
}
