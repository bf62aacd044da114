package handlers

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/services"
)

// PolicyHandler handles policy acceptance.
type PolicyHandler struct {
	acceptances *services.AcceptanceService
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(acceptances *services.AcceptanceService) *PolicyHandler {
	return &PolicyHandler{acceptances: acceptances}
}

// HandleAccept records the actor's acknowledgement of an approved policy.
// Any authenticated user may accept; idempotent per (user, document).
func (h *PolicyHandler) HandleAccept(ctx context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error) {
	return h.acceptances.Accept(ctx, userID, documentID)
}

// HandleListAcceptances returns all acceptance rows for a policy document.
func (h *PolicyHandler) HandleListAcceptances(ctx context.Context, documentID int64) ([]entities.PolicyAcceptance, error) {
	return h.acceptances.ListByDocument(ctx, documentID)
}
