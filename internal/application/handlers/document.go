package handlers

import (
	"context"
	"fmt"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
	"github.com/docflow/docflow-core/internal/domain/services"
)

// DocumentHandler handles document operations.
type DocumentHandler struct {
	documents *services.DocumentService
	directory ports.RoleDirectory
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents *services.DocumentService, directory ports.RoleDirectory) *DocumentHandler {
	return &DocumentHandler{documents: documents, directory: directory}
}

// HandleCreate creates a new draft document owned by the actor.
func (h *DocumentHandler) HandleCreate(ctx context.Context, doc *entities.Document, actorID int64) error {
	return h.documents.Create(ctx, doc, actorID)
}

// HandleGet returns a document by id.
func (h *DocumentHandler) HandleGet(ctx context.Context, id int64) (*entities.Document, error) {
	return h.documents.Get(ctx, id)
}

// HandleList lists documents, optionally filtered by status.
func (h *DocumentHandler) HandleList(ctx context.Context, status entities.Status, limit int) ([]entities.Document, error) {
	return h.documents.List(ctx, status, limit)
}

// HandleUpdate updates a document. The actor must own it or hold a privileged
// role.
func (h *DocumentHandler) HandleUpdate(ctx context.Context, id int64, title, department, category, content string, actorID int64) (*entities.Document, error) {
	if err := h.authorizeOwner(ctx, id, actorID); err != nil {
		return nil, err
	}
	return h.documents.Update(ctx, id, title, department, category, content, actorID)
}

// HandleDelete deletes a document. The actor must own it or hold a privileged
// role.
func (h *DocumentHandler) HandleDelete(ctx context.Context, id int64, actorID int64) error {
	if err := h.authorizeOwner(ctx, id, actorID); err != nil {
		return err
	}
	return h.documents.Delete(ctx, id, actorID)
}

// HandleHistory returns a document's version snapshots, newest first.
func (h *DocumentHandler) HandleHistory(ctx context.Context, id int64) ([]entities.DocumentVersion, error) {
	return h.documents.History(ctx, id)
}

func (h *DocumentHandler) authorizeOwner(ctx context.Context, id int64, actorID int64) error {
	doc, err := h.documents.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.CreatedBy == actorID {
		return nil
	}
	privileged, err := h.directory.HasAnyRole(ctx, actorID, entities.PrivilegedRoles...)
	if err != nil {
		return fmt.Errorf("%w: checking actor roles: %v", entities.ErrDependency, err)
	}
	if !privileged {
		return fmt.Errorf("%w: user %d may not modify document %d", entities.ErrForbidden, actorID, id)
	}
	return nil
}
