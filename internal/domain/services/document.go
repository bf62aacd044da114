package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
)

// generateVersionID returns a new UUID string for a version row.
func generateVersionID() string {
	return uuid.New().String()
}

// DocumentService manages document and policy lifecycle outside the approval
// workflow: creation, content updates with version history, and deletion.
type DocumentService struct {
	entities ports.EntityStore
	versions ports.VersionStore
	activity ports.ActivityLog
	logger   *slog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	entityStore ports.EntityStore,
	versionStore ports.VersionStore,
	activityLog ports.ActivityLog,
	logger *slog.Logger,
) *DocumentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		entities: entityStore,
		versions: versionStore,
		activity: activityLog,
		logger:   logger,
	}
}

// Create persists a new draft document at the initial version and writes its
// first version snapshot.
func (s *DocumentService) Create(ctx context.Context, doc *entities.Document, actorID int64) error {
	now := timeNow()
	doc.Status = entities.StatusDraft
	doc.Version = entities.InitialVersion
	doc.CreatedBy = actorID
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := s.entities.CreateDocument(ctx, doc); err != nil {
		return fmt.Errorf("%w: creating document: %v", entities.ErrDependency, err)
	}

	s.appendVersion(ctx, doc, actorID)
	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionCreate,
		Entity:    doc.Ref(),
		Details:   doc.Title,
		CreatedAt: now,
	})
	return nil
}

// Get returns a document by id.
func (s *DocumentService) Get(ctx context.Context, id int64) (*entities.Document, error) {
	doc, err := s.entities.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %d", entities.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: loading document %d: %v", entities.ErrDependency, id, err)
	}
	return doc, nil
}

// List returns documents, optionally filtered by status.
func (s *DocumentService) List(ctx context.Context, status entities.Status, limit int) ([]entities.Document, error) {
	return s.entities.ListDocuments(ctx, status, limit)
}

// Update applies descriptive and content changes to a document. When the new
// content differs byte-for-byte from the stored content the minor version is
// incremented and a new version snapshot appended; identical content leaves
// the version untouched. Terminal documents cannot be updated.
func (s *DocumentService) Update(ctx context.Context, id int64, title, department, category, content string, actorID int64) (*entities.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status.Terminal() {
		return nil, fmt.Errorf("%w: document %d is %s", entities.ErrInvalidState, id, doc.Status)
	}

	if title != "" {
		doc.Title = title
	}
	if department != "" {
		doc.Department = department
	}
	if category != "" {
		doc.Category = category
	}

	contentChanged := content != "" && content != doc.Content
	if contentChanged {
		bumped, err := entities.BumpMinor(doc.Version)
		if err != nil {
			return nil, fmt.Errorf("%w: document %d", err, id)
		}
		doc.Content = content
		doc.Version = bumped
	}
	doc.UpdatedAt = timeNow()

	if err := s.entities.UpdateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: updating document %d: %v", entities.ErrDependency, id, err)
	}

	if contentChanged {
		s.appendVersion(ctx, doc, actorID)
	}
	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionUpdate,
		Entity:    doc.Ref(),
		Details:   doc.Title,
		CreatedAt: doc.UpdatedAt,
	})
	return doc, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id int64, actorID int64) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.entities.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting document %d: %v", entities.ErrDependency, id, err)
	}
	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionDelete,
		Entity:    doc.Ref(),
		Details:   doc.Title,
		CreatedAt: timeNow(),
	})
	return nil
}

// History returns all version snapshots of a document, newest first.
func (s *DocumentService) History(ctx context.Context, id int64) ([]entities.DocumentVersion, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.versions.ListVersionsByDocument(ctx, id)
}

// appendVersion writes a version snapshot. Version history is a projection of
// the document row, so a failed append is logged rather than surfaced.
func (s *DocumentService) appendVersion(ctx context.Context, doc *entities.Document, actorID int64) {
	version := &entities.DocumentVersion{
		ID:         generateVersionID(),
		DocumentID: doc.ID,
		Version:    doc.Version,
		Content:    doc.Content,
		CreatedBy:  actorID,
		CreatedAt:  timeNow(),
	}
	if err := s.versions.AppendVersion(ctx, version); err != nil {
		s.logger.Warn("version append failed",
			"document", doc.ID, "version", doc.Version, "error", err)
	}
}

// logActivity appends an audit entry, logging instead of failing when the
// activity log is unavailable.
func (s *DocumentService) logActivity(ctx context.Context, activity *entities.Activity) {
	if err := s.activity.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("activity append failed",
			"action", activity.Action, "entity", activity.Entity.String(), "error", err)
	}
}
