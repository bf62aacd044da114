package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
)

// AcceptanceService records per-user acknowledgement of approved policy
// documents.
type AcceptanceService struct {
	entities    ports.EntityStore
	acceptances ports.AcceptanceStore
	activity    ports.ActivityLog
	logger      *slog.Logger
}

// NewAcceptanceService creates a new AcceptanceService.
func NewAcceptanceService(
	entityStore ports.EntityStore,
	acceptanceStore ports.AcceptanceStore,
	activityLog ports.ActivityLog,
	logger *slog.Logger,
) *AcceptanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AcceptanceService{
		entities:    entityStore,
		acceptances: acceptanceStore,
		activity:    activityLog,
		logger:      logger,
	}
}

// Accept records the user's acknowledgement of an approved policy document.
// Accepting twice is idempotent: the existing row is returned unchanged and
// no second activity entry is written. Acceptance of a document that is not
// an approved policy is refused.
func (s *AcceptanceService) Accept(ctx context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error) {
	doc, err := s.entities.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: policy document %d", entities.ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("%w: loading document %d: %v", entities.ErrDependency, documentID, err)
	}
	if !doc.IsPolicy() {
		return nil, fmt.Errorf("%w: document %d is not a policy", entities.ErrNotFound, documentID)
	}
	if doc.Status != entities.StatusApproved {
		return nil, fmt.Errorf("%w: policy %d is %s, only approved policies can be accepted",
			entities.ErrInvalidState, documentID, doc.Status)
	}

	existing, err := s.acceptances.FindAcceptance(ctx, userID, documentID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("%w: checking acceptance: %v", entities.ErrDependency, err)
	}

	acceptance := &entities.PolicyAcceptance{
		UserID:     userID,
		DocumentID: documentID,
		AcceptedAt: timeNow(),
	}
	if err := s.acceptances.CreateAcceptance(ctx, acceptance); err != nil {
		return nil, fmt.Errorf("%w: recording acceptance: %v", entities.ErrDependency, err)
	}

	if err := s.activity.AppendActivity(ctx, &entities.Activity{
		UserID:    userID,
		Action:    entities.ActionAccept,
		Entity:    doc.Ref(),
		Details:   doc.Title,
		CreatedAt: acceptance.AcceptedAt,
	}); err != nil {
		s.logger.Warn("activity append failed",
			"action", entities.ActionAccept, "document", documentID, "error", err)
	}
	return acceptance, nil
}

// ListByDocument returns all acceptance rows for a policy document.
func (s *AcceptanceService) ListByDocument(ctx context.Context, documentID int64) ([]entities.PolicyAcceptance, error) {
	return s.acceptances.ListAcceptancesByDocument(ctx, documentID)
}
