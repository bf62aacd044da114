// Package services contains the domain logic of the approval workflow.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// entityLocks serializes workflow operations per entity. Two concurrent
// decisions on the same entity must not both read the approval set before
// either write lands, or unanimity can be missed on both sides.
type entityLocks struct {
	mu    sync.Mutex
	locks map[entities.EntityRef]*sync.Mutex
}

func (l *entityLocks) get(ref entities.EntityRef) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[entities.EntityRef]*sync.Mutex)
	}
	lock, ok := l.locks[ref]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[ref] = lock
	}
	return lock
}

// WorkflowService orchestrates submission fan-out, decision aggregation,
// entity status transitions, and audit logging.
type WorkflowService struct {
	entities  ports.EntityStore
	approvals ports.ApprovalStore
	activity  ports.ActivityLog
	directory ports.RoleDirectory
	logger    *slog.Logger
	locks     entityLocks
}

// NewWorkflowService creates a new WorkflowService. A nil logger falls back
// to slog.Default.
func NewWorkflowService(
	entityStore ports.EntityStore,
	approvalStore ports.ApprovalStore,
	activityLog ports.ActivityLog,
	directory ports.RoleDirectory,
	logger *slog.Logger,
) *WorkflowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkflowService{
		entities:  entityStore,
		approvals: approvalStore,
		activity:  activityLog,
		directory: directory,
		logger:    logger,
	}
}

// Submit moves an entity into the approval workflow: the entity becomes
// pending and one pending approval record is created per eligible approver.
// Fan-out is all-or-nothing; if the approval batch cannot be written the
// entity's previous status is restored and the call fails.
//
// Authorization (ownership or privileged role) is the caller's job; Submit
// trusts a pre-authorized call.
func (s *WorkflowService) Submit(ctx context.Context, ref entities.EntityRef, actorID int64) error {
	entity, err := s.entities.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return fmt.Errorf("%w: %s", entities.ErrNotFound, ref)
		}
		return fmt.Errorf("%w: resolving %s: %v", entities.ErrDependency, ref, err)
	}

	prev := entity.WorkflowStatus()
	if !prev.Submittable() {
		return fmt.Errorf("%w: cannot submit %s in status %q", entities.ErrInvalidState, ref, prev)
	}

	approverIDs, err := s.directory.UsersWithRoles(ctx, entities.ApproverRolesFor(ref.Type)...)
	if err != nil {
		return fmt.Errorf("%w: querying approvers for %s: %v", entities.ErrDependency, ref, err)
	}
	if len(approverIDs) == 0 {
		// Submitting anyway would strand the entity pending with nobody
		// able to resolve it.
		return fmt.Errorf("%w: entity type %s", entities.ErrNoApprovers, ref.Type)
	}

	lock := s.locks.get(ref)
	lock.Lock()
	defer lock.Unlock()

	if err := s.entities.UpdateStatus(ctx, ref, entities.StatusPending); err != nil {
		return fmt.Errorf("%w: setting %s pending: %v", entities.ErrDependency, ref, err)
	}

	now := timeNow()
	approvals := make([]*entities.Approval, 0, len(approverIDs))
	for _, userID := range approverIDs {
		approvals = append(approvals, &entities.Approval{
			Entity:    ref,
			UserID:    userID,
			Status:    entities.StatusPending,
			CreatedAt: now,
		})
	}
	if err := s.approvals.CreateApprovalBatch(ctx, approvals); err != nil {
		// Compensate: never leave the entity pending with no approval rows.
		if restoreErr := s.entities.UpdateStatus(ctx, ref, prev); restoreErr != nil {
			s.logger.Error("fan-out compensation failed",
				"entity", ref.String(), "restore_status", string(prev), "error", restoreErr)
		}
		return fmt.Errorf("%w: creating approval records for %s: %v", entities.ErrDependency, ref, err)
	}

	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionSubmit,
		Entity:    ref,
		Details:   entity.DisplayTitle(),
		CreatedAt: now,
	})
	return nil
}

// Decide records one approver's decision and derives the entity-level
// transition from it. The approval update is the primary effect: once it is
// persisted the call succeeds, and entity transition, unanimity aggregation,
// and activity logging are best-effort secondary effects that are logged on
// failure rather than surfaced. The updated approval is always returned on
// success, even when the underlying entity no longer exists.
func (s *WorkflowService) Decide(ctx context.Context, approvalID int64, status entities.Status, comments string, actorID int64) (*entities.Approval, error) {
	if !status.DecisionStatus() {
		return nil, fmt.Errorf("%w: invalid decision status %q", entities.ErrValidation, status)
	}

	approval, err := s.approvals.GetApproval(ctx, approvalID)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: approval %d", entities.ErrNotFound, approvalID)
		}
		return nil, fmt.Errorf("%w: loading approval %d: %v", entities.ErrDependency, approvalID, err)
	}

	// The lock covers both the approval write and the aggregation read, so
	// concurrent decisions on one entity observe each other.
	lock := s.locks.get(approval.Entity)
	lock.Lock()
	defer lock.Unlock()

	now := timeNow()
	approval.Status = status
	approval.Comments = comments
	approval.ApprovedAt = &now
	if err := s.approvals.UpdateApproval(ctx, approval); err != nil {
		return nil, fmt.Errorf("%w: updating approval %d: %v", entities.ErrDependency, approvalID, err)
	}

	// Everything below is secondary; the decision itself is already durable.
	s.cascade(ctx, approval, actorID)
	return approval, nil
}

// cascade applies the entity-level side effects of a recorded decision. Each
// effect runs in its own error boundary; failures are logged and swallowed so
// the approval update they derive from is never reported lost.
func (s *WorkflowService) cascade(ctx context.Context, approval *entities.Approval, actorID int64) {
	ref := approval.Entity

	entity, err := s.entities.Get(ctx, ref)
	if err != nil {
		s.logger.Warn("decision recorded but entity unavailable, skipping cascade",
			"approval", approval.ID, "entity", ref.String(), "error", err)
		return
	}

	if next, ok := s.aggregate(ctx, approval, entity); ok {
		if err := s.entities.UpdateStatus(ctx, ref, next); err != nil {
			s.logger.Warn("entity transition failed after decision",
				"approval", approval.ID, "entity", ref.String(), "status", string(next), "error", err)
		}
	}

	details := entity.DisplayTitle()
	if approval.Comments != "" {
		details = fmt.Sprintf("%s: %s", details, approval.Comments)
	}
	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    string(approval.Status),
		Entity:    ref,
		Details:   details,
		CreatedAt: timeNow(),
	})
}

// aggregate translates one decision into an entity status, or reports that no
// transition applies. Rejection is a veto and in_progress is informational;
// only approval requires unanimity across the entity's approval set.
func (s *WorkflowService) aggregate(ctx context.Context, approval *entities.Approval, entity entities.Entity) (entities.Status, bool) {
	ref := approval.Entity
	if entity.WorkflowStatus().Terminal() {
		s.logger.Warn("decision against terminal entity, leaving status unchanged",
			"approval", approval.ID, "entity", ref.String(), "status", string(entity.WorkflowStatus()))
		return "", false
	}

	switch approval.Status {
	case entities.StatusRejected:
		return entities.RejectedOutcome(ref.Type), true
	case entities.StatusInProgress:
		return entities.StatusInProgress, true
	case entities.StatusApproved:
		// Promotion only applies to an entity still in review. A veto in the
		// current round already moved it to rejected; later approvals on the
		// same round must not revive it.
		current := entity.WorkflowStatus()
		if current != entities.StatusPending && current != entities.StatusInProgress {
			return "", false
		}
		all, err := s.approvals.ListApprovalsByEntity(ctx, ref)
		if err != nil {
			s.logger.Warn("unanimity check failed after decision",
				"approval", approval.ID, "entity", ref.String(), "error", err)
			return "", false
		}
		for i := range all {
			if all[i].ID == approval.ID {
				continue
			}
			// A decided rejection spent its veto when it landed; after a
			// resubmission it no longer blocks the new round.
			if all[i].Status == entities.StatusRejected && all[i].Decided() {
				continue
			}
			if all[i].Status != entities.StatusApproved {
				return "", false
			}
		}
		return entities.ApprovedOutcome(ref.Type), true
	}
	return "", false
}

// logActivity appends an audit entry, logging instead of failing when the
// activity log is unavailable.
func (s *WorkflowService) logActivity(ctx context.Context, activity *entities.Activity) {
	if err := s.activity.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("activity append failed",
			"action", activity.Action, "entity", activity.Entity.String(), "error", err)
	}
}
