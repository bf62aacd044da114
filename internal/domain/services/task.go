package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
)

// TaskService manages task lifecycle outside the approval workflow.
type TaskService struct {
	entities ports.EntityStore
	activity ports.ActivityLog
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(entityStore ports.EntityStore, activityLog ports.ActivityLog, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		entities: entityStore,
		activity: activityLog,
		logger:   logger,
	}
}

// Create persists a new draft task.
func (s *TaskService) Create(ctx context.Context, task *entities.Task, actorID int64) error {
	now := timeNow()
	task.Status = entities.StatusDraft
	task.CreatedBy = actorID
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.entities.CreateTask(ctx, task); err != nil {
		return fmt.Errorf("%w: creating task: %v", entities.ErrDependency, err)
	}

	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionCreate,
		Entity:    task.Ref(),
		Details:   task.Title,
		CreatedAt: now,
	})
	return nil
}

// Get returns a task by id.
func (s *TaskService) Get(ctx context.Context, id int64) (*entities.Task, error) {
	task, err := s.entities.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, fmt.Errorf("%w: task %d", entities.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: loading task %d: %v", entities.ErrDependency, id, err)
	}
	return task, nil
}

// List returns tasks, optionally filtered by status.
func (s *TaskService) List(ctx context.Context, status entities.Status, limit int) ([]entities.Task, error) {
	return s.entities.ListTasks(ctx, status, limit)
}

// Update applies descriptive changes to a task. Terminal tasks cannot be
// updated.
func (s *TaskService) Update(ctx context.Context, id int64, title, description, priority string, assignedTo int64, actorID int64) (*entities.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status.Terminal() {
		return nil, fmt.Errorf("%w: task %d is %s", entities.ErrInvalidState, id, task.Status)
	}

	if title != "" {
		task.Title = title
	}
	if description != "" {
		task.Description = description
	}
	if priority != "" {
		task.Priority = priority
	}
	if assignedTo != 0 {
		task.AssignedTo = assignedTo
	}
	task.UpdatedAt = timeNow()

	if err := s.entities.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%w: updating task %d: %v", entities.ErrDependency, id, err)
	}

	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionUpdate,
		Entity:    task.Ref(),
		Details:   task.Title,
		CreatedAt: task.UpdatedAt,
	})
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int64, actorID int64) error {
	task, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.entities.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("%w: deleting task %d: %v", entities.ErrDependency, id, err)
	}
	s.logActivity(ctx, &entities.Activity{
		UserID:    actorID,
		Action:    entities.ActionDelete,
		Entity:    task.Ref(),
		Details:   task.Title,
		CreatedAt: timeNow(),
	})
	return nil
}

// logActivity appends an audit entry, logging instead of failing when the
// activity log is unavailable.
func (s *TaskService) logActivity(ctx context.Context, activity *entities.Activity) {
	if err := s.activity.AppendActivity(ctx, activity); err != nil {
		s.logger.Warn("activity append failed",
			"action", activity.Action, "entity", activity.Entity.String(), "error", err)
	}
}
