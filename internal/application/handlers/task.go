package handlers

import (
	"context"
	"fmt"

	"github.com/docflow/docflow-core/internal/domain/entities"
	"github.com/docflow/docflow-core/internal/domain/ports"
	"github.com/docflow/docflow-core/internal/domain/services"
)

// TaskHandler handles task operations.
type TaskHandler struct {
	tasks     *services.TaskService
	directory ports.RoleDirectory
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService, directory ports.RoleDirectory) *TaskHandler {
	return &TaskHandler{tasks: tasks, directory: directory}
}

// HandleCreate creates a new draft task owned by the actor.
func (h *TaskHandler) HandleCreate(ctx context.Context, task *entities.Task, actorID int64) error {
	return h.tasks.Create(ctx, task, actorID)
}

// HandleGet returns a task by id.
func (h *TaskHandler) HandleGet(ctx context.Context, id int64) (*entities.Task, error) {
	return h.tasks.Get(ctx, id)
}

// HandleList lists tasks, optionally filtered by status.
func (h *TaskHandler) HandleList(ctx context.Context, status entities.Status, limit int) ([]entities.Task, error) {
	return h.tasks.List(ctx, status, limit)
}

// HandleUpdate updates a task. The actor must own it or hold a privileged
// role.
func (h *TaskHandler) HandleUpdate(ctx context.Context, id int64, title, description, priority string, assignedTo int64, actorID int64) (*entities.Task, error) {
	if err := h.authorizeOwner(ctx, id, actorID); err != nil {
		return nil, err
	}
	return h.tasks.Update(ctx, id, title, description, priority, assignedTo, actorID)
}

// HandleDelete deletes a task. The actor must own it or hold a privileged
// role.
func (h *TaskHandler) HandleDelete(ctx context.Context, id int64, actorID int64) error {
	if err := h.authorizeOwner(ctx, id, actorID); err != nil {
		return err
	}
	return h.tasks.Delete(ctx, id, actorID)
}

func (h *TaskHandler) authorizeOwner(ctx context.Context, id int64, actorID int64) error {
	task, err := h.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if task.CreatedBy == actorID {
		return nil
	}
	privileged, err := h.directory.HasAnyRole(ctx, actorID, entities.PrivilegedRoles...)
	if err != nil {
		return fmt.Errorf("%w: checking actor roles: %v", entities.ErrDependency, err)
	}
	if !privileged {
		return fmt.Errorf("%w: user %d may not modify task %d", entities.ErrForbidden, actorID, id)
	}
	return nil
}
