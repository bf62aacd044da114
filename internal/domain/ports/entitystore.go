// Package ports defines the interfaces the workflow engine depends on.
package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// EntityStore defines durable storage for documents, tasks, and policies.
// Policies are documents with the policy category; Get resolves a policy ref
// against the document table.
type EntityStore interface {
	// EnsureSchema creates the backing schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error

	// CreateDocument persists a new document and assigns its id.
	CreateDocument(ctx context.Context, doc *entities.Document) error

	// GetDocument returns a document by id, or entities.ErrNotFound.
	GetDocument(ctx context.Context, id int64) (*entities.Document, error)

	// UpdateDocument persists mutable document fields (title, department,
	// category, content, version, status).
	UpdateDocument(ctx context.Context, doc *entities.Document) error

	// ListDocuments lists documents, optionally filtered by status
	// (empty status means all), newest first.
	ListDocuments(ctx context.Context, status entities.Status, limit int) ([]entities.Document, error)

	// DeleteDocument removes a document by id.
	DeleteDocument(ctx context.Context, id int64) error

	// CreateTask persists a new task and assigns its id.
	CreateTask(ctx context.Context, task *entities.Task) error

	// GetTask returns a task by id, or entities.ErrNotFound.
	GetTask(ctx context.Context, id int64) (*entities.Task, error)

	// UpdateTask persists mutable task fields.
	UpdateTask(ctx context.Context, task *entities.Task) error

	// ListTasks lists tasks, optionally filtered by status, newest first.
	ListTasks(ctx context.Context, status entities.Status, limit int) ([]entities.Task, error)

	// DeleteTask removes a task by id.
	DeleteTask(ctx context.Context, id int64) error

	// Get resolves a typed reference to its entity, or entities.ErrNotFound.
	// A policy ref only matches a document carrying the policy category.
	Get(ctx context.Context, ref entities.EntityRef) (entities.Entity, error)

	// UpdateStatus sets the workflow status of the referenced entity.
	UpdateStatus(ctx context.Context, ref entities.EntityRef, status entities.Status) error
}
