// Package mocks provides in-memory test doubles for the domain ports.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// EntityStore is a mock implementation of ports.EntityStore.
type EntityStore struct {
	mu        sync.Mutex
	Documents map[int64]*entities.Document
	Tasks     map[int64]*entities.Task
	nextID    int64

	// Err fails every call when set. UpdateStatusErr and GetErr fail only
	// their own call, for exercising partial-failure paths.
	Err             error
	GetErr          error
	UpdateStatusErr error

	// StatusUpdates records every UpdateStatus call in order.
	StatusUpdates []StatusUpdate
}

// StatusUpdate is one recorded UpdateStatus call.
type StatusUpdate struct {
	Ref    entities.EntityRef
	Status entities.Status
}

// NewEntityStore creates a new mock EntityStore.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		Documents: make(map[int64]*entities.Document),
		Tasks:     make(map[int64]*entities.Task),
	}
}

// EnsureSchema creates the backing schema if it doesn't exist.
func (m *EntityStore) EnsureSchema(_ context.Context) error { return m.Err }

// Close releases the underlying storage.
func (m *EntityStore) Close() error { return nil }

// CreateDocument persists a new document and assigns its id.
func (m *EntityStore) CreateDocument(_ context.Context, doc *entities.Document) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	doc.ID = m.nextID
	copied := *doc
	m.Documents[doc.ID] = &copied
	return nil
}

// GetDocument returns a document by id.
func (m *EntityStore) GetDocument(_ context.Context, id int64) (*entities.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.Documents[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// UpdateDocument persists mutable document fields.
func (m *EntityStore) UpdateDocument(_ context.Context, doc *entities.Document) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Documents[doc.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *doc
	m.Documents[doc.ID] = &copied
	return nil
}

// ListDocuments lists documents, optionally filtered by status.
func (m *EntityStore) ListDocuments(_ context.Context, status entities.Status, limit int) ([]entities.Document, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]entities.Document, 0, len(m.Documents))
	for _, doc := range m.Documents {
		if status != "" && doc.Status != status {
			continue
		}
		result = append(result, *doc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteDocument removes a document by id.
func (m *EntityStore) DeleteDocument(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Documents, id)
	return nil
}

// CreateTask persists a new task and assigns its id.
func (m *EntityStore) CreateTask(_ context.Context, task *entities.Task) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	task.ID = m.nextID
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetTask returns a task by id.
func (m *EntityStore) GetTask(_ context.Context, id int64) (*entities.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.Tasks[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

// UpdateTask persists mutable task fields.
func (m *EntityStore) UpdateTask(_ context.Context, task *entities.Task) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Tasks[task.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// ListTasks lists tasks, optionally filtered by status.
func (m *EntityStore) ListTasks(_ context.Context, status entities.Status, limit int) ([]entities.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]entities.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		if status != "" && task.Status != status {
			continue
		}
		result = append(result, *task)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteTask removes a task by id.
func (m *EntityStore) DeleteTask(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Tasks, id)
	return nil
}

// Get resolves a typed reference to its entity.
func (m *EntityStore) Get(ctx context.Context, ref entities.EntityRef) (entities.Entity, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		doc, err := m.GetDocument(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if (ref.Type == entities.TypePolicy) != doc.IsPolicy() {
			return nil, entities.ErrNotFound
		}
		return doc, nil
	case entities.TypeTask:
		return m.GetTask(ctx, ref.ID)
	}
	return nil, entities.ErrNotFound
}

// UpdateStatus sets the workflow status of the referenced entity.
func (m *EntityStore) UpdateStatus(_ context.Context, ref entities.EntityRef, status entities.Status) error {
	if m.Err != nil {
		return m.Err
	}
	if m.UpdateStatusErr != nil {
		return m.UpdateStatusErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusUpdates = append(m.StatusUpdates, StatusUpdate{Ref: ref, Status: status})
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		doc, ok := m.Documents[ref.ID]
		if !ok {
			return entities.ErrNotFound
		}
		doc.Status = status
	case entities.TypeTask:
		task, ok := m.Tasks[ref.ID]
		if !ok {
			return entities.ErrNotFound
		}
		task.Status = status
	default:
		return entities.ErrNotFound
	}
	return nil
}
