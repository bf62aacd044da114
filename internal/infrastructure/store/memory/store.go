// Package memory provides an in-memory implementation of the docflow stores,
// suitable for tests and single-process use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// Store implements the entity, approval, version, activity, and acceptance
// store ports with process-local maps. All methods are safe for concurrent
// use.
type Store struct {
	mu sync.RWMutex

	documents   map[int64]*entities.Document
	tasks       map[int64]*entities.Task
	approvals   map[int64]*entities.Approval
	versions    []entities.DocumentVersion
	activities  []entities.Activity
	acceptances []entities.PolicyAcceptance

	nextEntityID     int64
	nextApprovalID   int64
	nextActivityID   int64
	nextAcceptanceID int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents: make(map[int64]*entities.Document),
		tasks:     make(map[int64]*entities.Task),
		approvals: make(map[int64]*entities.Approval),
	}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Store) EnsureSchema(_ context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// CreateDocument persists a new document and assigns its id.
func (s *Store) CreateDocument(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEntityID++
	doc.ID = s.nextEntityID
	copied := *doc
	s.documents[doc.ID] = &copied
	return nil
}

// GetDocument returns a document by id, or entities.ErrNotFound.
func (s *Store) GetDocument(_ context.Context, id int64) (*entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// UpdateDocument persists mutable document fields.
func (s *Store) UpdateDocument(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[doc.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *doc
	s.documents[doc.ID] = &copied
	return nil
}

// ListDocuments lists documents, optionally filtered by status, newest first.
func (s *Store) ListDocuments(_ context.Context, status entities.Status, limit int) ([]entities.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]entities.Document, 0, len(s.documents))
	for _, doc := range s.documents {
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
func (s *Store) DeleteDocument(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return entities.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}

// CreateTask persists a new task and assigns its id.
func (s *Store) CreateTask(_ context.Context, task *entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEntityID++
	task.ID = s.nextEntityID
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

// GetTask returns a task by id, or entities.ErrNotFound.
func (s *Store) GetTask(_ context.Context, id int64) (*entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

// UpdateTask persists mutable task fields.
func (s *Store) UpdateTask(_ context.Context, task *entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[task.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

// ListTasks lists tasks, optionally filtered by status, newest first.
func (s *Store) ListTasks(_ context.Context, status entities.Status, limit int) ([]entities.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]entities.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
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
func (s *Store) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return entities.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Get resolves a typed reference to its entity. A policy ref only matches a
// document carrying the policy category.
func (s *Store) Get(ctx context.Context, ref entities.EntityRef) (entities.Entity, error) {
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		doc, err := s.GetDocument(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if (ref.Type == entities.TypePolicy) != doc.IsPolicy() {
			return nil, entities.ErrNotFound
		}
		return doc, nil
	case entities.TypeTask:
		return s.GetTask(ctx, ref.ID)
	}
	return nil, entities.ErrNotFound
}

// UpdateStatus sets the workflow status of the referenced entity.
func (s *Store) UpdateStatus(_ context.Context, ref entities.EntityRef, status entities.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ref.Type {
	case entities.TypeDocument, entities.TypePolicy:
		doc, ok := s.documents[ref.ID]
		if !ok {
			return entities.ErrNotFound
		}
		doc.Status = status
	case entities.TypeTask:
		task, ok := s.tasks[ref.ID]
		if !ok {
			return entities.ErrNotFound
		}
		task.Status = status
	default:
		return entities.ErrNotFound
	}
	return nil
}

// CreateApproval persists a single approval record and assigns its id.
func (s *Store) CreateApproval(_ context.Context, approval *entities.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addApproval(approval)
	return nil
}

func (s *Store) addApproval(approval *entities.Approval) {
	s.nextApprovalID++
	approval.ID = s.nextApprovalID
	copied := *approval
	s.approvals[approval.ID] = &copied
}

// CreateApprovalBatch persists a set of approval records atomically. The single lock
// makes the batch all-or-nothing by construction.
func (s *Store) CreateApprovalBatch(_ context.Context, approvals []*entities.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, approval := range approvals {
		s.addApproval(approval)
	}
	return nil
}

// GetApproval returns an approval by id, or entities.ErrNotFound.
func (s *Store) GetApproval(_ context.Context, id int64) (*entities.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	approval, ok := s.approvals[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *approval
	return &copied, nil
}

// UpdateApproval persists the approval's status, comments, and decision time.
func (s *Store) UpdateApproval(_ context.Context, approval *entities.Approval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.approvals[approval.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *approval
	s.approvals[approval.ID] = &copied
	return nil
}

// ListApprovalsByEntity returns all approval records referencing the entity, oldest
// first.
func (s *Store) ListApprovalsByEntity(_ context.Context, ref entities.EntityRef) ([]entities.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.Approval
	for _, approval := range s.approvals {
		if approval.Entity == ref {
			result = append(result, *approval)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListApprovalsByApprover returns all approval records addressed to the user, newest
// first.
func (s *Store) ListApprovalsByApprover(_ context.Context, userID int64, status entities.Status) ([]entities.Approval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.Approval
	for _, approval := range s.approvals {
		if approval.UserID != userID {
			continue
		}
		if status != "" && approval.Status != status {
			continue
		}
		result = append(result, *approval)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// AppendVersion writes a new version row.
func (s *Store) AppendVersion(_ context.Context, version *entities.DocumentVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions = append(s.versions, *version)
	return nil
}

// ListVersionsByDocument returns all versions of a document, newest first.
func (s *Store) ListVersionsByDocument(_ context.Context, documentID int64) ([]entities.DocumentVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.DocumentVersion
	for i := len(s.versions) - 1; i >= 0; i-- {
		if s.versions[i].DocumentID == documentID {
			result = append(result, s.versions[i])
		}
	}
	return result, nil
}

// LatestVersion returns the most recent version of a document.
func (s *Store) LatestVersion(ctx context.Context, documentID int64) (*entities.DocumentVersion, error) {
	versions, err := s.ListVersionsByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, entities.ErrNotFound
	}
	return &versions[0], nil
}

// AppendActivity writes a new activity entry and assigns its id.
func (s *Store) AppendActivity(_ context.Context, activity *entities.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextActivityID++
	activity.ID = s.nextActivityID
	s.activities = append(s.activities, *activity)
	return nil
}

// ListActivityByEntity returns activity entries for one entity, newest first.
func (s *Store) ListActivityByEntity(_ context.Context, ref entities.EntityRef) ([]entities.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.Activity
	for i := len(s.activities) - 1; i >= 0; i-- {
		if s.activities[i].Entity == ref {
			result = append(result, s.activities[i])
		}
	}
	return result, nil
}

// ListActivityByAction returns activity entries with the given action,
// newest first, up to limit.
func (s *Store) ListActivityByAction(_ context.Context, action string, limit int) ([]entities.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.Activity
	for i := len(s.activities) - 1; i >= 0; i-- {
		if s.activities[i].Action == action {
			result = append(result, s.activities[i])
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// CreateAcceptance persists a new acceptance row and assigns its id.
func (s *Store) CreateAcceptance(_ context.Context, acceptance *entities.PolicyAcceptance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextAcceptanceID++
	acceptance.ID = s.nextAcceptanceID
	s.acceptances = append(s.acceptances, *acceptance)
	return nil
}

// FindAcceptance returns the acceptance row for the (user, document) pair.
func (s *Store) FindAcceptance(_ context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.acceptances {
		if s.acceptances[i].UserID == userID && s.acceptances[i].DocumentID == documentID {
			copied := s.acceptances[i]
			return &copied, nil
		}
	}
	return nil, entities.ErrNotFound
}

// ListAcceptancesByDocument returns all acceptance rows for a document,
// newest first.
func (s *Store) ListAcceptancesByDocument(_ context.Context, documentID int64) ([]entities.PolicyAcceptance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []entities.PolicyAcceptance
	for i := len(s.acceptances) - 1; i >= 0; i-- {
		if s.acceptances[i].DocumentID == documentID {
			result = append(result, s.acceptances[i])
		}
	}
	return result, nil
}
