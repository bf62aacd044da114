package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// ApprovalStore is a mock implementation of ports.ApprovalStore.
type ApprovalStore struct {
	mu        sync.Mutex
	Approvals map[int64]*entities.Approval
	nextID    int64

	// Err fails every call when set. BatchErr and ListErr fail only their
	// own call.
	Err      error
	BatchErr error
	ListErr  error
}

// NewApprovalStore creates a new mock ApprovalStore.
func NewApprovalStore() *ApprovalStore {
	return &ApprovalStore{Approvals: make(map[int64]*entities.Approval)}
}

// CreateApproval persists a single approval record and assigns its id.
func (m *ApprovalStore) CreateApproval(_ context.Context, approval *entities.Approval) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.create(approval)
	return nil
}

func (m *ApprovalStore) create(approval *entities.Approval) {
	m.nextID++
	approval.ID = m.nextID
	copied := *approval
	m.Approvals[approval.ID] = &copied
}

// CreateApprovalBatch persists a set of approval records atomically.
func (m *ApprovalStore) CreateApprovalBatch(_ context.Context, approvals []*entities.Approval) error {
	if m.Err != nil {
		return m.Err
	}
	if m.BatchErr != nil {
		return m.BatchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, approval := range approvals {
		m.create(approval)
	}
	return nil
}

// GetApproval returns an approval by id.
func (m *ApprovalStore) GetApproval(_ context.Context, id int64) (*entities.Approval, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	approval, ok := m.Approvals[id]
	if !ok {
		return nil, entities.ErrNotFound
	}
	copied := *approval
	return &copied, nil
}

// UpdateApproval persists the approval's status, comments, and decision time.
func (m *ApprovalStore) UpdateApproval(_ context.Context, approval *entities.Approval) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Approvals[approval.ID]; !ok {
		return entities.ErrNotFound
	}
	copied := *approval
	m.Approvals[approval.ID] = &copied
	return nil
}

// ListApprovalsByEntity returns all approval records referencing the entity.
func (m *ApprovalStore) ListApprovalsByEntity(_ context.Context, ref entities.EntityRef) ([]entities.Approval, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.Approval
	for _, approval := range m.Approvals {
		if approval.Entity == ref {
			result = append(result, *approval)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ListApprovalsByApprover returns all approval records addressed to the user.
func (m *ApprovalStore) ListApprovalsByApprover(_ context.Context, userID int64, status entities.Status) ([]entities.Approval, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.Approval
	for _, approval := range m.Approvals {
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
