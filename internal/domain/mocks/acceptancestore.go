package mocks

import (
	"context"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// AcceptanceStore is a mock implementation of ports.AcceptanceStore.
type AcceptanceStore struct {
	mu          sync.Mutex
	Acceptances []entities.PolicyAcceptance
	nextID      int64
	Err         error
}

// NewAcceptanceStore creates a new mock AcceptanceStore.
func NewAcceptanceStore() *AcceptanceStore {
	return &AcceptanceStore{}
}

// CreateAcceptance persists a new acceptance row and assigns its id.
func (m *AcceptanceStore) CreateAcceptance(_ context.Context, acceptance *entities.PolicyAcceptance) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	acceptance.ID = m.nextID
	m.Acceptances = append(m.Acceptances, *acceptance)
	return nil
}

// FindAcceptance returns the acceptance row for the (user, document) pair.
func (m *AcceptanceStore) FindAcceptance(_ context.Context, userID, documentID int64) (*entities.PolicyAcceptance, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Acceptances {
		if m.Acceptances[i].UserID == userID && m.Acceptances[i].DocumentID == documentID {
			copied := m.Acceptances[i]
			return &copied, nil
		}
	}
	return nil, entities.ErrNotFound
}

// ListAcceptancesByDocument returns all acceptance rows for a document.
func (m *AcceptanceStore) ListAcceptancesByDocument(_ context.Context, documentID int64) ([]entities.PolicyAcceptance, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.PolicyAcceptance
	for i := len(m.Acceptances) - 1; i >= 0; i-- {
		if m.Acceptances[i].DocumentID == documentID {
			result = append(result, m.Acceptances[i])
		}
	}
	return result, nil
}
