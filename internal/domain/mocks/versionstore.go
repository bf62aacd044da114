package mocks

import (
	"context"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// VersionStore is a mock implementation of ports.VersionStore.
type VersionStore struct {
	mu       sync.Mutex
	Versions []entities.DocumentVersion
	Err      error
}

// NewVersionStore creates a new mock VersionStore.
func NewVersionStore() *VersionStore {
	return &VersionStore{}
}

// AppendVersion writes a new version row.
func (m *VersionStore) AppendVersion(_ context.Context, version *entities.DocumentVersion) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Versions = append(m.Versions, *version)
	return nil
}

// ListVersionsByDocument returns all versions of a document, newest first.
func (m *VersionStore) ListVersionsByDocument(_ context.Context, documentID int64) ([]entities.DocumentVersion, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.DocumentVersion
	for i := len(m.Versions) - 1; i >= 0; i-- {
		if m.Versions[i].DocumentID == documentID {
			result = append(result, m.Versions[i])
		}
	}
	return result, nil
}

// LatestVersion returns the most recent version of a document.
func (m *VersionStore) LatestVersion(ctx context.Context, documentID int64) (*entities.DocumentVersion, error) {
	versions, err := m.ListVersionsByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, entities.ErrNotFound
	}
	return &versions[0], nil
}
