package mocks

import (
	"context"
	"sync"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// ActivityLog is a mock implementation of ports.ActivityLog.
type ActivityLog struct {
	mu      sync.Mutex
	Entries []entities.Activity
	nextID  int64
	Err     error
}

// NewActivityLog creates a new mock ActivityLog.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

// AppendActivity writes a new activity entry and assigns its id.
func (m *ActivityLog) AppendActivity(_ context.Context, activity *entities.Activity) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	activity.ID = m.nextID
	m.Entries = append(m.Entries, *activity)
	return nil
}

// ListActivityByEntity returns activity entries for one entity, newest first.
func (m *ActivityLog) ListActivityByEntity(_ context.Context, ref entities.EntityRef) ([]entities.Activity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.Activity
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Entity == ref {
			result = append(result, m.Entries[i])
		}
	}
	return result, nil
}

// ListActivityByAction returns activity entries with the given action, newest first.
func (m *ActivityLog) ListActivityByAction(_ context.Context, action string, limit int) ([]entities.Activity, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.Activity
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Action == action {
			result = append(result, m.Entries[i])
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result, nil
}

// ByAction returns the recorded entries with the given action, oldest first.
// Test helper.
func (m *ActivityLog) ByAction(action string) []entities.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entities.Activity
	for _, entry := range m.Entries {
		if entry.Action == action {
			result = append(result, entry)
		}
	}
	return result
}
