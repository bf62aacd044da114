package mocks

import (
	"context"
	"sort"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// Directory is a mock implementation of ports.RoleDirectory.
type Directory struct {
	// Users maps user id to held roles.
	Users map[int64][]entities.Role
	Err   error
}

// NewDirectory creates a new mock Directory.
func NewDirectory() *Directory {
	return &Directory{Users: make(map[int64][]entities.Role)}
}

// Grant assigns roles to a user. Test helper.
func (m *Directory) Grant(userID int64, roles ...entities.Role) {
	m.Users[userID] = append(m.Users[userID], roles...)
}

// UsersWithRoles returns the ids of all users holding at least one of the
// given roles.
func (m *Directory) UsersWithRoles(_ context.Context, roles ...entities.Role) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[entities.Role]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}
	var result []int64
	for userID, held := range m.Users {
		for _, role := range held {
			if wanted[role] {
				result = append(result, userID)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (m *Directory) HasAnyRole(_ context.Context, userID int64, roles ...entities.Role) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, held := range m.Users[userID] {
		for _, role := range roles {
			if held == role {
				return true, nil
			}
		}
	}
	return false, nil
}
