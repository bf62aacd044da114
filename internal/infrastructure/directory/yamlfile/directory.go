// Package yamlfile provides a RoleDirectory backed by a YAML user registry.
// User management is an external concern; this adapter only answers role
// membership questions from a static file.
package yamlfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// User is one entry in the registry file.
type User struct {
	ID    int64           `yaml:"id"`
	Name  string          `yaml:"name,omitempty"`
	Roles []entities.Role `yaml:"roles"`
}

// registryFile is the on-disk shape of the roles file.
type registryFile struct {
	Users []User `yaml:"users"`
}

// Directory implements ports.RoleDirectory from a YAML file loaded at
// construction.
type Directory struct {
	users map[int64][]entities.Role
}

// Load reads the registry file at path and builds a Directory.
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roles file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Directory from raw registry file contents.
func Parse(data []byte) (*Directory, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roles file: %w", err)
	}

	users := make(map[int64][]entities.Role, len(file.Users))
	for _, user := range file.Users {
		if user.ID == 0 {
			return nil, errors.New("roles file: user entry missing id")
		}
		if _, exists := users[user.ID]; exists {
			return nil, fmt.Errorf("roles file: duplicate user id %d", user.ID)
		}
		users[user.ID] = user.Roles
	}
	return &Directory{users: users}, nil
}

// Save writes a registry of users to path.
func Save(path string, users []User) error {
	data, err := yaml.Marshal(registryFile{Users: users})
	if err != nil {
		return fmt.Errorf("marshaling roles file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing roles file: %w", err)
	}
	return nil
}

// UsersWithRoles returns the ids of all users holding at least one of the
// given roles, deduplicated and sorted.
func (d *Directory) UsersWithRoles(_ context.Context, roles ...entities.Role) ([]int64, error) {
	wanted := make(map[entities.Role]bool, len(roles))
	for _, role := range roles {
		wanted[role] = true
	}

	var result []int64
	for userID, held := range d.users {
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
func (d *Directory) HasAnyRole(_ context.Context, userID int64, roles ...entities.Role) (bool, error) {
	held, ok := d.users[userID]
	if !ok {
		return false, nil
	}
	for _, have := range held {
		for _, want := range roles {
			if have == want {
				return true, nil
			}
		}
	}
	return false, nil
}
