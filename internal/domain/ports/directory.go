package ports

import (
	"context"

	"github.com/docflow/docflow-core/internal/domain/entities"
)

// RoleDirectory answers role membership questions. It is an external
// collaborator: the engine queries it at fan-out time and the caller layer
// uses it for authorization, but user management itself lives elsewhere.
type RoleDirectory interface {
	// UsersWithRoles returns the ids of all users holding at least one of
	// the given roles, deduplicated.
	UsersWithRoles(ctx context.Context, roles ...entities.Role) ([]int64, error)

	// HasAnyRole reports whether the user holds at least one of the given
	// roles.
	HasAnyRole(ctx context.Context, userID int64, roles ...entities.Role) (bool, error)
}
