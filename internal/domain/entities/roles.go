package entities

// Role identifies an organizational role held by a user.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleCoordinator Role = "coordinator"
	RoleEmployee    Role = "employee"
)

// approverRoles maps each entity type to the roles whose holders receive an
// approval request at submission. The mapping is fixed; approval topology is
// role-derived, not configured per instance.
var approverRoles = map[EntityType][]Role{
	TypeDocument: {RoleManager, RoleCoordinator},
	TypeTask:     {RoleManager, RoleCoordinator},
	TypePolicy:   {RoleManager, RoleAdmin},
}

// ApproverRolesFor returns the roles eligible to approve entities of the
// given type.
func ApproverRolesFor(t EntityType) []Role {
	return approverRoles[t]
}

// DeciderRoles are the roles allowed to record an approval decision.
var DeciderRoles = []Role{RoleManager, RoleCoordinator, RoleAdmin}

// PrivilegedRoles are the roles allowed to act on entities they do not own.
var PrivilegedRoles = []Role{RoleManager, RoleAdmin}
