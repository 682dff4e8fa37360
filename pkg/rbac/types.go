package rbac

// MaxInheritanceDepth is the maximum allowed depth of role inheritance.
const MaxInheritanceDepth = 10

// Role is a set of permissions with optional inheritance.
type Role struct {
	// Permissions directly granted to this role, e.g. "users.update.any".
	Permissions []string

	// Inherits lists role names whose permissions are included.
	Inherits []string
}

// Can reports whether the role grants permission directly, ignoring inheritance.
func (r Role) Can(permission string) bool {
	return hasPermission(r.Permissions, permission)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   int64
	Role string
}

// Resource identifies the target of an operation. For user operations ID is
// the target user's id.
type Resource struct {
	ID int64
}

// Decision is the outcome of a policy evaluation.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

func (d Decision) String() string {
	if d {
		return "allow"
	}
	return "deny"
}
