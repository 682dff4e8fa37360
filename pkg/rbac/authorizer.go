package rbac

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Authorizer maps roles to their effective permissions. Inherited permissions
// are resolved once at construction; the Authorizer is read-only afterwards
// and safe for concurrent use.
type Authorizer struct {
	rolePermissions map[string][]string
	sortedRoles     []string
}

// NewAuthorizer loads roles from source, rejects circular or too deep
// inheritance and precomputes every role's permissions.
func NewAuthorizer(ctx context.Context, source RoleSource) (*Authorizer, error) {
	roles, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = make(map[string]Role)
	}

	if err := validateInheritance(roles); err != nil {
		return nil, err
	}

	perms := make(map[string][]string, len(roles))
	for name := range roles {
		perms[name] = normalizePermissions(collectPermissions(name, roles, make(map[string]bool)))
	}

	return &Authorizer{
		rolePermissions: perms,
		sortedRoles:     sortByInheritance(roles),
	}, nil
}

// Can returns nil when role grants permission, directly or inherited.
func (a *Authorizer) Can(role, permission string) error {
	perms, ok := a.rolePermissions[role]
	if !ok {
		return ErrInvalidRole
	}
	if !hasPermission(perms, permission) {
		return ErrInsufficientPermissions
	}
	return nil
}

// CanAny returns nil when role grants at least one of permissions.
func (a *Authorizer) CanAny(role string, permissions ...string) error {
	if len(permissions) == 0 {
		return nil
	}
	perms, ok := a.rolePermissions[role]
	if !ok {
		return ErrInvalidRole
	}
	for _, p := range permissions {
		if hasPermission(perms, p) {
			return nil
		}
	}
	return ErrInsufficientPermissions
}

// CanFromContext checks the role of the actor stored in ctx.
func (a *Authorizer) CanFromContext(ctx context.Context, permission string) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return errors.Join(ErrActorNotInContext, ErrInsufficientPermissions)
	}
	return a.Can(actor.Role, permission)
}

// VerifyRole returns ErrInvalidRole for unknown roles.
func (a *Authorizer) VerifyRole(role string) error {
	if _, ok := a.rolePermissions[role]; !ok {
		return ErrInvalidRole
	}
	return nil
}

// Roles returns role names with base roles first.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.sortedRoles)
}

// Permissions returns the effective permissions of role.
func (a *Authorizer) Permissions(role string) []string {
	return slices.Clone(a.rolePermissions[role])
}

func collectPermissions(name string, roles map[string]Role, visited map[string]bool) []string {
	if visited[name] {
		return nil
	}
	visited[name] = true

	role, ok := roles[name]
	if !ok {
		return nil
	}
	out := slices.Clone(role.Permissions)
	for _, parent := range role.Inherits {
		out = append(out, collectPermissions(parent, roles, visited)...)
	}
	return out
}

// roleDepth returns the length of the longest inheritance chain below name.
// The caller guarantees the graph is acyclic.
func roleDepth(name string, roles map[string]Role, memo map[string]int) int {
	if d, ok := memo[name]; ok {
		return d
	}
	depth := 0
	for _, parent := range roles[name].Inherits {
		depth = max(depth, roleDepth(parent, roles, memo)+1)
	}
	memo[name] = depth
	return depth
}

func sortByInheritance(roles map[string]Role) []string {
	memo := make(map[string]int, len(roles))
	names := make([]string, 0, len(roles))
	for name := range roles {
		roleDepth(name, roles, memo)
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(memo[a], memo[b]), strings.Compare(a, b))
	})
	return names
}

func validateInheritance(roles map[string]Role) error {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(roles))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case inProgress:
			return errors.Join(ErrCircularInheritance, fmt.Errorf("role %q inherits itself", name))
		case done:
			return nil
		}
		state[name] = inProgress
		for _, parent := range roles[name].Inherits {
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for name := range roles {
		if err := visit(name); err != nil {
			return err
		}
	}

	memo := make(map[string]int, len(roles))
	for name := range roles {
		if roleDepth(name, roles, memo) > MaxInheritanceDepth {
			return errors.Join(ErrCircularInheritance,
				fmt.Errorf("inheritance depth exceeds maximum allowed depth of %d", MaxInheritanceDepth))
		}
	}
	return nil
}
