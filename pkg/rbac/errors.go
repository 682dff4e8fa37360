package rbac

import "errors"

// Domain errors for RBAC operations.
var (
	// ErrInvalidRole is returned when a role does not exist.
	ErrInvalidRole = errors.New("rbac.invalid_role")

	// ErrInsufficientPermissions is returned when required permissions are not granted.
	ErrInsufficientPermissions = errors.New("rbac.insufficient_permissions")

	// ErrActorNotInContext is returned when no actor is found in the context.
	ErrActorNotInContext = errors.New("rbac.actor_not_in_context")

	// ErrCircularInheritance is returned when roles have circular inheritance.
	ErrCircularInheritance = errors.New("rbac.circular_inheritance")

	// ErrInvalidPolicy is returned when a casbin model or rule cannot be loaded.
	ErrInvalidPolicy = errors.New("rbac.invalid_policy")
)
