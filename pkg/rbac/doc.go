// Package rbac decides whether an actor may perform an operation on a resource.
//
// Two layers are provided. Authorizer maps roles to permissions with
// inheritance and wildcard scopes ("users.*"). Policy turns an actor and a
// resource into an Allow or Deny decision; the built-in policies cover
// anonymous operations, "admin or the resource owner", and permission-driven
// checks backed either by an Authorizer or by a casbin enforcer.
//
// Basic usage:
//
//	policy := rbac.AdminOrOwner("Admin")
//	if rbac.Authorize(actor, rbac.Resource{ID: targetID}, policy) == rbac.Deny {
//	    // reject with 403
//	}
//
// Permission-driven:
//
//	auth, err := rbac.NewAuthorizer(ctx, rbac.NewInMemRoleSource(map[string]rbac.Role{
//	    "Warga": {Permissions: []string{"users.update.self"}},
//	    "Admin": {Permissions: []string{"users.*"}, Inherits: []string{"Warga"}},
//	}))
//	policy := rbac.PermissionOrOwner(auth, "users.update.any", "users.update.self")
//
// Policies never read the context; callers resolve the actor first, for
// example with ActorFromContext after the authentication middleware ran.
package rbac
