package rbac

// Policy decides whether actor may act on resource. A nil actor is an
// anonymous caller. Implementations are deterministic and read nothing but
// their arguments.
type Policy interface {
	Decide(actor *Actor, resource Resource) Decision
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(actor *Actor, resource Resource) Decision

func (f PolicyFunc) Decide(actor *Actor, resource Resource) Decision {
	return f(actor, resource)
}

// Authorize evaluates policy. A nil policy allows everything.
func Authorize(actor *Actor, resource Resource, policy Policy) Decision {
	if policy == nil {
		return Allow
	}
	return policy.Decide(actor, resource)
}

// Anonymous allows every caller, authenticated or not.
func Anonymous() Policy {
	return PolicyFunc(func(*Actor, Resource) Decision { return Allow })
}

// Authenticated allows any caller with an actor.
func Authenticated() Policy {
	return PolicyFunc(func(actor *Actor, _ Resource) Decision {
		return Decision(actor != nil)
	})
}

// AdminOrOwner allows actors holding adminRole and actors acting on
// themselves (actor.ID == resource.ID).
func AdminOrOwner(adminRole string) Policy {
	return PolicyFunc(func(actor *Actor, resource Resource) Decision {
		if actor == nil {
			return Deny
		}
		if actor.Role == adminRole {
			return Allow
		}
		return Decision(actor.ID == resource.ID)
	})
}

// PermissionOrOwner allows actors whose role grants anyPerm, and actors
// acting on themselves whose role grants selfPerm.
func PermissionOrOwner(a *Authorizer, anyPerm, selfPerm string) Policy {
	return PolicyFunc(func(actor *Actor, resource Resource) Decision {
		if actor == nil {
			return Deny
		}
		if a.Can(actor.Role, anyPerm) == nil {
			return Allow
		}
		if actor.ID == resource.ID && a.Can(actor.Role, selfPerm) == nil {
			return Allow
		}
		return Deny
	})
}
