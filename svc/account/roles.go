package account

import "github.com/simonta/simonta-api/pkg/rbac"

const (
	RoleAdmin        = "Admin"
	RolePetugasBPBD  = "PetugasBPBD"
	RoleOperatorDesa = "OperatorDesa"
	RoleWarga        = "Warga"
)

// Roles lists the roles a user may register with.
func Roles() []string {
	return []string{RoleAdmin, RolePetugasBPBD, RoleOperatorDesa, RoleWarga}
}

// Permission names used by the account policies.
const (
	PermUsersRead   = "users.read"
	PermUsersUpdate = "users.update"
)

// PolicyRules grants Admin every user action on any account and everyone
// else the same actions on their own account. Feed them to
// rbac.NewCasbinEnforcer.
func PolicyRules() []rbac.CasbinRule {
	rules := []rbac.CasbinRule{
		{Role: RoleAdmin, Relation: rbac.RelationAny, Action: PermUsersRead},
		{Role: RoleAdmin, Relation: rbac.RelationAny, Action: PermUsersUpdate},
	}
	for _, role := range []string{RolePetugasBPBD, RoleOperatorDesa, RoleWarga} {
		rules = append(rules,
			rbac.CasbinRule{Role: role, Relation: rbac.RelationSelf, Action: PermUsersRead},
			rbac.CasbinRule{Role: role, Relation: rbac.RelationSelf, Action: PermUsersUpdate},
		)
	}
	return rules
}

// RolePermissions describes the same grants as PolicyRules for
// rbac.NewAuthorizer: ".any" permissions apply to every account, ".self"
// ones to the caller's own account. Staff roles inherit from Warga.
func RolePermissions() map[string]rbac.Role {
	return map[string]rbac.Role{
		RoleAdmin: {Permissions: []string{"users.*"}},
		RoleWarga: {Permissions: []string{
			PermUsersRead + ".self",
			PermUsersUpdate + ".self",
		}},
		RoleOperatorDesa: {Inherits: []string{RoleWarga}},
		RolePetugasBPBD:  {Inherits: []string{RoleWarga}},
	}
}
