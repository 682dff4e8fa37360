package rbac

import (
	"slices"
	"strings"
)

const (
	permissionSeparator = "."
	permissionWildcard  = "*"
)

// hasPermission reports whether granted covers required. A granted "*" covers
// everything and "users.*" covers "users.read" and "users.update.self".
func hasPermission(granted []string, required string) bool {
	if required == "" {
		return false
	}
	for _, g := range granted {
		if matchPermission(g, required) {
			return true
		}
	}
	return false
}

func matchPermission(pattern, perm string) bool {
	if pattern == permissionWildcard || pattern == perm {
		return true
	}
	prefix, ok := strings.CutSuffix(pattern, permissionSeparator+permissionWildcard)
	if !ok {
		return false
	}
	return strings.HasPrefix(perm, prefix+permissionSeparator)
}

// normalizePermissions removes blanks and duplicates and drops entries already
// covered by a wildcard in the same set.
func normalizePermissions(perms []string) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}

	result := make([]string, 0, len(out))
	for i, p := range out {
		covered := false
		for j, other := range out {
			if i != j && other != p && matchPermission(other, p) {
				covered = true
				break
			}
		}
		if !covered {
			result = append(result, p)
		}
	}
	slices.Sort(result)
	return result
}
