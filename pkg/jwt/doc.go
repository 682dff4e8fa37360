// Package jwt issues and verifies HS256 access tokens on top of
// github.com/golang-jwt/jwt/v5 and turns them into rbac actors.
//
// A token's subject is the user id and its "role" claim the role name:
//
//	svc, err := jwt.New(cfg)
//	token, expiresAt, err := svc.Issue(rbac.Actor{ID: 7, Role: "Warga"})
//
// Middleware authenticates optional bearer tokens. Anonymous requests pass
// through untouched so operations can decide through their policy whether
// an actor is required.
package jwt
