// Package account implements user registration and profile updates for the
// Simonta API.
//
// Every write goes through a request.Operation: the authorization policy is
// checked first, then the declarative rules, then the typed input is decoded
// and persisted. Uniqueness rules are checked against the lookups before the
// write, and the database unique constraints map back onto the same field
// errors when two requests race.
//
//	svc := account.NewService(pipeline, account.NewPostgresStorage(pool))
//	r.Mount("/", account.NewHandler(svc, account.WithTokenIssuer(tokens)).Routes())
package account
