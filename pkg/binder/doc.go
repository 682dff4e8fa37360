// Package binder turns HTTP requests into the raw inputs the request
// pipeline validates.
//
// JSONInput keeps the distinction between an omitted key and an explicit
// null, which rule sets rely on for partial updates. Decoding into a struct
// would lose it, so the body becomes a validator.Input map instead. PathID
// reads numeric route parameters registered with chi.
package binder
