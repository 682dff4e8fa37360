package validator

import "context"

// Lookups answers uniqueness and existence questions against a data store.
// Implementations should apply their own timeout; any returned error is
// treated as ErrLookupUnavailable by the engine.
type Lookups interface {
	// Exists reports whether a row with column = value exists in entity.
	Exists(ctx context.Context, entity, column string, value any) (bool, error)

	// ExistsExcluding is Exists ignoring the row whose primary key is excludeID.
	ExistsExcluding(ctx context.Context, entity, column string, value any, excludeID int64) (bool, error)
}
