package lookups

import "errors"

var (
	// ErrUnknownEntity is returned for an entity missing from the Schema.
	ErrUnknownEntity = errors.New("lookups: unknown entity")

	// ErrUnknownColumn is returned for a column the Schema does not allow for the entity.
	ErrUnknownColumn = errors.New("lookups: unknown column")
)
