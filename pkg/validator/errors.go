package validator

import "errors"

var (
	// ErrLookupUnavailable is returned when an external uniqueness or existence
	// check could not be answered by the data store.
	ErrLookupUnavailable = errors.New("validator: lookup unavailable")

	// ErrNoLookups is returned when a rule set needs external lookups but none were supplied.
	ErrNoLookups = errors.New("validator: rule set requires lookups")

	// ErrDuplicateField is returned by the RuleSet builder when a field is declared twice.
	ErrDuplicateField = errors.New("validator: duplicate field in rule set")

	// ErrEmptyFieldName is returned by the RuleSet builder for a blank field name.
	ErrEmptyFieldName = errors.New("validator: empty field name")
)
