package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single failed rule for one field.
type ValidationError struct {
	Field             string
	Rule              Kind
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is an ordered collection of field errors. It implements error.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.Get(field)
	return ok
}

// Get returns the first error recorded for field.
func (ve ValidationErrors) Get(field string) (ValidationError, bool) {
	i := slices.IndexFunc(ve, func(e ValidationError) bool { return e.Field == field })
	if i < 0 {
		return ValidationError{}, false
	}
	return ve[i], true
}

// Message returns the message of the first error recorded for field, or "".
func (ve ValidationErrors) Message(field string) string {
	if err, ok := ve.Get(field); ok {
		return err.Message
	}
	return ""
}

// Fields lists the failing fields once each, in report order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, err := range ve {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

// Map returns the field -> message payload consumed by API clients.
// Only the first message of a field is kept.
func (ve ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(ve))
	for _, err := range ve {
		if _, ok := out[err.Field]; !ok {
			out[err.Field] = err.Message
		}
	}
	return out
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var verrs ValidationErrors
	return errors.As(err, &verrs)
}
