package request

import (
	"github.com/simonta/simonta-api/pkg/rbac"
	"github.com/simonta/simonta-api/pkg/validator"
)

// Operation describes one validated, authorized use case.
type Operation[T any] struct {
	Name string

	// Policy is evaluated before validation. Nil means no authorization
	// is required.
	Policy rbac.Policy

	// Rules builds the RuleSet for one request. It receives the raw input so
	// that fields can be included conditionally (partial updates).
	Rules func(in validator.Input) (validator.RuleSet, error)

	Labels   validator.Labels
	Messages validator.Messages

	// Decode turns a validated record into the operation's value.
	Decode func(rec validator.Record) (T, error)
}

// StaticRules adapts a fixed RuleSet to Operation.Rules.
func StaticRules(rs validator.RuleSet) func(validator.Input) (validator.RuleSet, error) {
	return func(validator.Input) (validator.RuleSet, error) { return rs, nil }
}

// Outcome classifies a pipeline result.
type Outcome uint8

const (
	Valid Outcome = iota
	Invalid
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Result is the outcome of Run. Value is set only for Valid outcomes and
// Errors only for Invalid ones.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	Errors  validator.ValidationErrors
}

// Err returns ErrAuthorizationDenied, the resolved ValidationErrors, or nil.
func (r Result[T]) Err() error {
	switch r.Outcome {
	case Denied:
		return ErrAuthorizationDenied
	case Invalid:
		return r.Errors
	default:
		return nil
	}
}
