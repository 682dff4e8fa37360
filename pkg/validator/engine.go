package validator

import (
	"context"
	"errors"
)

// Result is the outcome of Evaluate: either a Record of validated fields or a
// non-empty list of errors, never both.
type Result struct {
	Record Record
	Errors ValidationErrors
}

func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Err returns the errors as an error value, or nil when valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// Evaluate validates in against rs. Field errors are returned in Result; the
// error return is reserved for lookup failures (wrapping ErrLookupUnavailable).
// Evaluate has no side effects besides the calls made on lookups, which are
// issued sequentially in field order.
func Evaluate(ctx context.Context, rs RuleSet, in Input, lookups Lookups) (Result, error) {
	if lookups == nil && rs.needsLookups() {
		return Result{}, errors.Join(ErrLookupUnavailable, ErrNoLookups)
	}

	record := make(Record, len(rs.fields))
	var errs ValidationErrors

	for _, f := range rs.fields {
		fe, err := evaluateField(ctx, f, in, lookups, record)
		if err != nil {
			return Result{}, err
		}
		if fe != nil {
			errs.Add(*fe)
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}, nil
	}
	return Result{Record: record}, nil
}

// evaluateField settles presence first, so Required and Optional apply
// wherever they sit in the rule list, then runs the remaining rules in order
// and stops at the first failure. On success the value is copied into
// record when present.
func evaluateField(ctx context.Context, f FieldRules, in Input, lookups Lookups, record Record) (*ValidationError, error) {
	v, present := in.Lookup(f.Name)

	var required, optional bool
	for _, r := range f.Rules {
		switch r.kind {
		case KindRequired:
			if !required && (!present || isBlank(v)) {
				return fieldError(f.Name, r), nil
			}
			required = true
		case KindOptional:
			optional = true
		}
	}

	if !present || v == nil || (optional && isEmptyString(v)) {
		if present {
			record[f.Name] = nil
		}
		return nil, nil
	}

	for _, r := range f.Rules {
		if r.kind == KindRequired || r.kind == KindOptional {
			continue
		}
		ok, err := check(ctx, f.Name, r, v, in, lookups, optional)
		if err != nil {
			return nil, err
		}
		if !ok {
			return fieldError(f.Name, r), nil
		}
	}

	record[f.Name] = v
	return nil, nil
}

func check(ctx context.Context, field string, r Rule, v any, in Input, lookups Lookups, optional bool) (bool, error) {
	switch r.kind {
	case KindString:
		return checkString(v), nil
	case KindMinLength:
		return length(v) >= r.limit, nil
	case KindMaxLength:
		return length(v) <= r.limit, nil
	case KindPattern:
		return checkPattern(r, v, optional), nil
	case KindEmail:
		return checkEmail(v), nil
	case KindIn:
		return checkIn(r, v), nil
	case KindConfirmed:
		return checkConfirmed(field, v, in), nil
	case KindUnique:
		var (
			taken bool
			err   error
		)
		if r.exclude != nil {
			taken, err = lookups.ExistsExcluding(ctx, r.entity, r.column, lookupValue(v), *r.exclude)
		} else {
			taken, err = lookups.Exists(ctx, r.entity, r.column, lookupValue(v))
		}
		if err != nil {
			return false, lookupError(err)
		}
		return !taken, nil
	case KindExists:
		found, err := lookups.Exists(ctx, r.entity, r.column, lookupValue(v))
		if err != nil {
			return false, lookupError(err)
		}
		return found, nil
	default:
		return true, nil
	}
}

func lookupError(err error) error {
	if errors.Is(err, ErrLookupUnavailable) {
		return err
	}
	return errors.Join(ErrLookupUnavailable, err)
}

func fieldError(field string, r Rule) *ValidationError {
	return &ValidationError{
		Field:             field,
		Rule:              r.kind,
		Message:           r.defaultMessage(),
		TranslationKey:    r.kind.TranslationKey(),
		TranslationValues: r.params(field),
	}
}

// FieldError returns the error Evaluate records when r fails for field. It
// lets callers report failures detected after validation, such as a unique
// constraint violation on write, in the same shape.
func FieldError(field string, r Rule) ValidationError {
	return *fieldError(field, r)
}
