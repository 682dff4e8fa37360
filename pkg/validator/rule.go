package validator

import (
	"fmt"
	"regexp"
	"slices"
)

// ConfirmationSuffix is appended to a field name to find the companion field
// checked by Confirmed.
const ConfirmationSuffix = "_confirmation"

// Rule is a single declarative check. Construct it with the package functions;
// the zero value is not a valid rule.
type Rule struct {
	kind    Kind
	limit   int
	pattern *regexp.Regexp
	allowed []string
	entity  string
	column  string
	exclude *int64
}

// Kind returns the rule kind.
func (r Rule) Kind() Kind { return r.kind }

// Required fails when the value is absent, null, or a blank string.
func Required() Rule { return Rule{kind: KindRequired} }

// Optional marks the field as nullable: absent, null and empty values skip
// the remaining rules of the field.
func Optional() Rule { return Rule{kind: KindOptional} }

// StringType requires the value to be a string.
func StringType() Rule { return Rule{kind: KindString} }

// MinLength requires at least n characters (runes, not bytes).
func MinLength(n int) Rule { return Rule{kind: KindMinLength, limit: n} }

// MaxLength allows at most n characters (runes, not bytes).
func MaxLength(n int) Rule { return Rule{kind: KindMaxLength, limit: n} }

// Pattern requires the whole value to match expr. The expression is anchored
// by the engine, so "[0-9]+" behaves like "^[0-9]+$".
// It panics if expr does not compile, like regexp.MustCompile.
func Pattern(expr string) Rule {
	return Rule{kind: KindPattern, pattern: regexp.MustCompile(`^(?:` + expr + `)$`)}
}

// Email requires a syntactically valid e-mail address.
func Email() Rule { return Rule{kind: KindEmail} }

// In requires the value to be one of values.
func In(values ...string) Rule {
	return Rule{kind: KindIn, allowed: slices.Clone(values)}
}

// Confirmed requires a companion "<field>_confirmation" value equal to the field value.
func Confirmed() Rule { return Rule{kind: KindConfirmed} }

// UniqueExternal fails when a row with column = value already exists in entity.
func UniqueExternal(entity, column string) Rule {
	return Rule{kind: KindUnique, entity: entity, column: column}
}

// UniqueExternalExcept is UniqueExternal ignoring the row identified by id,
// so a resource can keep its own value on update.
func UniqueExternalExcept(entity, column string, id int64) Rule {
	return Rule{kind: KindUnique, entity: entity, column: column, exclude: &id}
}

// ExistsExternal fails when no row with column = value exists in entity.
// Null and absent values pass.
func ExistsExternal(entity, column string) Rule {
	return Rule{kind: KindExists, entity: entity, column: column}
}

// params returns the placeholder values used to render the rule's message.
func (r Rule) params(field string) map[string]any {
	p := map[string]any{"field": field}
	switch r.kind {
	case KindMinLength:
		p["min"] = r.limit
	case KindMaxLength:
		p["max"] = r.limit
	case KindIn:
		p["values"] = slices.Clone(r.allowed)
	case KindConfirmed:
		p["other"] = field + ConfirmationSuffix
	case KindUnique, KindExists:
		p["entity"] = r.entity
		p["column"] = r.column
	}
	return p
}

// defaultMessage is the untranslated message stored on the error by the engine.
func (r Rule) defaultMessage() string {
	switch r.kind {
	case KindRequired:
		return "field is required"
	case KindString:
		return "must be a string"
	case KindMinLength:
		return fmt.Sprintf("must be at least %d characters long", r.limit)
	case KindMaxLength:
		return fmt.Sprintf("must be at most %d characters long", r.limit)
	case KindPattern:
		return "has an invalid format"
	case KindEmail:
		return "must be a valid email address"
	case KindIn:
		return fmt.Sprintf("must be one of: %v", r.allowed)
	case KindConfirmed:
		return "confirmation does not match"
	case KindUnique:
		return "has already been taken"
	case KindExists:
		return "does not exist"
	default:
		return "is invalid"
	}
}
