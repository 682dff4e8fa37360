package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Input is the raw request payload. A missing key means "not provided";
// a key holding nil means "explicitly null".
type Input map[string]any

// Lookup returns the raw value and whether the key is present.
func (in Input) Lookup(field string) (any, bool) {
	v, ok := in[field]
	return v, ok
}

// Has reports whether the key is present, even with a nil value.
func (in Input) Has(field string) bool {
	_, ok := in[field]
	return ok
}

// Record holds the validated fields of an input. Only fields declared in the
// RuleSet and present in the input are copied; optional fields submitted
// empty are stored as nil.
type Record map[string]any

func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// String returns the field as a string, or "" when absent or null.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

// StringPtr returns nil for absent or null fields.
func (r Record) StringPtr(field string) *string {
	v, ok := r[field]
	if !ok || v == nil {
		return nil
	}
	s := stringify(v)
	return &s
}

// Int64Ptr returns nil for absent, null, or non-integer fields.
func (r Record) Int64Ptr(field string) *int64 {
	v, ok := r[field]
	if !ok || v == nil {
		return nil
	}
	if n, ok := toInt64(v); ok {
		return &n
	}
	return nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func isEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return int64(t), true
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// lookupValue normalizes JSON numbers so data stores receive integers for
// integral values instead of float64.
func lookupValue(v any) any {
	switch t := v.(type) {
	case float64, json.Number:
		if n, ok := toInt64(t); ok {
			return n
		}
		return stringify(t)
	default:
		return v
	}
}
