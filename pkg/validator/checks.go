package validator

import (
	"net/mail"
	"reflect"
	"slices"
	"strings"
	"unicode/utf8"
)

func checkString(v any) bool {
	_, ok := v.(string)
	return ok
}

func length(v any) int {
	return utf8.RuneCountInString(stringify(v))
}

func checkPattern(r Rule, v any, optional bool) bool {
	s := stringify(v)
	if s == "" && optional {
		return true
	}
	return r.pattern.MatchString(s)
}

func checkIn(r Rule, v any) bool {
	return slices.Contains(r.allowed, stringify(v))
}

func checkConfirmed(field string, v any, in Input) bool {
	companion, ok := in.Lookup(field + ConfirmationSuffix)
	if !ok {
		return false
	}
	return reflect.DeepEqual(v, companion)
}

// checkEmail accepts bare RFC 5322 addresses with a dotted domain.
func checkEmail(v any) bool {
	value, ok := v.(string)
	if !ok || strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, found := strings.Cut(addr.Address, "@")
	if !found || local == "" || strings.Contains(domain, "@") {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}
