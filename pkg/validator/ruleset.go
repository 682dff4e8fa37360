package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// FieldRules is one entry of a RuleSet.
type FieldRules struct {
	Name  string
	Rules []Rule
}

// RuleSet is an ordered, immutable mapping from field name to rules.
// Build one with NewRuleSet.
type RuleSet struct {
	fields []FieldRules
}

// Fields returns field names in evaluation order.
func (rs RuleSet) Fields() []string {
	names := make([]string, len(rs.fields))
	for i, f := range rs.fields {
		names[i] = f.Name
	}
	return names
}

// Rules returns a copy of the rules declared for field.
func (rs RuleSet) Rules(field string) []Rule {
	for _, f := range rs.fields {
		if f.Name == field {
			return slices.Clone(f.Rules)
		}
	}
	return nil
}

func (rs RuleSet) Has(field string) bool {
	return slices.ContainsFunc(rs.fields, func(f FieldRules) bool { return f.Name == field })
}

func (rs RuleSet) Len() int { return len(rs.fields) }

// needsLookups reports whether any rule consults Lookups.
func (rs RuleSet) needsLookups() bool {
	for _, f := range rs.fields {
		for _, r := range f.Rules {
			if r.kind.external() {
				return true
			}
		}
	}
	return false
}

// Builder accumulates fields for a RuleSet. RuleSets for partial updates are
// built per request, adding conditional fields with FieldIf.
type Builder struct {
	fields []FieldRules
	seen   map[string]struct{}
	errs   []error
}

// NewRuleSet starts an empty RuleSet builder.
func NewRuleSet() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

// Field appends a field with its rules.
func (b *Builder) Field(name string, rules ...Rule) *Builder {
	name = strings.TrimSpace(name)
	if name == "" {
		b.errs = append(b.errs, ErrEmptyFieldName)
		return b
	}
	if _, dup := b.seen[name]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateField, name))
		return b
	}
	b.seen[name] = struct{}{}
	b.fields = append(b.fields, FieldRules{Name: name, Rules: slices.Clone(rules)})
	return b
}

// FieldIf appends the field only when cond is true.
func (b *Builder) FieldIf(cond bool, name string, rules ...Rule) *Builder {
	if !cond {
		return b
	}
	return b.Field(name, rules...)
}

// Build returns the RuleSet or the accumulated declaration errors.
func (b *Builder) Build() (RuleSet, error) {
	if len(b.errs) > 0 {
		return RuleSet{}, errors.Join(b.errs...)
	}
	fields := make([]FieldRules, len(b.fields))
	for i, f := range b.fields {
		fields[i] = FieldRules{Name: f.Name, Rules: slices.Clone(f.Rules)}
	}
	return RuleSet{fields: fields}, nil
}

// MustBuild is like Build but panics on declaration errors.
func (b *Builder) MustBuild() RuleSet {
	rs, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rs
}
