// Package validator evaluates declarative rule sets against loosely typed
// request input and produces per-field, translation-friendly errors.
//
// A RuleSet is an ordered list of fields, each carrying an ordered list of
// Rule values. Rules are a closed set of kinds (Required, Optional,
// StringType, MinLength, MaxLength, Pattern, Email, In, Confirmed,
// UniqueExternal, ExistsExternal) dispatched by the engine with a switch, so
// there is no string parsing at request time.
//
// # Evaluation
//
// Evaluate walks the RuleSet in declaration order. Within a field evaluation
// stops at the first failing rule, so every field yields at most one error.
// Errors of different fields accumulate independently and are reported in
// RuleSet order, not input order.
//
//	rules, err := validator.NewRuleSet().
//	    Field("nama", validator.Required(), validator.StringType(), validator.MaxLength(255)).
//	    Field("email", validator.Required(), validator.Email(), validator.UniqueExternal("users", "email")).
//	    Build()
//	if err != nil {
//	    // duplicate field names
//	}
//
//	res, err := validator.Evaluate(ctx, rules, input, lookups)
//	if err != nil {
//	    // errors.Is(err, validator.ErrLookupUnavailable): the data store could not answer
//	}
//	if !res.Valid() {
//	    // res.Errors.Map() -> field: message
//	}
//
// # External lookups
//
// UniqueExternal and ExistsExternal delegate to the Lookups interface. The
// engine never talks to a data store itself. A lookup failure is returned as
// an error wrapping ErrLookupUnavailable and is never reported as a field
// error, so an unavailable database is not mistaken for a duplicate value.
//
// # Messages
//
// Resolver turns a ValidationError into a display string. It checks
// per-operation overrides keyed by "<field>.<rule>", then a translator, then
// built-in Indonesian phrases, substituting attribute labels for raw field
// names. It never fails.
package validator
