// Package request runs an operation through the authorization gate, the
// validation engine and the message resolver, in that order.
//
// An Operation bundles everything that varies per use case: its policy, a
// per-request RuleSet builder, attribute labels, message overrides and a
// decoder turning the validated record into a typed value.
//
//	res, err := request.Run(ctx, pipeline, registerOp, nil, nil, input)
//	switch {
//	case err != nil:             // lookups unavailable or a programming error
//	case res.Outcome == request.Denied:
//	case res.Outcome == request.Invalid: // res.Errors holds one message per field
//	default:                     // res.Value is ready to persist
//	}
//
// Result.Err folds the outcome into the package's error classes so HTTP
// handlers can map errors to status codes in one place.
package request
