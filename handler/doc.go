// Package handler adapts typed request handlers to net/http and renders the
// API's JSON envelope.
//
//	r.Put("/users/{id}", handler.Wrap(h.updateUser,
//		handler.WithBinders[handler.Context](bindUserID, bindBody),
//		handler.WithErrorHandler[handler.Context, updateUserRequest](errHandler),
//	))
//
// Successful responses are {"data": ...}. Failures are
// {"error": {"code": ..., "message": ..., "details": {...}}} where Classify
// decides the status:
//
//   - validator.ValidationErrors: 422 "validation_error", details map each
//     failing field to one message
//   - request.ErrAuthorizationDenied: 403 "forbidden"
//   - validator.ErrLookupUnavailable or a deadline: 503 "service_unavailable"
//   - binder errors: 400, 413 or 415
//   - HTTPError: its own code and key
//   - anything else: 500 "internal_error"
package handler
