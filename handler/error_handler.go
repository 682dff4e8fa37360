package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/simonta/simonta-api/pkg/binder"
	"github.com/simonta/simonta-api/pkg/i18n"
	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/validator"
)

// ErrorInfo is the HTTP rendering of an error.
type ErrorInfo struct {
	Status int
	Detail ErrorDetail
}

var defaultMessages = map[string]string{
	"bad_request":              "The request could not be understood",
	"unauthorized":             "Authentication is required",
	"forbidden":                "You are not allowed to perform this action",
	"not_found":                "The requested resource was not found",
	"method_not_allowed":       "Method not allowed",
	"conflict":                 "The resource was modified concurrently",
	"request_entity_too_large": "The request body is too large",
	"unsupported_media_type":   "Content-Type must be application/json",
	"validation_error":         "The given data was invalid",
	"too_many_requests":        "Too many attempts, please retry later",
	"internal_error":           "An error occurred processing your request",
	"service_unavailable":      "The service is temporarily unavailable, please retry",
}

// Classify maps an error onto a status code and error detail. Unknown errors
// become 500 without leaking their text.
func Classify(err error) ErrorInfo {
	var (
		httpErr HTTPError
		verrs   validator.ValidationErrors
	)

	switch {
	case errors.As(err, &verrs):
		return detailed(ErrUnprocessableEntity, verrs.Map())
	case errors.Is(err, request.ErrAuthorizationDenied):
		return detailed(ErrForbidden, nil)
	case errors.Is(err, validator.ErrLookupUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return detailed(ErrServiceUnavailable, nil)
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		return detailed(ErrUnsupportedMediaType, nil)
	case errors.Is(err, binder.ErrBodyTooLarge):
		return detailed(ErrRequestEntityTooLarge, nil)
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrInvalidPathParam):
		return detailed(ErrBadRequest, nil)
	case errors.As(err, &httpErr):
		return detailed(httpErr, nil)
	default:
		return detailed(ErrInternalServerError, nil)
	}
}

func detailed(e HTTPError, details map[string]string) ErrorInfo {
	msg, ok := defaultMessages[e.Key]
	if !ok {
		msg = http.StatusText(e.Code)
	}
	return ErrorInfo{
		Status: e.Code,
		Detail: ErrorDetail{Code: e.Key, Message: msg, Details: details},
	}
}

// Messages localizes error messages. *i18n.Translator satisfies it.
type Messages interface {
	Td(lang, key, def string, args ...string) string
}

// NewErrorHandler returns the API error handler: it classifies err, logs it
// (warn for 4xx, error for 5xx), localizes the message under
// "errors.<code>" in the request language and writes the JSON envelope.
// A nil msgs keeps English messages.
func NewErrorHandler(log *slog.Logger, msgs Messages) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := Classify(err)

		level := slog.LevelWarn
		if info.Status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Component("http"),
			logger.Error(err),
			slog.Int("status", info.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if msgs != nil {
			info.Detail.Message = msgs.Td(i18n.Locale(r.Context()), "errors."+info.Detail.Code, info.Detail.Message)
		}

		resp := jsonResponse{status: info.Status, body: JSONResponse{Error: &info.Detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to write error response", logger.Error(renderErr))
		}
	}
}
