package jwt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/simonta/simonta-api/pkg/rbac"
)

// TokenExtractorFunc pulls a token from a request. It returns ErrMissingToken
// when the request carries none.
type TokenExtractorFunc func(r *http.Request) (string, error)

// ErrorHandlerFunc writes the response for a rejected token.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

type middlewareOptions struct {
	extractor    TokenExtractorFunc
	errorHandler ErrorHandlerFunc
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareOptions)

func WithExtractor(fn TokenExtractorFunc) MiddlewareOption {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.extractor = fn
		}
	}
}

func WithErrorHandler(fn ErrorHandlerFunc) MiddlewareOption {
	return func(o *middlewareOptions) {
		if fn != nil {
			o.errorHandler = fn
		}
	}
}

// Middleware authenticates requests that carry a token and stores the actor
// with rbac.WithActor. Requests without a token continue anonymously, leaving
// the decision to the operation's policy. A present but invalid token is
// rejected with 401.
func Middleware(s *Service, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		extractor:    BearerTokenExtractor,
		errorHandler: unauthorized,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := o.extractor(r)
			if errors.Is(err, ErrMissingToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				o.errorHandler(w, r, err)
				return
			}

			actor, err := s.ParseActor(token)
			if err != nil {
				o.errorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(rbac.WithActor(r.Context(), actor)))
		})
	}
}

// BearerTokenExtractor reads "Authorization: Bearer <token>".
func BearerTokenExtractor(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

func unauthorized(w http.ResponseWriter, _ *http.Request, _ error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "invalid or expired token",
		},
	})
}
