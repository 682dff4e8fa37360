package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/handler"
	"github.com/simonta/simonta-api/pkg/jwt"
)

func TestPolicyOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	opts, err := policyOptions(ctx, authzBuiltin, log)
	require.NoError(t, err)
	assert.Empty(t, opts)

	opts, err = policyOptions(ctx, authzPermissions, log)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	opts, err = policyOptions(ctx, authzCasbin, log)
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = policyOptions(ctx, "opa", log)
	assert.Error(t, err)
}

func TestInvalidToken_UsesApplicationErrorHandler(t *testing.T) {
	t.Parallel()

	tokens, err := jwt.New(jwt.Config{Secret: "0123456789abcdef0123456789abcdef", Issuer: "simonta-test", TTL: time.Hour})
	require.NoError(t, err)

	eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), nil)
	called := false
	h := jwt.Middleware(tokens, jwt.WithErrorHandler(invalidToken(eh)))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"Authentication is required"}}`, rec.Body.String())
}
