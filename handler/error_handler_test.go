package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/handler"
	"github.com/simonta/simonta-api/pkg/binder"
	"github.com/simonta/simonta-api/pkg/i18n"
	"github.com/simonta/simonta-api/pkg/request"
	"github.com/simonta/simonta-api/pkg/validator"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	verrs := validator.ValidationErrors{
		{Field: "nama", Message: "Nama wajib diisi"},
		{Field: "email", Message: "Email sudah digunakan"},
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", verrs, http.StatusUnprocessableEntity, "validation_error"},
		{"wrapped validation", fmt.Errorf("register: %w", verrs), http.StatusUnprocessableEntity, "validation_error"},
		{"denied", request.ErrAuthorizationDenied, http.StatusForbidden, "forbidden"},
		{"lookup unavailable", errors.Join(validator.ErrLookupUnavailable, errors.New("timeout")), http.StatusServiceUnavailable, "service_unavailable"},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, "service_unavailable"},
		{"content type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "request_entity_too_large"},
		{"bad json", binder.ErrFailedToParseJSON, http.StatusBadRequest, "bad_request"},
		{"bad path", binder.ErrInvalidPathParam, http.StatusBadRequest, "bad_request"},
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found"},
		{"throttled", handler.ErrTooManyRequests, http.StatusTooManyRequests, "too_many_requests"},
		{"custom http error", handler.NewHTTPError(http.StatusTeapot, "teapot"), http.StatusTeapot, "teapot"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := handler.Classify(tt.err)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Detail.Code)
			assert.NotEmpty(t, info.Detail.Message)
		})
	}

	info := handler.Classify(verrs)
	assert.Equal(t, map[string]string{"nama": "Nama wajib diisi", "email": "Email sudah digunakan"}, info.Detail.Details)
}

func TestNewErrorHandler_ValidationPayload(t *testing.T) {
	t.Parallel()

	eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), nil)
	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/register", nil)),
		validator.ValidationErrors{{Field: "nama", Message: "Nama wajib diisi"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"validation_error","message":"The given data was invalid","details":{"nama":"Nama wajib diisi"}}}`, rec.Body.String())
}

func TestNewErrorHandler_LocalizesAndLogs(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), i18n.MapSource{
		"id": {"errors": map[string]any{"forbidden": "Anda tidak memiliki akses"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	eh := handler.NewErrorHandler(log, tr)

	req := httptest.NewRequest(http.MethodPut, "/users/2", nil)
	req = req.WithContext(i18n.WithLocale(req.Context(), "id"))

	rec := httptest.NewRecorder()
	eh(handler.NewContext(rec, req), request.ErrAuthorizationDenied)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"forbidden","message":"Anda tidak memiliki akses"}}`, rec.Body.String())
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":403`)

	buf.Reset()
	rec = httptest.NewRecorder()
	eh(handler.NewContext(rec, req), validator.ErrLookupUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "temporarily unavailable", "missing translation keeps the default")
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}
