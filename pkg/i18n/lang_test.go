package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/i18n"
)

func TestNegotiator_Match(t *testing.T) {
	t.Parallel()

	n, err := i18n.NewNegotiator([]string{"id", "en"}, "id")
	require.NoError(t, err)

	tests := []struct {
		header string
		want   string
	}{
		{"", "id"},
		{"en", "en"},
		{"en-US", "en"},
		{"en-GB,en;q=0.9", "en"},
		{"id-ID,id;q=0.9,en;q=0.8", "id"},
		{"fr-FR,en;q=0.5", "en"},
		{"de", "id"},
		{"!!!", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Match(tt.header))
		})
	}
}

func TestNegotiator_Construction(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewNegotiator(nil, "")
	assert.ErrorIs(t, err, i18n.ErrLanguageUnsupported)

	n, err := i18n.NewNegotiator([]string{"EN", "not a tag"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, n.Supported())
	assert.Equal(t, i18n.DefaultLanguage, n.Fallback())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	n, err := i18n.NewNegotiator([]string{"id", "en"}, "id")
	require.NoError(t, err)

	var got string
	h := i18n.Middleware(n)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.Locale(r.Context())
	}))

	tests := []struct {
		name   string
		target string
		header string
		want   string
	}{
		{"no hints", "/", "", "id"},
		{"accept-language", "/", "en-US,en;q=0.9", "en"},
		{"query wins over header", "/?lang=id", "en", "id"},
		{"unsupported query falls back", "/?lang=fr", "en", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}
