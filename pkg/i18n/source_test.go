package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/i18n"
)

func TestFSSource_Load(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"locales/id.yaml": {Data: []byte(`
id:
  validation:
    required: "%{attribute} wajib diisi"
    min: "%{attribute} minimal %{min} karakter"
`)},
		"locales/id_extra.yml": {Data: []byte(`
id:
  validation:
    min: "%{attribute} paling sedikit %{min} karakter"
  attributes:
    nama: Nama
`)},
		"locales/en.yaml": {Data: []byte(`
en:
  validation:
    required: "The %{attribute} field is required"
`)},
		"locales/README.md":     {Data: []byte("ignored")},
		"locales/nested/x.yaml": {Data: []byte("not: [valid")},
	}

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSSource(fsys, "locales"))
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "id"}, tr.SupportedLanguages())
	assert.Equal(t, "Nama wajib diisi", tr.T("id", "validation.required", "attribute", "Nama"))
	assert.Equal(t, "Password paling sedikit 6 karakter", tr.T("id", "validation.min", "attribute", "Password", "min", "6"))
	assert.Equal(t, "Nama", tr.T("id", "attributes.nama"))
}

func TestFSSource_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.NewFSSource(fstest.MapFS{}, "locales").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToReadDir)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fsys := fstest.MapFS{"bad.yaml": {Data: []byte("id: [unterminated")}}
		_, err := i18n.NewFSSource(fsys, "").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("language is not a map", func(t *testing.T) {
		fsys := fstest.MapFS{"bad.yaml": {Data: []byte("id: hello")}}
		_, err := i18n.NewFSSource(fsys, ".").Load(context.Background())
		assert.ErrorIs(t, err, i18n.ErrInvalidCatalog)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.NewFSSource(fstest.MapFS{}, ".").Load(ctx)
		assert.ErrorIs(t, err, i18n.ErrLoadingCancelled)
	})
}

func TestMapSource_Nil(t *testing.T) {
	t.Parallel()

	catalog, err := i18n.MapSource(nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
