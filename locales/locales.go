// Package locales embeds the translation catalogs of the API.
package locales

import (
	"embed"

	"github.com/simonta/simonta-api/pkg/i18n"
)

//go:embed *.yaml
var files embed.FS

// Supported lists the catalog languages, default first.
var Supported = []string{"id", "en"}

// Source returns an i18n.Source over the embedded catalogs.
func Source() i18n.Source {
	return i18n.NewFSSource(files, ".")
}
