// Package i18n loads message catalogs and picks the language of a request.
//
// Catalogs are nested maps keyed by language, loaded from a Source. The
// bundled FSSource reads YAML files from any fs.FS, which is how the service
// ships its locales through embed.FS:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSSource(locales.FS, "."),
//		i18n.WithDefaultLanguage("id"),
//		i18n.WithLogger(log),
//	)
//
//	msg := tr.T("id", "validation.required", "attribute", "Nama")
//	// msg == "Nama wajib diisi"
//
// Keys use dot notation to reach nested entries and templates use named
// placeholders in the form %{name}.
//
// # Language negotiation
//
// Negotiator matches Accept-Language headers against the supported languages
// using golang.org/x/text/language, so regional variants such as "en-GB" fall
// back to "en". Middleware stores the chosen language in the request context,
// where Locale reads it back.
package i18n
