package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Catalog maps a language code to its nested translation tree.
type Catalog map[string]map[string]any

// Translator renders message templates from a Catalog. It is safe for
// concurrent use; Reload swaps the catalog atomically.
type Translator struct {
	mu             sync.RWMutex
	catalog        Catalog
	source         Source
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used by Tc when the context carries none.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether T returns the key when a translation is
// missing. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs a warning for each missing key.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}

// NewTranslator loads the catalog from source and returns a Translator.
func NewTranslator(ctx context.Context, source Source, opts ...Option) (*Translator, error) {
	if source == nil {
		return nil, ErrNilSource
	}

	t := &Translator{
		source:        source,
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload reads the source again and replaces the catalog.
func (t *Translator) Reload(ctx context.Context) error {
	catalog, err := t.source.Load(ctx)
	if err != nil {
		return err
	}
	for lang, tree := range catalog {
		if lang == "" {
			return ErrEmptyLanguage
		}
		if tree == nil {
			return fmt.Errorf("%w: nil translations for %q", ErrInvalidCatalog, lang)
		}
	}

	t.mu.Lock()
	t.catalog = catalog
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return nil
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string { return t.defaultLang }

// SupportedLanguages returns the sorted language codes of the catalog.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.catalog))
	for lang := range t.catalog {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// HasTranslation reports whether key resolves to a string in lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookup(lang, key)
	return ok
}

// T renders key in lang. Args are key/value pairs substituted into %{key}
// placeholders; an odd trailing arg is ignored.
//
//	tr.T("id", "validation.min", "attribute", "Password", "min", "6")
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.lookup(lang, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		if !t.fallbackToKey {
			return ""
		}
		tmpl = key
	}
	return Sprintf(tmpl, args...)
}

// Td is like T but falls back to def instead of the key.
func (t *Translator) Td(lang, key, def string, args ...string) string {
	tmpl, ok := t.lookup(lang, key)
	if !ok {
		tmpl = def
	}
	return Sprintf(tmpl, args...)
}

// Tc renders key in the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	lang, _ := ctx.Value(localeContextKey{}).(string)
	if lang == "" {
		lang = t.defaultLang
	}
	return t.T(lang, key, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tree, ok := t.catalog[lang]
	if !ok {
		return "", false
	}

	var node any = tree
	for part := range strings.SplitSeq(key, ".") {
		m, ok := asMap(node)
		if !ok {
			return "", false
		}
		if node, ok = m[part]; !ok {
			return "", false
		}
	}

	s, ok := node.(string)
	return s, ok
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	default:
		return nil, false
	}
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Sprintf substitutes %{name} placeholders with the values given as
// key/value pairs. Unknown placeholders are kept verbatim.
func Sprintf(tmpl string, args ...string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
