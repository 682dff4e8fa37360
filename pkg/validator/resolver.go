package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Labels maps field names to display labels ("nama" -> "Nama Lengkap").
type Labels map[string]string

// Label returns the display label of field, falling back to the raw name.
func (l Labels) Label(field string) string {
	if label, ok := l[field]; ok && label != "" {
		return label
	}
	return field
}

// Messages holds per-operation message overrides keyed by "<field>.<rule>",
// for example "nama.required" or "username.unique".
type Messages map[string]string

// Translator is the subset of i18n.Translator used to render generic templates.
type Translator interface {
	HasTranslation(lang, key string) bool
	T(lang, key string, args ...string) string
}

// builtinTemplates are the generic Indonesian phrases used when neither an
// override nor a translation is available.
var builtinTemplates = map[Kind]string{
	KindRequired:  "%{attribute} wajib diisi",
	KindString:    "%{attribute} harus berupa teks",
	KindMinLength: "%{attribute} minimal %{min} karakter",
	KindMaxLength: "%{attribute} maksimal %{max} karakter",
	KindPattern:   "Format %{attribute} tidak valid",
	KindEmail:     "%{attribute} harus berupa alamat email yang valid",
	KindIn:        "%{attribute} yang dipilih tidak valid",
	KindConfirmed: "Konfirmasi %{attribute} tidak cocok",
	KindUnique:    "%{attribute} sudah digunakan",
	KindExists:    "%{attribute} yang dipilih tidak ditemukan",
}

const fallbackTemplate = "%{attribute} tidak valid (%{rule})"

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Resolver renders ValidationErrors into human-readable messages.
// It is immutable and safe for concurrent use.
type Resolver struct {
	translator Translator
	lang       string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTranslator renders generic templates through t in language lang.
func WithTranslator(t Translator, lang string) ResolverOption {
	return func(r *Resolver) {
		if t != nil {
			r.translator = t
		}
		if lang != "" {
			r.lang = lang
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{lang: "id"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Language returns the language generic templates are rendered in.
func (r *Resolver) Language() string { return r.lang }

// WithLanguage returns a copy of the resolver rendering in lang.
// An empty lang returns the receiver unchanged.
func (r *Resolver) WithLanguage(lang string) *Resolver {
	if lang == "" || lang == r.lang {
		return r
	}
	cp := *r
	cp.lang = lang
	return &cp
}

// Resolve returns the message for fe. Lookup order: override
// "<field>.<rule>", translator template "validation.<rule>", built-in phrase,
// generic phrase naming the rule.
func (r *Resolver) Resolve(fe ValidationError, labels Labels, overrides Messages) string {
	params := r.params(fe, labels)

	if tmpl, ok := overrides[fe.Field+"."+fe.Rule.String()]; ok && tmpl != "" {
		return substitute(tmpl, params)
	}

	if r.translator != nil {
		key := fe.TranslationKey
		if key == "" {
			key = fe.Rule.TranslationKey()
		}
		if r.translator.HasTranslation(r.lang, key) {
			args := make([]string, 0, len(params)*2)
			for k, v := range params {
				args = append(args, k, v)
			}
			if msg := r.translator.T(r.lang, key, args...); msg != "" && msg != key {
				return msg
			}
		}
	}

	if tmpl, ok := builtinTemplates[fe.Rule]; ok {
		return substitute(tmpl, params)
	}
	return substitute(fallbackTemplate, params)
}

// ResolveAll returns a copy of errs with every Message resolved.
func (r *Resolver) ResolveAll(errs ValidationErrors, labels Labels, overrides Messages) ValidationErrors {
	if len(errs) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(errs))
	for i, fe := range errs {
		fe.Message = r.Resolve(fe, labels, overrides)
		out[i] = fe
	}
	return out
}

func (r *Resolver) params(fe ValidationError, labels Labels) map[string]string {
	params := make(map[string]string, len(fe.TranslationValues)+2)
	for k, v := range fe.TranslationValues {
		switch t := v.(type) {
		case []string:
			params[k] = strings.Join(t, ", ")
		default:
			params[k] = fmt.Sprint(v)
		}
	}
	params["attribute"] = labels.Label(fe.Field)
	params["rule"] = fe.Rule.String()
	if other, ok := params["other"]; ok {
		params["other"] = labels.Label(other)
	}
	return params
}

// substitute replaces %{name} placeholders, keeping unknown ones verbatim.
func substitute(tmpl string, params map[string]string) string {
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
