package i18n

import (
	"net/http"
)

// DefaultQueryParam is the query parameter that overrides Accept-Language.
const DefaultQueryParam = "lang"

// Middleware stores the negotiated language in the request context. An
// explicit ?lang= query parameter wins over the Accept-Language header.
func Middleware(n *Negotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := n.fallback
			if q := r.URL.Query().Get(DefaultQueryParam); q != "" {
				lang = n.Match(q)
			} else if h := r.Header.Get("Accept-Language"); h != "" {
				lang = n.Match(h)
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
