package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language can be negotiated.
const DefaultLanguage = "id"

// maxAcceptLanguageLength bounds the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Negotiator picks one of the supported languages for a request.
type Negotiator struct {
	supported []string
	matcher   language.Matcher
	fallback  string
}

// NewNegotiator builds a negotiator over supported. Entries that are not
// valid BCP 47 tags are skipped. fallback is returned when nothing matches;
// an empty fallback means DefaultLanguage.
func NewNegotiator(supported []string, fallback string) (*Negotiator, error) {
	if fallback == "" {
		fallback = DefaultLanguage
	}

	n := &Negotiator{fallback: fallback}
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		n.supported = append(n.supported, strings.ToLower(code))
	}
	if len(tags) == 0 {
		return nil, ErrLanguageUnsupported
	}
	n.matcher = language.NewMatcher(tags)
	return n, nil
}

// Supported returns the normalized supported language codes.
func (n *Negotiator) Supported() []string {
	return append([]string(nil), n.supported...)
}

// Fallback returns the language used when negotiation fails.
func (n *Negotiator) Fallback() string { return n.fallback }

// Match returns the supported language closest to one of the given codes,
// which may be plain codes ("en-US") or a whole Accept-Language header.
func (n *Negotiator) Match(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return n.fallback
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return n.fallback
	}

	_, idx, conf := n.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(n.supported) {
		return n.fallback
	}
	return n.supported[idx]
}
