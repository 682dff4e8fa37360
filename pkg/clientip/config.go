package clientip

// Config lists the proxy headers to trust, in priority order. Leave it
// empty when the service is not behind a proxy.
type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
}

// NewFromConfig builds a Resolver trusting cfg.TrustedHeaders.
func NewFromConfig(cfg Config) *Resolver {
	return New(WithTrustedHeaders(cfg.TrustedHeaders...))
}
