package lookups

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// Config tunes the lookup stack. Field names map to LOOKUP_* env vars.
type Config struct {
	Timeout     time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"2s"`
	CacheTTL    time.Duration `env:"LOOKUP_CACHE_TTL" envDefault:"10m"`
	CachePrefix string        `env:"LOOKUP_CACHE_PREFIX" envDefault:"lookup"`

	BreakerFailures    uint32        `env:"LOOKUP_BREAKER_FAILURES" envDefault:"5"`     // consecutive failures that open the circuit
	BreakerMaxRequests uint32        `env:"LOOKUP_BREAKER_MAX_REQUESTS" envDefault:"1"` // trial requests allowed while half-open
	BreakerInterval    time.Duration `env:"LOOKUP_BREAKER_INTERVAL" envDefault:"1m"`    // closed-state counter reset period
	BreakerOpenTimeout time.Duration `env:"LOOKUP_BREAKER_OPEN_TIMEOUT" envDefault:"15s"`
}

// BreakerSettings converts the breaker fields into gobreaker settings.
func (c Config) BreakerSettings(name string) gobreaker.Settings {
	failures := max(c.BreakerFailures, 1)
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: c.BreakerMaxRequests,
		Interval:    c.BreakerInterval,
		Timeout:     c.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	}
}
