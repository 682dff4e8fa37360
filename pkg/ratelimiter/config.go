package ratelimiter

import (
	"fmt"
	"time"
)

// Config defines a token bucket. The defaults allow ten attempts per
// minute with a burst of ten.
type Config struct {
	Capacity       int           `env:"THROTTLE_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"THROTTLE_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"THROTTLE_REFILL_INTERVAL" envDefault:"1m"`
	Prefix         string        `env:"THROTTLE_PREFIX" envDefault:"throttle"` // Redis key prefix
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// refill returns the tokens after the intervals elapsed since last and the
// new refill timestamp. The timestamp advances by whole intervals so
// partial intervals are not lost.
func (c Config) refill(tokens int, last, now time.Time) (int, time.Time) {
	if now.Before(last) {
		return tokens, last
	}
	intervals := int64(now.Sub(last) / c.RefillInterval)
	if intervals <= 0 {
		return tokens, last
	}
	full := int64(c.Capacity/c.RefillRate + 1)
	if intervals >= full {
		return c.Capacity, now
	}
	return min(tokens+int(intervals)*c.RefillRate, c.Capacity), last.Add(time.Duration(intervals) * c.RefillInterval)
}
