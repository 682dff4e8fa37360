package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state.
type Store interface {
	// Take removes n tokens from the bucket at key if it holds enough.
	// remaining is the count left afterwards; it is negative, and nothing
	// is taken, when the bucket held fewer than n. resetAt is when the next
	// refill happens.
	Take(ctx context.Context, key string, n int, cfg Config) (remaining int, resetAt time.Time, err error)

	// Reset drops the bucket at key.
	Reset(ctx context.Context, key string) error
}
