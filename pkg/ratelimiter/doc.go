// Package ratelimiter throttles requests with a token bucket per key.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request takes one token; a request finding the bucket
// empty is rejected with 429 and a Retry-After header. Buckets live in a
// Store: MemoryStore for a single instance, RedisStore when several
// instances must share limits.
//
//	l, err := ratelimiter.New(ratelimiter.NewRedisStore(rdb, "throttle"), cfg)
//	r.With(ratelimiter.Middleware(l, ratelimiter.ByClientIP("login"))).Post("/login", h)
package ratelimiter
