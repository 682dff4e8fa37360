package lookups

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simonta/simonta-api/pkg/logger"
	"github.com/simonta/simonta-api/pkg/validator"
)

// Cached remembers positive Exists answers for reference entities in Redis.
// Negative answers and ExistsExcluding always go to the wrapped store, so a
// uniqueness check never reads a stale cache. Redis failures are logged and
// the wrapped store answers instead.
type Cached struct {
	next     validator.Lookups
	client   redis.UniversalClient
	ttl      time.Duration
	prefix   string
	entities []string
	logger   *slog.Logger
}

// CachedOption configures Cached.
type CachedOption func(*Cached)

// WithCacheTTL sets how long a positive answer is kept.
func WithCacheTTL(ttl time.Duration) CachedOption {
	return func(c *Cached) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCachePrefix sets the Redis key prefix.
func WithCachePrefix(prefix string) CachedOption {
	return func(c *Cached) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithCachedEntities lists the entities whose rows are never deleted.
// Only these are cached.
func WithCachedEntities(entities ...string) CachedOption {
	return func(c *Cached) {
		c.entities = append(c.entities, entities...)
	}
}

// WithCacheLogger sets the logger for Redis failures.
func WithCacheLogger(l *slog.Logger) CachedOption {
	return func(c *Cached) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCached(next validator.Lookups, client redis.UniversalClient, opts ...CachedOption) *Cached {
	c := &Cached{
		next:   next,
		client: client,
		ttl:    10 * time.Minute,
		prefix: "lookup",
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists implements validator.Lookups.
func (c *Cached) Exists(ctx context.Context, entity, column string, value any) (bool, error) {
	if !slices.Contains(c.entities, entity) {
		return c.next.Exists(ctx, entity, column, value)
	}

	k := c.cacheKey(entity, column, value)
	hit, err := c.client.Exists(ctx, k).Result()
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "lookup cache read failed",
			logger.Component("lookups"), slog.String("key", k), logger.Error(err))
	case hit > 0:
		return true, nil
	}

	found, err := c.next.Exists(ctx, entity, column, value)
	if err != nil || !found {
		return found, err
	}

	if err := c.client.Set(ctx, k, "1", c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "lookup cache write failed",
			logger.Component("lookups"), slog.String("key", k), logger.Error(err))
	}
	return true, nil
}

// ExistsExcluding implements validator.Lookups without caching.
func (c *Cached) ExistsExcluding(ctx context.Context, entity, column string, value any, excludeID int64) (bool, error) {
	return c.next.ExistsExcluding(ctx, entity, column, value, excludeID)
}

func (c *Cached) cacheKey(entity, column string, value any) string {
	return strings.Join([]string{c.prefix, entity, column, key(value)}, ":")
}
