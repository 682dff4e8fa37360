package ratelimiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonta/simonta-api/pkg/ratelimiter"
)

func newRedisStore(t *testing.T, c *clock) (*ratelimiter.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimiter.NewRedisStore(client, "test").WithNow(c.Now), mr
}

func TestRedisStore_ExhaustAndRefill(t *testing.T) {
	t.Parallel()

	c := newClock()
	store, mr := newRedisStore(t, c)
	l, err := ratelimiter.New(store, testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	for want := 2; want >= 0; want-- {
		res, err := l.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, res.Remaining)
	}
	assert.True(t, mr.Exists("test:login:10.0.0.1"))
	assert.Positive(t, mr.TTL("test:login:10.0.0.1"))

	res, err := l.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, c.Now().Add(time.Minute).UnixMilli(), res.ResetAt.UnixMilli())

	c.Advance(90 * time.Second)
	res, err = l.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, c.Now().Add(30*time.Second).UnixMilli(), res.ResetAt.UnixMilli())
}

func TestRedisStore_RejectedTakesNothing(t *testing.T) {
	t.Parallel()

	store, _ := newRedisStore(t, newClock())
	l, err := ratelimiter.New(store, testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	res, err := l.AllowN(ctx, "k", 5)
	require.NoError(t, err)
	assert.False(t, res.Allowed())

	res, err = l.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

func TestRedisStore_Reset(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, newClock())
	l, err := ratelimiter.New(store, testConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.AllowN(ctx, "k", 3)
	require.NoError(t, err)
	require.NoError(t, l.Reset(ctx, "k"))
	assert.False(t, mr.Exists("test:k"))

	res, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)
}

func TestRedisStore_Unavailable(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t, newClock())
	l, err := ratelimiter.New(store, testConfig())
	require.NoError(t, err)
	mr.Close()

	_, err = l.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
	assert.ErrorIs(t, l.Reset(context.Background(), "k"), ratelimiter.ErrStoreUnavailable)
}
