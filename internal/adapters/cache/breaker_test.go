package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepad/internal/adapters/cache"
	"notepad/internal/config"
)

var errRedisDown = errors.New("dial tcp: connection refused")

type flakyCache struct {
	err   error
	calls int
}

func (f *flakyCache) Increment(context.Context, string, time.Duration) (int64, error) {
	f.calls++
	return 4, f.err
}

func (f *flakyCache) Delete(context.Context, string) error {
	f.calls++
	return f.err
}

func (f *flakyCache) Close() error { return nil }

func TestBreakerCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.BreakerConfig{ErrorThreshold: 2, Cooldown: 20 * time.Millisecond, SuccessThreshold: 1}

	t.Run("passes values through while closed", func(t *testing.T) {
		next := &flakyCache{}
		c := cache.NewBreakerCache(next, cache.NewCircuitBreaker("test", cfg))

		count, err := c.Increment(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)

		require.NoError(t, c.Delete(ctx, "k"))
		assert.Equal(t, 2, next.calls)
	})

	t.Run("opens after threshold and short-circuits", func(t *testing.T) {
		next := &flakyCache{err: errRedisDown}
		breaker := cache.NewCircuitBreaker("test", cfg)
		c := cache.NewBreakerCache(next, breaker)

		_, err := c.Increment(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, errRedisDown)
		_, err = c.Increment(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, errRedisDown)
		assert.Equal(t, cache.StateOpen, breaker.State())

		_, err = c.Increment(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, cache.ErrCircuitOpen)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("recovers through half-open after cooldown", func(t *testing.T) {
		next := &flakyCache{err: errRedisDown}
		breaker := cache.NewCircuitBreaker("test", cfg)
		c := cache.NewBreakerCache(next, breaker)

		_ = c.Delete(ctx, "k")
		_ = c.Delete(ctx, "k")
		require.Equal(t, cache.StateOpen, breaker.State())

		time.Sleep(2 * cfg.Cooldown)
		next.err = nil

		require.NoError(t, c.Delete(ctx, "k"))
		assert.Equal(t, cache.StateClosed, breaker.State())
	})

	t.Run("half-open failure reopens", func(t *testing.T) {
		next := &flakyCache{err: errRedisDown}
		breaker := cache.NewCircuitBreaker("test", cfg)
		c := cache.NewBreakerCache(next, breaker)

		_ = c.Delete(ctx, "k")
		_ = c.Delete(ctx, "k")
		time.Sleep(2 * cfg.Cooldown)

		assert.ErrorIs(t, c.Delete(ctx, "k"), errRedisDown)
		assert.Equal(t, cache.StateOpen, breaker.State())
		assert.ErrorIs(t, c.Delete(ctx, "k"), cache.ErrCircuitOpen)
	})

	t.Run("canceled context does not count as failure", func(t *testing.T) {
		next := &flakyCache{err: context.Canceled}
		breaker := cache.NewCircuitBreaker("test", cfg)
		c := cache.NewBreakerCache(next, breaker)

		for range 3 {
			_, _ = c.Increment(ctx, "k", time.Minute)
		}
		assert.Equal(t, cache.StateClosed, breaker.State())
	})
}
