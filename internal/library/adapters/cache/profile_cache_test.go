package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/library/adapters/cache"
	"libraryhub/internal/library/domain/entities"
	"libraryhub/internal/library/ports/services"
	"libraryhub/internal/library/resilience"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})

	t.Cleanup(func() {
		_ = client.Close()
		s.Close()
	})
	return s, client
}

func TestProfileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	c := cache.NewProfileCache(client, time.Minute, resilience.DefaultCircuitBreakerConfig())

	_, err := c.Get(ctx, "u1")
	assert.ErrorIs(t, err, services.ErrCacheMiss)

	user := &entities.User{
		ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "secret",
		CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.Set(ctx, user))

	raw, err := s.Get("profile:u1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret")
	assert.Equal(t, time.Minute, s.TTL("profile:u1"))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Empty(t, got.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, c.Delete(ctx, "u1"))
	assert.False(t, s.Exists("profile:u1"))
}

func TestProfileCacheExpires(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	c := cache.NewProfileCache(client, time.Minute, resilience.DefaultCircuitBreakerConfig())

	require.NoError(t, c.Set(ctx, &entities.User{ID: "u1", Name: "Ana"}))
	s.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "u1")
	assert.ErrorIs(t, err, services.ErrCacheMiss)
}

func TestProfileCacheCorruptEntryIsMiss(t *testing.T) {
	s, client := mockRedisServer(t)
	require.NoError(t, s.Set("profile:u1", "{not json"))

	c := cache.NewProfileCache(client, time.Minute, resilience.DefaultCircuitBreakerConfig())
	_, err := c.Get(context.Background(), "u1")
	assert.ErrorIs(t, err, services.ErrCacheMiss)
}

func TestProfileCacheBreakerOpensWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	s, client := mockRedisServer(t)
	c := cache.NewProfileCache(client, time.Minute, resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Hour,
		SuccessThreshold: 1,
	})
	s.Close()

	for range 2 {
		_, err := c.Get(ctx, "u1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrCacheMiss)
	}

	_, err := c.Get(ctx, "u1")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}
