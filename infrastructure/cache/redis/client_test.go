package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediacheck/core/interfaces"
	"mediacheck/pkg/config"
)

// These are integration tests that require a Redis instance.

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}

	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	cache, err := NewRedisCache(config.RedisConfig{
		Address:   addr,
		KeyPrefix: "mediacheck-test:" + uuid.NewString() + ":",
	})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestNewRedisCache_EmptyAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{})
	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "view:s1", []byte(`{"active_tab":"url"}`), time.Minute))

	got, err := cache.Get(ctx, "view:s1")
	require.NoError(t, err)
	assert.Equal(t, `{"active_tab":"url"}`, string(got))

	require.NoError(t, cache.Delete(ctx, "view:s1"))
	_, err = cache.Get(ctx, "view:s1")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_Miss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_Expiration(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), 100*time.Millisecond))
	time.Sleep(250 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.ErrorIs(t, err, interfaces.ErrCacheMiss)
}

func TestRedisCache_Ping(t *testing.T) {
	cache := newTestCache(t)
	assert.NoError(t, cache.Ping(context.Background()))
}

func TestRedisCache_Documents(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	type doc struct {
		ActiveTab string `json:"active_tab"`
	}

	require.NoError(t, cache.SetDocument(ctx, "view:s2", doc{ActiveTab: "media"}, time.Minute))

	var got doc
	require.NoError(t, cache.GetDocument(ctx, "view:s2", &got))
	assert.Equal(t, "media", got.ActiveTab)

	assert.ErrorIs(t, cache.GetDocument(ctx, "view:absent", &got), interfaces.ErrCacheMiss)
}

func TestRedisCache_JSONDocuments(t *testing.T) {
	if os.Getenv("REDIS_JSON_TEST") != "1" {
		t.Skip("Skipping RedisJSON tests - set REDIS_JSON_TEST=1 against a server with the RedisJSON module")
	}
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	cache, err := NewRedisCache(config.RedisConfig{
		Address:   addr,
		KeyPrefix: "mediacheck-test:" + uuid.NewString() + ":",
		JSON:      true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	ctx := context.Background()

	require.NoError(t, cache.SetDocument(ctx, "report", map[string]interface{}{"prediction": "Fake"}, time.Minute))

	var got map[string]interface{}
	require.NoError(t, cache.GetDocument(ctx, "report", &got))
	assert.Equal(t, "Fake", got["prediction"])

	ttl, err := cache.client.TTL(ctx, cache.prefix+"report").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.ErrorIs(t, cache.GetDocument(ctx, "absent", &got), interfaces.ErrCacheMiss)
}

func TestNewRedisCache_JSONHandlerOnlyWhenEnabled(t *testing.T) {
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}

	plain, err := NewRedisCache(config.RedisConfig{Address: addr})
	require.NoError(t, err)
	defer plain.Close()
	assert.Nil(t, plain.handler)

	withJSON, err := NewRedisCache(config.RedisConfig{Address: addr, JSON: true})
	require.NoError(t, err)
	defer withJSON.Close()
	assert.NotNil(t, withJSON.handler)
}
