// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by every Cache implementation when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the interface for cache operations.
// Implementations can be Redis, SQLite, in-memory, or any other caching solution.
//
// Example usage:
//
//	// Keep a video upload around so the preview element can stream it
//	err := cache.Set(ctx, "media:"+id, blob, 15*time.Minute)
//
//	data, err := cache.Get(ctx, "media:"+id)
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// expired or never stored
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// DocumentCache is implemented by caches that can store structured values directly.
// Callers holding a Cache may check for it and fall back to encoding the value themselves.
type DocumentCache interface {
	// SetDocument stores value under key. A zero ttl never expires.
	SetDocument(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// GetDocument decodes the value stored under key into dest.
	// Returns ErrCacheMiss if the key doesn't exist or has expired.
	GetDocument(ctx context.Context, key string, dest interface{}) error
}
