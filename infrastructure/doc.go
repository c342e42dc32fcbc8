// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by patrickmn/go-cache
// - cache/redis: Redis cache backed by go-redis
// - cache/sqlite: SQLite cache for single-node deployments that survive restarts
// - http/standard: Standard library HTTP client with GET retries and request logging
// - logger/structured: JSON logger backed by logrus with optional file rotation
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "key", []byte("value"), 1*time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address:   "localhost:6379",
//	    KeyPrefix: "mediacheck:",
//	})
//
// A miss is reported as interfaces.ErrCacheMiss by every backend.
//
// # HTTP Client
//
// GET requests retry transient failures with exponential backoff. POST requests
// to the detection backend are sent once, since analyses are not idempotent on
// the backend's side:
//
//	client := standard.NewStandardHTTPClient(60*time.Second, logger)
//	resp, err := client.Post(ctx, backendURL+"/detect-news", contentType, body)
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
// The logger supports structured logging with fields:
//
//	logger := structured.New(structured.Options{Level: "debug"})
//	logger.Info("Analysis completed", map[string]interface{}{
//	    "prediction": "Fake",
//	    "method":     "ml",
//	})
package infrastructure
