// ABOUTME: Shared wiring for the serve and analysis commands
// ABOUTME: Builds the logger, cache and detection services from configuration

package main

import (
	"io"
	"time"

	"mediacheck/core/detection"
	"mediacheck/core/interfaces"
	"mediacheck/infrastructure/cache/memory"
	"mediacheck/infrastructure/cache/redis"
	"mediacheck/infrastructure/cache/sqlite"
	stdhttp "mediacheck/infrastructure/http/standard"
	"mediacheck/infrastructure/logger/structured"
	"mediacheck/pkg/config"
)

const linkPreviewFetchTimeout = 10 * time.Second

// app holds the components shared by every command
type app struct {
	cfg    *config.Config
	logger interfaces.Logger
	cache  interfaces.Cache
	deps   interfaces.Dependencies
	stats  *detection.Stats

	news     *detection.NewsService
	deepfake *detection.DeepfakeService

	closers []io.Closer
}

// loadApp reads configuration and builds the shared components. logOutput overrides the
// configured log destination when non-nil.
func loadApp(logOutput io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Output: logOutput,
	})

	a := &app{
		cfg:    cfg,
		logger: logger,
		stats:  &detection.Stats{},
	}
	a.cache = a.newCache()

	a.deps = interfaces.Dependencies{
		Cache:      a.cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Backend.Timeout, logger),
		Logger:     logger,
	}

	opts := detection.Options{
		BackendURL:     cfg.Backend.URL,
		ResultCacheTTL: cfg.Server.ResultCacheTTL,
		Stats:          a.stats,
	}
	a.news = detection.NewNewsService(a.deps, opts)
	a.deepfake = detection.NewDeepfakeService(a.deps, opts)

	return a, nil
}

// linkPreviewDeps returns dependencies whose client only dials public addresses, since
// link preview URLs come straight from the form.
func (a *app) linkPreviewDeps() interfaces.Dependencies {
	deps := a.deps
	deps.HTTPClient = stdhttp.NewPublicHTTPClient(linkPreviewFetchTimeout, a.logger)
	return deps
}

// newCache creates the configured cache backend, falling back to memory when it is unavailable
func (a *app) newCache() interfaces.Cache {
	cfg := a.cfg.Cache

	switch cfg.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Redis)
		if err == nil {
			a.closers = append(a.closers, c)
			a.logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
			return c
		}
		a.logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})

	case "sqlite":
		c, err := sqlite.NewSQLiteCache(cfg.SQLite.Path)
		if err == nil {
			a.closers = append(a.closers, c)
			a.logger.Info("Using SQLite cache", map[string]interface{}{
				"path": cfg.SQLite.Path,
			})
			return c
		}
		a.logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
			"error": err.Error(),
		})
	}

	a.logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(time.Duration(cfg.Memory.DefaultExpiration) * time.Second)
}

// Close releases cache connections
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("Failed to close resource", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
