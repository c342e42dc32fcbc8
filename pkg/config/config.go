// ABOUTME: Configuration management for the application with .env, YAML and environment support
// ABOUTME: Defines configuration structures for the server, detection backend, cache and logging

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"mediacheck/pkg/utils/parse"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `yaml:"server"`

	// Backend contains the detection service connection settings
	Backend BackendConfig `yaml:"backend"`

	// Cache contains cache configuration
	Cache CacheConfig `yaml:"cache"`

	// Log contains logging configuration
	Log LogConfig `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `yaml:"port"`

	// MaxUploadBytes caps multipart uploads
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// PreviewTTL is how long uploaded videos stay streamable for the preview element
	PreviewTTL time.Duration `yaml:"preview_ttl"`

	// ResultCacheTTL is how long successful news reports are reused
	ResultCacheTTL time.Duration `yaml:"result_cache_ttl"`

	// RateLimit is the sustained number of requests per second per client IP
	RateLimit float64 `yaml:"rate_limit"`

	// RateBurst is the token bucket size per client IP
	RateBurst int `yaml:"rate_burst"`

	// BatchConcurrency bounds concurrent upstream calls during batch analysis
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// BackendConfig holds the detection service settings
type BackendConfig struct {
	// URL is the base URL exposing /detect-news and /detect-deepfake
	URL string `yaml:"url"`

	// Timeout bounds every upstream request
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string `yaml:"type"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `yaml:"redis"`

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `yaml:"memory"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string `yaml:"address"`

	// Password is the Redis authentication password
	Password string `yaml:"password"`

	// DB is the Redis database number
	DB int `yaml:"db"`

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string `yaml:"key_prefix"`

	// JSON stores documents with RedisJSON commands; the server needs the RedisJSON module
	JSON bool `yaml:"json"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string `yaml:"path"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the cleanup interval for expired entries in seconds
	DefaultExpiration int `yaml:"default_expiration"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`

	// File enables rotated file output when set
	File string `yaml:"file"`
}

// DefaultMaxUploadBytes is the upload cap used when none is configured (50 MiB).
const DefaultMaxUploadBytes int64 = 50 << 20

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             "8000",
			MaxUploadBytes:   DefaultMaxUploadBytes,
			PreviewTTL:       15 * time.Minute,
			ResultCacheTTL:   time.Hour,
			RateLimit:        5,
			RateBurst:        10,
			BatchConcurrency: 4,
		},
		Backend: BackendConfig{
			URL:     "http://localhost:5000",
			Timeout: 60 * time.Second,
		},
		Cache: CacheConfig{
			Type: "memory",
			Redis: RedisConfig{
				Address:   "localhost:6379",
				KeyPrefix: "mediacheck:",
			},
			SQLite: SQLiteConfig{
				Path: "cache.db",
			},
			Memory: MemoryConfig{
				DefaultExpiration: 600,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads .env (if present), then the YAML file named by CONFIG_FILE (if set), then
// environment variables. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

// LoadFromEnv loads configuration from defaults and environment variables only
func LoadFromEnv() (*Config, error) {
	cfg := Default()
	cfg.applyEnv()
	return cfg, nil
}

// loadFile overlays values from a YAML file onto cfg
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvOrDefault("PORT", c.Server.Port)
	c.Server.MaxUploadBytes = parse.Int64OrDefault(os.Getenv("MAX_UPLOAD_BYTES"), c.Server.MaxUploadBytes)
	c.Server.PreviewTTL = parse.DurationOrDefault(os.Getenv("PREVIEW_TTL"), c.Server.PreviewTTL)
	c.Server.ResultCacheTTL = parse.DurationOrDefault(os.Getenv("RESULT_CACHE_TTL"), c.Server.ResultCacheTTL)
	c.Server.RateLimit = parse.FloatOrDefault(os.Getenv("RATE_LIMIT"), c.Server.RateLimit)
	c.Server.RateBurst = parse.IntOrDefault(os.Getenv("RATE_BURST"), c.Server.RateBurst)
	c.Server.BatchConcurrency = parse.IntOrDefault(os.Getenv("BATCH_CONCURRENCY"), c.Server.BatchConcurrency)

	c.Backend.URL = getEnvOrDefault("DETECTION_BACKEND_URL", c.Backend.URL)
	c.Backend.Timeout = parse.DurationOrDefault(os.Getenv("BACKEND_TIMEOUT"), c.Backend.Timeout)

	c.Cache.Type = getEnvOrDefault("CACHE_TYPE", c.Cache.Type)
	c.Cache.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", c.Cache.Redis.Address)
	c.Cache.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Cache.Redis.Password)
	c.Cache.Redis.DB = parse.IntOrDefault(os.Getenv("REDIS_DB"), c.Cache.Redis.DB)
	c.Cache.Redis.KeyPrefix = getEnvOrDefault("REDIS_KEY_PREFIX", c.Cache.Redis.KeyPrefix)
	c.Cache.Redis.JSON = parse.BoolOrDefault(os.Getenv("REDIS_JSON"), c.Cache.Redis.JSON)
	c.Cache.SQLite.Path = getEnvOrDefault("SQLITE_PATH", c.Cache.SQLite.Path)
	c.Cache.Memory.DefaultExpiration = parse.IntOrDefault(os.Getenv("MEMORY_CACHE_EXPIRATION"), c.Cache.Memory.DefaultExpiration)

	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}

	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		return errors.New("rate limit and burst must be positive")
	}

	if c.Server.BatchConcurrency < 1 {
		return errors.New("batch concurrency must be at least 1")
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("detection backend url must be an absolute http(s) url, got %q", c.Backend.URL)
	}

	if c.Backend.Timeout <= 0 {
		return errors.New("backend timeout must be positive")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	return nil
}
