// ABOUTME: HTTP stack setup for the page controller and the Huma JSON API
// ABOUTME: Builds the chi router with CORS, logging, sessions, feature flags and rate limiting

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"mediacheck/api/middleware"
	"mediacheck/core/interfaces"
	"mediacheck/pkg/featureflags"
)

const (
	// Title is the OpenAPI document title
	Title = "Mediacheck API"

	// Version is the OpenAPI document version
	Version = "1.0.0"
)

// APIConfig holds configuration for the HTTP stack
type APIConfig struct {
	Logger interfaces.Logger

	// Flags is injected into every request context; nil disables all optional features
	Flags featureflags.Manager

	// RateLimiter throttles clients when the rate_limit_enabled flag is on; may be nil
	RateLimiter *middleware.RateLimiter

	// SecureCookies marks the session cookie Secure
	SecureCookies bool
}

// NewAPI creates a Huma API on a bare chi router
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	return humachi.New(router, humaConfig()), router
}

// NewAPIWithMiddleware creates the API with the full middleware chain. The returned router
// also serves the page and fragment routes.
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests skip the rest
	router.Use(corsHandler())
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	router.Use(chimw.Compress(5, "text/html", "application/json", "application/problem+json"))
	router.Use(middleware.FeatureFlagMiddleware(cfg.Flags))
	router.Use(middleware.SessionMiddleware(cfg.SecureCookies))

	if cfg.RateLimiter != nil {
		router.Use(middleware.RateLimitMiddleware(cfg.RateLimiter))
	}

	return humachi.New(router, humaConfig()), router
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Fake news and deepfake analysis backed by an external detection service"
	return config
}

func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL", "X-Request-ID", "X-Page-ID"},
		ExposedHeaders:   []string{"HX-Trigger", "HX-Reswap", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}
