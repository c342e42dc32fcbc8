// Package api provides the HTTP layer for Mediacheck.
// It serves two surfaces from one chi router: the analysis page with its htmx
// fragment routes, and a JSON API built on Huma with automatic OpenAPI documentation.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: router, middleware chain and Huma configuration
// - handlers/: page, fragment and JSON handlers
// - dto/: Data Transfer Objects for the JSON API
// - middleware/: request logging, sessions, feature flags and rate limiting
//
// # Page and fragments
//
// GET / renders the full page. Forms post to /ui/news/text, /ui/news/url and
// /ui/deepfake and receive an HTML fragment to swap into #newsResults or
// #deepfakeResults. Input problems are answered with status 422 and an
// HX-Trigger header carrying a blockingAlert event, which the page shows as a
// modal alert without touching the result area.
//
// # JSON API
//
// The OpenAPI document is served at /openapi.json and the interactive docs at /docs.
// Request bodies are validated from struct tags:
//
//	type AnalyzeRequest struct {
//	    Text   string `json:"text" minLength:"1"`
//	    Method string `json:"method,omitempty" enum:"ml,rule" default:"ml"`
//	}
//
// # Usage Example
//
//	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
//	    Logger:      logger,
//	    Flags:       featureflags.NewEnvManager("FEATURE_"),
//	    RateLimiter: middleware.NewRateLimiter(5, 10),
//	})
//
//	handlers.NewAnalysisHandler(news, batch, stats, cache, logger).RegisterRoutes(humaAPI)
//	handlers.NewUIHandler(uiConfig).RegisterRoutes(router)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// JSON errors use the RFC 7807 format:
//
//	{
//	    "status": 502,
//	    "title": "Bad Gateway",
//	    "detail": "Model not loaded"
//	}
//
// Fragment routes render error panels with status 200 so htmx swaps them in.
package api
