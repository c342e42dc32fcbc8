// Package core contains the business logic for Mediacheck.
// It is framework-agnostic and can be used independently of the HTTP layer,
// as the command line client does.
//
// The core package is organized into several sub-packages:
//
// - domain: requests, reports, the Outcome variants, previews and view state
// - detection: submitters for the news and deepfake endpoints, batch analysis, usage stats and request tracking
// - preview: file picker previews
// - render: HTML templates for the page, results and fragments
// - services: link preview metadata extraction
// - viewstate: per-session tab selection
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger) and services
//
// # Design Principles
//
// All external dependencies are injected via interfaces.Dependencies. Domain
// models carry no persistence or transport concerns.
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	news := detection.NewNewsService(deps, detection.Options{
//	    BackendURL: "http://localhost:5000",
//	})
//
//	outcome, err := news.SubmitText(ctx, "Article text", "ml")
//	if err != nil {
//	    // Empty input
//	}
//	switch o := outcome.(type) {
//	case *domain.NewsReport:
//	    fmt.Println(o.Prediction, o.Confidence)
//	case *domain.Failure:
//	    fmt.Println(o.Message)
//	}
package core
