// ABOUTME: serve command running the analysis page and JSON API
// ABOUTME: Wires handlers onto the router and shuts down gracefully on SIGINT or SIGTERM

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mediacheck/api"
	"mediacheck/api/handlers"
	"mediacheck/api/middleware"
	"mediacheck/core/detection"
	"mediacheck/core/preview"
	"mediacheck/core/render"
	"mediacheck/core/services"
	"mediacheck/core/viewstate"
	"mediacheck/pkg/featureflags"
)

const (
	shutdownTimeout = 30 * time.Second
	viewStateTTL    = 24 * time.Hour
)

func newServeCmd() *cobra.Command {
	var secureCookies bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web controller",
		Long:  `Serve the analysis page, its htmx fragments and the JSON API.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(nil)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a, secureCookies)
		},
	}

	cmd.Flags().BoolVar(&secureCookies, "secure-cookies", false, "Mark the session cookie Secure (use behind HTTPS)")

	return cmd
}

func serve(ctx context.Context, a *app, secureCookies bool) error {
	cfg := a.cfg
	logger := a.logger

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Starting Mediacheck", map[string]interface{}{
		"port":       cfg.Server.Port,
		"backend":    cfg.Backend.URL,
		"cache_type": cfg.Cache.Type,
		"flags":      flags.GetAllFlags(),
	})

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	defer limiter.Stop()

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:        logger,
		Flags:         flags,
		RateLimiter:   limiter,
		SecureCookies: secureCookies,
	})

	batch := detection.NewBatchAnalyzer(a.news, cfg.Server.BatchConcurrency, logger)
	handlers.NewAnalysisHandler(a.news, batch, a.stats, a.cache, logger).RegisterRoutes(humaAPI)

	handlers.NewUIHandler(handlers.UIConfig{
		Renderer:       render.MustNew(),
		News:           a.news,
		Deepfake:       a.deepfake,
		Preview:        preview.NewService(a.deps, cfg.Server.PreviewTTL),
		LinkPreview:    services.NewLinkPreviewService(a.linkPreviewDeps()),
		Views:          viewstate.NewStore(a.cache, viewStateTTL),
		Tracker:        detection.NewTracker(),
		Stats:          a.stats,
		Logger:         logger,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		// Leaves room for the upload on top of the backend call
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("Server stopped", nil)
	return nil
}
