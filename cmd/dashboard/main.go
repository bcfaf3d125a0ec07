// Command dashboard serves the creek water-quality dashboard: it loads the
// four JSON data resources once at startup (falling back to a seeded
// synthetic dataset when configured), then serves the page, its view-model
// APIs, and operational endpoints until shut down.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/creek-quality-dashboard/internal/adapter/source"
	"github.com/couchcryptid/creek-quality-dashboard/internal/adapter/web"
	"github.com/couchcryptid/creek-quality-dashboard/internal/config"
	"github.com/couchcryptid/creek-quality-dashboard/internal/dashboard"
	"github.com/couchcryptid/creek-quality-dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := source.NewClient(cfg.DataBaseURL, cfg.FetchTimeout, metrics, logger)
	loader := source.NewLoader(client, source.Fallback{
		Enabled: cfg.FallbackEnabled,
		Seed:    cfg.FallbackSeed,
	}, metrics, logger)

	app := dashboard.New(loader, cfg.DefaultAnalyte, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial load fails as a whole: no partial UI, no retry.
	if err := app.Init(ctx); err != nil {
		logger.Error("initial data load failed", "error", err)
		os.Exit(1)
	}

	srv := web.NewServer(cfg.HTTPAddr, app, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
