// Command serve runs the HTTP server for the globe UI. It serves the static
// page, the two data artifacts produced by the aggregator, and the health,
// readiness, and metrics endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/artifact"
	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/web"
	"github.com/couchcryptid/ufo-globe-etl/internal/config"
	"github.com/couchcryptid/ufo-globe-etl/internal/observability"
)

// artifactChecker reports ready once both artifact files exist. Before the
// first aggregation run the service answers 503 so load balancers keep
// traffic away from an empty page.
type artifactChecker struct {
	dir string
}

func (c artifactChecker) CheckReadiness(_ context.Context) error {
	for _, name := range []string{artifact.GlobeFileName, artifact.SummaryFileName} {
		if _, err := os.Stat(filepath.Join(c.dir, name)); err != nil {
			return fmt.Errorf("artifact %s not available: %w", name, err)
		}
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	server, err := web.NewServer(cfg.HTTPAddr, cfg.OutputDir, artifactChecker{dir: cfg.OutputDir}, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
