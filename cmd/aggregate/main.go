// Command aggregate runs one batch aggregation: it reads the raw sightings
// CSV, cleans and aggregates it, and writes the globe and summary artifacts.
// Exit code 0 on success, non-zero on unreadable or empty input.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/artifact"
	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/csvfile"
	kafkaadapter "github.com/couchcryptid/ufo-globe-etl/internal/adapter/kafka"
	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/ufo-globe-etl/internal/config"
	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
	"github.com/couchcryptid/ufo-globe-etl/internal/observability"
	"github.com/couchcryptid/ufo-globe-etl/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Country backfill is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox country backfill enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox country backfill disabled")
	}

	extractor, err := csvfile.NewExtractor(cfg.InputCSV, logger)
	if err != nil {
		logger.Error("failed to open input", "path", cfg.InputCSV, "error", err)
		os.Exit(1)
	}
	defer extractor.Close()

	var sink pipeline.SightingSink
	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, clockwork.NewRealClock(), logger)
		defer writer.Close()
		sink = writer
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
	}

	transformer := pipeline.NewTransformer(
		domain.CleaningRules{MaxDurationSeconds: cfg.MaxDurationSeconds},
		geocoder,
		logger,
	)
	writer := artifact.NewWriter(cfg.OutputDir)

	p := pipeline.New(extractor, transformer, writer, sink, logger, metrics, pipeline.Options{
		TopN:           cfg.TopN,
		MaxGlobePoints: cfg.MaxGlobePoints,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("aggregation starting", "input", cfg.InputCSV, "output", cfg.OutputDir)
	if _, err := p.Run(ctx); err != nil {
		logger.Error("aggregation failed", "error", err)
		os.Exit(1)
	}
}
