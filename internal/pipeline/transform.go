package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// SightingTransformer implements Transformer using the domain cleaning
// pipeline with optional country backfill via reverse geocoding.
type SightingTransformer struct {
	rules    domain.CleaningRules
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewTransformer creates a SightingTransformer. Pass a nil geocoder to
// disable country backfill.
func NewTransformer(rules domain.CleaningRules, geocoder domain.Geocoder, logger *slog.Logger) *SightingTransformer {
	return &SightingTransformer{
		rules:    rules,
		geocoder: geocoder,
		logger:   logger,
	}
}

func (t *SightingTransformer) Transform(ctx context.Context, rec domain.RawRecord) (domain.Sighting, error) {
	s, err := domain.ParseRecord(rec, t.rules)
	if err != nil {
		return domain.Sighting{}, err
	}

	s = domain.EnrichWithCountry(ctx, s, t.geocoder, t.logger)
	return s, nil
}
