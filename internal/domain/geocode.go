package domain

import (
	"context"
	"log/slog"
)

// EnrichWithCountry backfills a missing country code via reverse geocoding.
// If geocoder is nil, the sighting has no coordinates, or the country is
// already known, the sighting is returned unchanged. Geocoding failures
// degrade gracefully: the sighting keeps its unknown country.
func EnrichWithCountry(ctx context.Context, s Sighting, geocoder Geocoder, logger *slog.Logger) Sighting {
	if geocoder == nil || !s.HasGeo || s.Country != CountryUnknown {
		return s
	}

	result, err := geocoder.ReverseGeocode(ctx, s.Lat, s.Lng)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", s.Lat,
			"lng", s.Lng,
			"error", err,
		)
		return s
	}
	if result.CountryCode == "" {
		return s
	}

	s.Country = NormalizeCountry(result.CountryCode)
	return s
}
