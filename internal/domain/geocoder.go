package domain

import "context"

// GeocodingResult contains place data returned by a geocoding provider.
type GeocodingResult struct {
	CountryCode string  // ISO 3166-1 alpha-2, lowercase
	PlaceName   string
	Confidence  float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to place details. Used to backfill missing
// country codes; sightings without coordinates are never geocoded.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodingResult, error)
}
