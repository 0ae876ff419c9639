package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Sentinel categories for missing or unusable values. Rows carrying them
// still count toward totals but are excluded from the respective rankings.
const (
	ShapeUnknown   = "unknown"
	CountryUnknown = "unknown"
	StateUnknown   = "UNKNOWN"
)

// RawRecord is one CSV row with all fields still in string form.
// Column-to-field mapping happens in the CSV adapter; empty strings mean the
// column was absent or blank.
type RawRecord struct {
	Timestamp       string
	City            string
	State           string
	Country         string
	Shape           string
	DurationSeconds string
	Comments        string
	Latitude        string
	Longitude       string

	// Line is the 1-based CSV line number, carried for log context.
	Line int
}

// Sighting is the cleaned representation of one report. The Has* flags track
// which optional fields survived validation: a sighting without HasGeo stays
// out of the globe output, one without HasTime stays out of time-bucketed
// aggregates, and one without HasDuration stays out of duration statistics.
type Sighting struct {
	OccurredAt time.Time `json:"occurred_at,omitzero"`
	HasTime    bool      `json:"has_time"`

	City    string `json:"city,omitempty"`
	State   string `json:"state"`
	Country string `json:"country"`
	Shape   string `json:"shape"`

	DurationSeconds float64 `json:"duration_seconds"`
	HasDuration     bool    `json:"has_duration"`

	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	HasGeo bool    `json:"has_geo"`
}

// Key produces a deterministic identifier from the sighting's descriptive
// fields. Reprocessing the same input yields the same key, which lets
// downstream consumers of the sink deduplicate on replay.
func (s Sighting) Key() string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%s|%s",
		s.OccurredAt.Format(time.RFC3339), s.Lat, s.Lng, s.Shape, s.City)
	hash := sha256.Sum256([]byte(input))
	return "sighting-" + hex.EncodeToString(hash[:8])
}

// Night reports whether the sighting happened in the night bucket
// (18:00–05:59 local). Only meaningful when HasTime is set.
func (s Sighting) Night() bool {
	h := s.OccurredAt.Hour()
	return h >= 18 || h <= 5
}

// GlobePoint is one element of the point-cloud artifact consumed by the
// globe renderer. Serialized field names are part of the file contract.
type GlobePoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Alt    float64 `json:"alt"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// Summary is the flat statistics artifact consumed by the charts page.
// Every nullable field is pointer-typed so "no valid samples" serializes as
// JSON null and the presentation layer can default it per key.
type Summary struct {
	TotalSightings int `json:"total_sightings"`

	MedianDurationSecondsOverall *float64 `json:"median_duration_seconds_overall"`
	MedianDurationNightSeconds   *float64 `json:"median_duration_night_seconds"`
	MedianDurationDaySeconds     *float64 `json:"median_duration_day_seconds"`
	ProportionOver5MinPercent    float64  `json:"proportion_over_5_min_percent"`
	ProportionOver1HourPercent   float64  `json:"proportion_over_1_hour_percent"`

	PeakMonth        string `json:"peak_month"`
	PeakHourReadable string `json:"peak_hour_readable"`
	PeakHourNumeric  *int   `json:"peak_hour_numeric"`
	PeakYearOfReports string `json:"peak_year_of_reports"`

	MostCommonShape       string `json:"most_common_shape"`
	SecondMostCommonShape string `json:"second_most_common_shape"`

	MedianDurationsByTopShapes map[string]*float64 `json:"median_durations_by_top_shapes"`
	PeakHourDominantShape      string              `json:"peak_hour_dominant_shape"`
	TopShapesInPeakHourSummary string              `json:"top_shapes_in_peak_hour_summary"`

	SightingsByYear  map[string]int `json:"sightings_by_year"`
	SightingsByMonth map[string]int `json:"sightings_by_month"`
	SightingsByHour  map[string]int `json:"sightings_by_hour"`
	TopCountries     map[string]int `json:"top_countries"`
	TopStatesUS      map[string]int `json:"top_states_us"`
	TopShapes        map[string]int `json:"top_shapes"`
}
