package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyRecord marks a CSV row whose mapped fields are all blank. Such rows
// are skipped entirely and counted, never aggregated.
var ErrEmptyRecord = errors.New("empty record")

// CleaningRules holds the tunable bounds of the per-row cleaning pipeline.
type CleaningRules struct {
	// MaxDurationSeconds is the upper bound above which a duration is treated
	// as an outlier and excluded from duration statistics.
	MaxDurationSeconds float64
}

// DefaultCleaningRules caps durations at one week, matching the sanity bound
// of the NUFORC export.
func DefaultCleaningRules() CleaningRules {
	return CleaningRules{MaxDurationSeconds: 604800}
}

// timestampLayouts are tried in order. The NUFORC export uses "M/D/YYYY HH:MM";
// the ISO variants cover re-exports of the same data.
var timestampLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"1/2/2006",
}

// ParseRecord cleans one raw row into a Sighting. Individual field failures
// clear the corresponding Has* flag instead of failing the row; only a fully
// blank row returns ErrEmptyRecord.
func ParseRecord(rec RawRecord, rules CleaningRules) (Sighting, error) {
	if isBlank(rec) {
		return Sighting{}, ErrEmptyRecord
	}

	s := Sighting{
		City:    strings.TrimSpace(rec.City),
		State:   NormalizeState(rec.State),
		Country: NormalizeCountry(rec.Country),
		Shape:   NormalizeShape(rec.Shape),
	}

	if t, ok := ParseTimestamp(rec.Timestamp); ok {
		s.OccurredAt = t
		s.HasTime = true
	}

	if d, ok := parseDuration(rec.DurationSeconds, rules); ok {
		s.DurationSeconds = d
		s.HasDuration = true
	}

	if lat, lng, ok := parseCoordinates(rec.Latitude, rec.Longitude); ok {
		s.Lat = lat
		s.Lng = lng
		s.HasGeo = true
	}

	return s, nil
}

func isBlank(rec RawRecord) bool {
	fields := []string{
		rec.Timestamp, rec.City, rec.State, rec.Country,
		rec.Shape, rec.DurationSeconds, rec.Latitude, rec.Longitude,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ParseTimestamp parses a NUFORC local date/time string. The "24:00" midnight
// encoding is normalized to 00:00 of the following day rather than rejected.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	addDay := false
	if i := strings.Index(value, " 24:"); i >= 0 {
		value = value[:i] + " 00:" + value[i+len(" 24:"):]
		addDay = true
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if addDay {
			t = t.AddDate(0, 0, 1)
		}
		return t, true
	}
	return time.Time{}, false
}

func parseDuration(value string, rules CleaningRules) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(value, 64)
	if err != nil || d < 0 || d > rules.MaxDurationSeconds {
		return 0, false
	}
	return d, true
}

func parseCoordinates(latStr, lngStr string) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

// shapeSynonyms folds spelling variants and placeholder values into the
// canonical category set. Unmapped non-empty descriptors pass through as
// their own category.
var shapeSynonyms = map[string]string{
	// Placeholders for "no usable shape".
	"other":       ShapeUnknown,
	"unspecified": ShapeUnknown,
	"various":     ShapeUnknown,
	"na":          ShapeUnknown,
	"n/a":         ShapeUnknown,
	"unk":         ShapeUnknown,

	// Spelling and form variants.
	"disc":         "disk",
	"triangular":   "triangle",
	"circular":     "circle",
	"round":        "circle",
	"lights":       "light",
	"fire ball":    "fireball",
	"changed":      "changing",
	"cigar shaped": "cigar",
	"egg shaped":   "egg",
}

// NormalizeShape lowercases, trims, and canonicalizes a free-text shape
// descriptor. Empty or placeholder values map to ShapeUnknown.
func NormalizeShape(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ShapeUnknown
	}
	if canonical, ok := shapeSynonyms[v]; ok {
		return canonical
	}
	return v
}

// NormalizeCountry lowercases a country code and folds "gb" into "uk", the
// code the rest of the dataset uses for Great Britain.
func NormalizeCountry(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return CountryUnknown
	case "gb":
		return "uk"
	}
	return v
}

// NormalizeState uppercases a state/province code.
func NormalizeState(value string) string {
	v := strings.ToUpper(strings.TrimSpace(value))
	if v == "" {
		return StateUnknown
	}
	return v
}
