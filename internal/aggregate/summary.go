package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
	"unicode"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

const (
	// Ranking sizes carried over from the source analysis: ten ranked
	// shapes, medians for the top five, three shapes in the peak-hour
	// breakdown.
	topShapesCount     = 10
	medianShapesCount  = 5
	peakHourShapeCount = 3

	// Long-duration thresholds in seconds.
	over5MinSeconds  = 300
	over1HourSeconds = 3600

	notAvailable = "N/A"
)

// kv is one ranked bucket. Ordering is count descending, key ascending on
// ties, which keeps every ranking deterministic.
type kv struct {
	key   string
	count int
}

// Summary builds the statistics artifact. topN bounds the country and US
// state rankings; shape rankings use the fixed sizes above.
func (a *Accumulator) Summary(topN int) domain.Summary {
	shapeRank := rank(a.byShape, domain.ShapeUnknown)

	s := domain.Summary{
		TotalSightings: a.total,

		MedianDurationSecondsOverall: median(a.durations),
		MedianDurationNightSeconds:   median(a.nightDurations),
		MedianDurationDaySeconds:     median(a.dayDurations),
		ProportionOver5MinPercent:    proportion(a.over5Min, len(a.durations)),
		ProportionOver1HourPercent:   proportion(a.over1Hour, len(a.durations)),

		MostCommonShape:       rankedKey(shapeRank, 0),
		SecondMostCommonShape: rankedKey(shapeRank, 1),

		SightingsByYear:  yearCounts(a.byYear),
		SightingsByMonth: monthCounts(a.byMonth),
		SightingsByHour:  hourCounts(a.byHour),
		TopCountries:     toMap(top(rank(a.byCountry, domain.CountryUnknown), topN)),
		TopStatesUS:      toMap(top(rank(a.byStateUS, ""), topN)),
		TopShapes:        toMap(top(shapeRank, topShapesCount)),

		PeakMonth:                  peakMonthName(a.byMonth),
		PeakYearOfReports:          peakYear(a.byYear),
		MedianDurationsByTopShapes: a.medianDurationsByShape(top(shapeRank, medianShapesCount)),

		PeakHourReadable:           notAvailable,
		PeakHourDominantShape:      notAvailable,
		TopShapesInPeakHourSummary: notAvailable,
	}

	if hour, ok := a.peakHour(); ok {
		s.PeakHourNumeric = &hour
		s.PeakHourReadable = fmt.Sprintf("%d:00 - %d:00", hour, hour+1)
		s.PeakHourDominantShape, s.TopShapesInPeakHourSummary = a.peakHourShapes(hour)
	}

	return s
}

// rank orders a count map by count descending, key ascending on ties.
// The exclude key (sentinel for missing values) never ranks.
func rank(counts map[string]int, exclude string) []kv {
	ranked := make([]kv, 0, len(counts))
	for k, c := range counts {
		if k == exclude {
			continue
		}
		ranked = append(ranked, kv{key: k, count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].key < ranked[j].key
	})
	return ranked
}

func top(ranked []kv, n int) []kv {
	if n >= 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

func toMap(ranked []kv) map[string]int {
	m := make(map[string]int, len(ranked))
	for _, e := range ranked {
		m[e.key] = e.count
	}
	return m
}

func rankedKey(ranked []kv, i int) string {
	if i >= len(ranked) {
		return notAvailable
	}
	return ranked[i].key
}

// median returns the sample median rounded to two decimals, or nil for an
// empty sample set. Even-length samples take the mean of the two middles.
func median(samples []float64) *float64 {
	if len(samples) == 0 {
		return nil
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	var m float64
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		m = sorted[mid]
	}
	m = round2(m)
	return &m
}

// proportion returns 100*count/total rounded to two decimals, 0 when the
// denominator is empty. Always within [0, 100].
func proportion(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (a *Accumulator) medianDurationsByShape(topShapes []kv) map[string]*float64 {
	medians := make(map[string]*float64, len(topShapes))
	for _, e := range topShapes {
		medians[e.key] = median(a.durationsByShape[e.key])
	}
	return medians
}

// peakHour returns the hour with the most sightings; ties resolve to the
// lowest hour. ok is false when no sighting carried a parseable timestamp.
func (a *Accumulator) peakHour() (int, bool) {
	best, bestCount := 0, 0
	for h, c := range a.byHour {
		if c > bestCount {
			best, bestCount = h, c
		}
	}
	return best, bestCount > 0
}

// peakHourShapes ranks the non-unknown shapes reported during the peak hour
// and formats the top three with their share of that hour's ranked reports,
// e.g. "Light (45.2%), Triangle (20.1%), Circle (10.0%)".
func (a *Accumulator) peakHourShapes(hour int) (dominant, summary string) {
	ranked := rank(a.byHourShape[hour], domain.ShapeUnknown)
	if len(ranked) == 0 {
		return notAvailable, notAvailable
	}

	total := 0
	for _, e := range ranked {
		total += e.count
	}

	parts := make([]string, 0, peakHourShapeCount)
	for _, e := range top(ranked, peakHourShapeCount) {
		share := float64(e.count) / float64(total) * 100
		parts = append(parts, fmt.Sprintf("%s (%.1f%%)", capitalize(e.key), share))
	}

	summary = parts[0]
	for _, p := range parts[1:] {
		summary += ", " + p
	}
	return ranked[0].key, summary
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func yearCounts(byYear map[int]int) map[string]int {
	m := make(map[string]int, len(byYear))
	for y, c := range byYear {
		m[strconv.Itoa(y)] = c
	}
	return m
}

func monthCounts(byMonth map[int]int) map[string]int {
	m := make(map[string]int, len(byMonth))
	for mon, c := range byMonth {
		m[time.Month(mon).String()[:3]] = c
	}
	return m
}

func hourCounts(byHour [24]int) map[string]int {
	m := make(map[string]int)
	for h, c := range byHour {
		if c > 0 {
			m[strconv.Itoa(h)] = c
		}
	}
	return m
}

// peakMonthName returns the 3-letter name of the highest-count month; ties
// resolve to the earliest month.
func peakMonthName(byMonth map[int]int) string {
	best, bestCount := 0, 0
	for mon := 1; mon <= 12; mon++ {
		if c := byMonth[mon]; c > bestCount {
			best, bestCount = mon, c
		}
	}
	if bestCount == 0 {
		return notAvailable
	}
	return time.Month(best).String()[:3]
}

// peakYear returns the highest-count year as a string; ties resolve to the
// earliest year.
func peakYear(byYear map[int]int) string {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	if len(years) == 0 {
		return notAvailable
	}
	sort.Ints(years)

	best, bestCount := years[0], 0
	for _, y := range years {
		if c := byYear[y]; c > bestCount {
			best, bestCount = y, c
		}
	}
	return strconv.Itoa(best)
}
