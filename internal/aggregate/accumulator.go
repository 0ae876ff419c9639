// Package aggregate accumulates cleaned sightings into the two output
// artifacts: the summary statistics record and the globe point cloud.
// One accumulator instance corresponds to one run; it is filled in a single
// pass and read out once at the end.
package aggregate

import (
	"sort"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// Accumulator collects the per-bucket counts and duration samples needed for
// the summary, plus the ordered geo sequence for the globe artifact.
// Not safe for concurrent use; the pipeline is single-threaded by design.
type Accumulator struct {
	total          int
	timeUnbucketed int // rows kept without a parseable timestamp

	byYear    map[int]int
	byMonth   map[int]int // 1–12
	byHour    [24]int
	byCountry map[string]int
	byStateUS map[string]int
	byShape   map[string]int

	durations        []float64
	nightDurations   []float64
	dayDurations     []float64
	durationsByShape map[string][]float64
	over5Min         int
	over1Hour        int

	byHourShape [24]map[string]int

	geo []domain.Sighting // input order preserved
}

// New creates an empty accumulator.
func New() *Accumulator {
	a := &Accumulator{
		byYear:           make(map[int]int),
		byMonth:          make(map[int]int),
		byCountry:        make(map[string]int),
		byStateUS:        make(map[string]int),
		byShape:          make(map[string]int),
		durationsByShape: make(map[string][]float64),
	}
	for h := range a.byHourShape {
		a.byHourShape[h] = make(map[string]int)
	}
	return a
}

// Add folds one cleaned sighting into every aggregate its valid fields allow.
func (a *Accumulator) Add(s domain.Sighting) {
	a.total++

	a.byShape[s.Shape]++
	a.byCountry[s.Country]++
	if s.Country == "us" && s.State != domain.StateUnknown {
		a.byStateUS[s.State]++
	}

	if s.HasTime {
		a.byYear[s.OccurredAt.Year()]++
		a.byMonth[int(s.OccurredAt.Month())]++
		hour := s.OccurredAt.Hour()
		a.byHour[hour]++
		a.byHourShape[hour][s.Shape]++
	} else {
		a.timeUnbucketed++
	}

	if s.HasDuration {
		a.durations = append(a.durations, s.DurationSeconds)
		if s.DurationSeconds > 300 {
			a.over5Min++
		}
		if s.DurationSeconds > 3600 {
			a.over1Hour++
		}
		if s.Shape != domain.ShapeUnknown {
			a.durationsByShape[s.Shape] = append(a.durationsByShape[s.Shape], s.DurationSeconds)
		}
		if s.HasTime {
			if s.Night() {
				a.nightDurations = append(a.nightDurations, s.DurationSeconds)
			} else {
				a.dayDurations = append(a.dayDurations, s.DurationSeconds)
			}
		}
	}

	if s.HasGeo {
		a.geo = append(a.geo, s)
	}
}

// Total returns the number of accumulated sightings.
func (a *Accumulator) Total() int { return a.total }

// GeoCount returns the number of sightings eligible for the globe artifact.
func (a *Accumulator) GeoCount() int { return len(a.geo) }

// GlobePoints derives the ordered point cloud. When more than maxPoints
// sightings carry valid coordinates, the sequence is downsampled with a
// deterministic stride so reruns stay byte-identical; maxPoints <= 0 means
// no cap. Cycle colors for shapes outside the fixed palette are assigned by
// sorted category name, which is stable for any input order.
func (a *Accumulator) GlobePoints(maxPoints int) []domain.GlobePoint {
	cycleIdx := a.cycleIndexes()

	selected := a.geo
	if maxPoints > 0 && len(a.geo) > maxPoints {
		step := (len(a.geo) + maxPoints - 1) / maxPoints
		selected = make([]domain.Sighting, 0, maxPoints)
		for i := 0; i < len(a.geo); i += step {
			selected = append(selected, a.geo[i])
		}
	}

	points := make([]domain.GlobePoint, len(selected))
	for i, s := range selected {
		points[i] = domain.NewGlobePoint(s, cycleIdx[s.Shape])
	}
	return points
}

// cycleIndexes assigns a deterministic palette-cycle index to every shape
// category in the geo sequence that lacks a fixed color.
func (a *Accumulator) cycleIndexes() map[string]int {
	seen := make(map[string]bool)
	for _, s := range a.geo {
		if !domain.HasFixedColor(s.Shape) {
			seen[s.Shape] = true
		}
	}

	shapes := make([]string, 0, len(seen))
	for shape := range seen {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)

	idx := make(map[string]int, len(shapes))
	for i, shape := range shapes {
		idx[shape] = i
	}
	return idx
}
