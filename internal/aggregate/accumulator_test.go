package aggregate

import (
	"testing"
	"time"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sightingAt(year int, hour int, shape string) domain.Sighting {
	return domain.Sighting{
		OccurredAt: time.Date(year, 6, 15, hour, 0, 0, 0, time.UTC),
		HasTime:    true,
		Shape:      shape,
		Country:    "us",
		State:      "WA",
	}
}

func geoSighting(lat, lng float64, shape string) domain.Sighting {
	return domain.Sighting{
		Lat: lat, Lng: lng, HasGeo: true,
		Shape:   shape,
		Country: "us",
		State:   "WA",
	}
}

func TestAccumulatorAdd(t *testing.T) {
	t.Run("counts every kept row", func(t *testing.T) {
		a := New()
		a.Add(sightingAt(2004, 21, "light"))
		a.Add(domain.Sighting{Shape: domain.ShapeUnknown, Country: domain.CountryUnknown, State: domain.StateUnknown})

		assert.Equal(t, 2, a.Total())
	})

	t.Run("us state bucket needs country and state", func(t *testing.T) {
		a := New()
		a.Add(domain.Sighting{Country: "us", State: "TX", Shape: "light"})
		a.Add(domain.Sighting{Country: "ca", State: "ON", Shape: "light"})
		a.Add(domain.Sighting{Country: "us", State: domain.StateUnknown, Shape: "light"})

		s := a.Summary(5)
		assert.Equal(t, map[string]int{"TX": 1}, s.TopStatesUS)
	})

	t.Run("rows without timestamps stay out of time buckets", func(t *testing.T) {
		a := New()
		a.Add(sightingAt(2004, 21, "light"))
		a.Add(domain.Sighting{Shape: "light", Country: "us", State: "WA"})

		s := a.Summary(5)
		assert.Equal(t, 2, s.TotalSightings)
		assert.Equal(t, map[string]int{"2004": 1}, s.SightingsByYear)
	})

	t.Run("night and day duration pools split at the bucket boundary", func(t *testing.T) {
		a := New()
		night := sightingAt(2004, 23, "light")
		night.DurationSeconds, night.HasDuration = 100, true
		day := sightingAt(2004, 12, "light")
		day.DurationSeconds, day.HasDuration = 500, true
		a.Add(night)
		a.Add(day)

		s := a.Summary(5)
		require.NotNil(t, s.MedianDurationNightSeconds)
		require.NotNil(t, s.MedianDurationDaySeconds)
		assert.Equal(t, 100.0, *s.MedianDurationNightSeconds)
		assert.Equal(t, 500.0, *s.MedianDurationDaySeconds)
	})

	t.Run("unknown shape excluded from per-shape durations", func(t *testing.T) {
		a := New()
		s := domain.Sighting{Shape: domain.ShapeUnknown, Country: "us", State: "WA"}
		s.DurationSeconds, s.HasDuration = 60, true
		a.Add(s)

		summary := a.Summary(5)
		assert.NotContains(t, summary.MedianDurationsByTopShapes, domain.ShapeUnknown)
	})
}

func TestGlobePoints(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		a := New()
		a.Add(geoSighting(10, 20, "light"))
		a.Add(sightingAt(2004, 21, "light")) // no geo, not emitted
		a.Add(geoSighting(30, 40, "circle"))

		points := a.GlobePoints(0)
		require.Len(t, points, 2)
		assert.Equal(t, 10.0, points[0].Lat)
		assert.Equal(t, 30.0, points[1].Lat)
	})

	t.Run("caps with a deterministic stride", func(t *testing.T) {
		a := New()
		for i := 0; i < 100; i++ {
			a.Add(geoSighting(float64(i%90), float64(i), "light"))
		}

		first := a.GlobePoints(10)
		second := a.GlobePoints(10)
		assert.LessOrEqual(t, len(first), 10)
		assert.Equal(t, first, second)
	})

	t.Run("no cap when maxPoints is zero", func(t *testing.T) {
		a := New()
		for i := 0; i < 50; i++ {
			a.Add(geoSighting(1, 1, "light"))
		}
		assert.Len(t, a.GlobePoints(0), 50)
	})

	t.Run("cycle colors stable across input order", func(t *testing.T) {
		forward := New()
		forward.Add(geoSighting(1, 1, "chevron"))
		forward.Add(geoSighting(2, 2, "doughnut"))

		reversed := New()
		reversed.Add(geoSighting(2, 2, "doughnut"))
		reversed.Add(geoSighting(1, 1, "chevron"))

		fp := forward.GlobePoints(0)
		rp := reversed.GlobePoints(0)
		require.Len(t, fp, 2)
		require.Len(t, rp, 2)
		assert.Equal(t, fp[0].Color, rp[1].Color)
		assert.Equal(t, fp[1].Color, rp[0].Color)
	})

	t.Run("empty accumulator yields empty slice", func(t *testing.T) {
		assert.Empty(t, New().GlobePoints(100))
	})
}
