package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadiusForDuration(t *testing.T) {
	t.Run("no duration gets default", func(t *testing.T) {
		assert.Equal(t, DefaultPointRadius, RadiusForDuration(0, false))
	})

	t.Run("always within bounds", func(t *testing.T) {
		for _, d := range []float64{0, 0.5, 1, 60, 300, 3600, 86400, 604800, 1e9} {
			r := RadiusForDuration(d, true)
			assert.GreaterOrEqual(t, r, MinPointRadius, "duration %g", d)
			assert.LessOrEqual(t, r, MaxPointRadius, "duration %g", d)
		}
	})

	t.Run("monotonic in duration", func(t *testing.T) {
		prev := RadiusForDuration(1, true)
		for _, d := range []float64{10, 60, 600, 3600, 43200, 86400} {
			r := RadiusForDuration(d, true)
			assert.GreaterOrEqual(t, r, prev, "duration %g", d)
			prev = r
		}
	})

	t.Run("one second is the base", func(t *testing.T) {
		assert.InDelta(t, 0.03, RadiusForDuration(1, true), 1e-9)
	})

	t.Run("full day hits the max", func(t *testing.T) {
		assert.InDelta(t, MaxPointRadius, RadiusForDuration(86400, true), 1e-9)
	})

	t.Run("week-long report clamps to the day scale", func(t *testing.T) {
		assert.Equal(t, RadiusForDuration(86400, true), RadiusForDuration(604800, true))
	})
}

func TestColorForShape(t *testing.T) {
	t.Run("fixed palette", func(t *testing.T) {
		assert.Equal(t, "rgba(255, 221, 87, 0.75)", ColorForShape("light", 0))
		assert.True(t, HasFixedColor("light"))
	})

	t.Run("unknown sentinel has its own color", func(t *testing.T) {
		assert.Equal(t, "rgba(255, 255, 0, 0.7)", ColorForShape(ShapeUnknown, 0))
	})

	t.Run("unmapped shape cycles", func(t *testing.T) {
		assert.False(t, HasFixedColor("chevron"))
		c0 := ColorForShape("chevron", 0)
		c6 := ColorForShape("chevron", 6)
		assert.NotEmpty(t, c0)
		assert.Equal(t, c0, c6)
		assert.NotEqual(t, c0, ColorForShape("chevron", 1))
	})
}

func TestNewGlobePoint(t *testing.T) {
	s := Sighting{
		Lat: 33.39, Lng: -104.52, HasGeo: true,
		Shape:           "disk",
		DurationSeconds: 300, HasDuration: true,
	}
	p := NewGlobePoint(s, 0)

	assert.Equal(t, 33.39, p.Lat)
	assert.Equal(t, -104.52, p.Lng)
	assert.Equal(t, GlobePointAltitude, p.Alt)
	assert.Equal(t, RadiusForDuration(300, true), p.Radius)
	assert.Equal(t, ColorForShape("disk", 0), p.Color)
}
