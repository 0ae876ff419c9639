package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	rules := DefaultCleaningRules()

	t.Run("fully valid row", func(t *testing.T) {
		rec := RawRecord{
			Timestamp:       "10/10/1949 20:30",
			City:            "san marcos",
			State:           "tx",
			Country:         "us",
			Shape:           "cylinder",
			DurationSeconds: "2700",
			Latitude:        "29.8830556",
			Longitude:       "-97.9411111",
		}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.True(t, s.HasTime)
		assert.True(t, s.HasDuration)
		assert.True(t, s.HasGeo)
		assert.Equal(t, time.Date(1949, 10, 10, 20, 30, 0, 0, time.UTC), s.OccurredAt)
		assert.Equal(t, "san marcos", s.City)
		assert.Equal(t, "TX", s.State)
		assert.Equal(t, "us", s.Country)
		assert.Equal(t, "cylinder", s.Shape)
		assert.Equal(t, 2700.0, s.DurationSeconds)
		assert.Equal(t, 29.8830556, s.Lat)
		assert.Equal(t, -97.9411111, s.Lng)
	})

	t.Run("empty row", func(t *testing.T) {
		_, err := ParseRecord(RawRecord{Comments: "only a comment"}, rules)
		assert.ErrorIs(t, err, ErrEmptyRecord)
	})

	t.Run("bad timestamp keeps the rest", func(t *testing.T) {
		rec := RawRecord{
			Timestamp:       "not a date",
			Shape:           "light",
			DurationSeconds: "60",
			Latitude:        "47.6062",
			Longitude:       "-122.3321",
		}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.False(t, s.HasTime)
		assert.True(t, s.HasDuration)
		assert.True(t, s.HasGeo)
	})

	t.Run("out of range latitude drops only geo", func(t *testing.T) {
		rec := RawRecord{
			Timestamp:       "6/1/2004 22:00",
			Shape:           "circle",
			DurationSeconds: "120",
			Latitude:        "-91.0",
			Longitude:       "10.0",
		}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.False(t, s.HasGeo)
		assert.True(t, s.HasTime)
		assert.True(t, s.HasDuration)
	})

	t.Run("negative duration rejected", func(t *testing.T) {
		rec := RawRecord{Timestamp: "6/1/2004 22:00", DurationSeconds: "-5"}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.False(t, s.HasDuration)
	})

	t.Run("duration above cap rejected", func(t *testing.T) {
		rec := RawRecord{Timestamp: "6/1/2004 22:00", DurationSeconds: "604801"}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.False(t, s.HasDuration)
	})

	t.Run("duration at cap kept", func(t *testing.T) {
		rec := RawRecord{Timestamp: "6/1/2004 22:00", DurationSeconds: "604800"}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.True(t, s.HasDuration)
		assert.Equal(t, 604800.0, s.DurationSeconds)
	})

	t.Run("missing fields fall back to sentinels", func(t *testing.T) {
		rec := RawRecord{Timestamp: "6/1/2004 22:00"}
		s, err := ParseRecord(rec, rules)

		require.NoError(t, err)
		assert.Equal(t, ShapeUnknown, s.Shape)
		assert.Equal(t, CountryUnknown, s.Country)
		assert.Equal(t, StateUnknown, s.State)
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Run("nuforc layout", func(t *testing.T) {
		ts, ok := ParseTimestamp("10/10/1949 20:30")
		require.True(t, ok)
		assert.Equal(t, time.Date(1949, 10, 10, 20, 30, 0, 0, time.UTC), ts)
	})

	t.Run("iso layout", func(t *testing.T) {
		ts, ok := ParseTimestamp("2004-06-01 22:00:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2004, 6, 1, 22, 0, 0, 0, time.UTC), ts)
	})

	t.Run("24:00 rolls to midnight next day", func(t *testing.T) {
		ts, ok := ParseTimestamp("12/31/1999 24:00")
		require.True(t, ok)
		assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), ts)
	})

	t.Run("garbage", func(t *testing.T) {
		_, ok := ParseTimestamp("eleven o'clock")
		assert.False(t, ok)
	})

	t.Run("blank", func(t *testing.T) {
		_, ok := ParseTimestamp("   ")
		assert.False(t, ok)
	})
}

func TestNormalizeShape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Light", "light"},
		{"TRIANGLE", "triangle"},
		{"disc", "disk"},
		{"triangular", "triangle"},
		{"circular", "circle"},
		{"round", "circle"},
		{"lights", "light"},
		{"fire ball", "fireball"},
		{"changed", "changing"},
		{"cigar shaped", "cigar"},
		{"other", ShapeUnknown},
		{"unspecified", ShapeUnknown},
		{"various", ShapeUnknown},
		{"n/a", ShapeUnknown},
		{"", ShapeUnknown},
		{"  ", ShapeUnknown},
		{"chevron", "chevron"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeShape(c.in), "input %q", c.in)
	}
}

func TestNormalizeCountry(t *testing.T) {
	assert.Equal(t, "us", NormalizeCountry("US"))
	assert.Equal(t, "uk", NormalizeCountry("gb"))
	assert.Equal(t, "uk", NormalizeCountry("GB"))
	assert.Equal(t, "ca", NormalizeCountry(" ca "))
	assert.Equal(t, CountryUnknown, NormalizeCountry(""))
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "TX", NormalizeState("tx"))
	assert.Equal(t, StateUnknown, NormalizeState(" "))
}

func TestSightingKey(t *testing.T) {
	s := Sighting{
		OccurredAt: time.Date(2004, 6, 1, 22, 0, 0, 0, time.UTC),
		Lat:        47.6062, Lng: -122.3321,
		Shape: "light", City: "seattle",
	}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, s.Key(), s.Key())
	})

	t.Run("prefix", func(t *testing.T) {
		assert.Contains(t, s.Key(), "sighting-")
	})

	t.Run("distinct inputs differ", func(t *testing.T) {
		other := s
		other.City = "tacoma"
		assert.NotEqual(t, s.Key(), other.Key())
	})
}

func TestNight(t *testing.T) {
	cases := []struct {
		hour  int
		night bool
	}{
		{0, true}, {5, true}, {6, false}, {12, false},
		{17, false}, {18, true}, {23, true},
	}
	for _, c := range cases {
		s := Sighting{OccurredAt: time.Date(2004, 6, 1, c.hour, 0, 0, 0, time.UTC)}
		assert.Equal(t, c.night, s.Night(), "hour %d", c.hour)
	}
}
