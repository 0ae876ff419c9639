package domain

import "math"

// Globe point derivation constants. The altitude lifts points slightly off
// the globe surface; the radius range keeps week-long reports from
// dominating the visual scale.
const (
	GlobePointAltitude = 0.005

	// Radius scaling: log-normalized duration over [minScaleSeconds,
	// maxScaleSeconds] mapped onto [radiusBase, radiusBase+radiusSpan].
	radiusBase      = 0.03
	radiusSpan      = 0.25
	minScaleSeconds = 1.0
	maxScaleSeconds = 86400.0

	// MinPointRadius and MaxPointRadius bound every emitted radius.
	MinPointRadius = 0.01
	MaxPointRadius = radiusBase + radiusSpan

	// DefaultPointRadius is used when a sighting has no valid duration.
	DefaultPointRadius = radiusBase
)

// RadiusForDuration maps a duration in seconds to a point radius. The
// mapping is monotonic in the duration, log-scaled, and clamped so the
// result is always within [MinPointRadius, MaxPointRadius]. Sightings
// without a valid duration get DefaultPointRadius.
func RadiusForDuration(seconds float64, hasDuration bool) float64 {
	if !hasDuration {
		return DefaultPointRadius
	}

	d := math.Min(math.Max(seconds, minScaleSeconds), maxScaleSeconds)
	norm := math.Log(d) / math.Log(maxScaleSeconds)
	return math.Max(MinPointRadius, radiusBase+norm*radiusSpan)
}

// shapeColors assigns fixed colors to the canonical categories so the same
// shape always renders the same across runs and datasets.
var shapeColors = map[string]string{
	"light":    "rgba(255, 221, 87, 0.75)",
	"triangle": "rgba(255, 99, 71, 0.75)",
	"circle":   "rgba(100, 181, 246, 0.75)",
	"disk":     "rgba(129, 199, 132, 0.75)",
	"fireball": "rgba(255, 152, 0, 0.75)",
	"sphere":   "rgba(186, 134, 252, 0.75)",
	"oval":     "rgba(77, 208, 225, 0.75)",
	"cigar":    "rgba(240, 98, 146, 0.75)",
	"formation": "rgba(174, 213, 129, 0.75)",
	"changing": "rgba(255, 183, 77, 0.75)",

	ShapeUnknown: "rgba(255, 255, 0, 0.7)",
}

// cyclePalette colors categories outside the fixed map. Assignment cycles by
// category index, so it stays deterministic for any category set.
var cyclePalette = []string{
	"rgba(236, 64, 122, 0.75)",
	"rgba(92, 107, 192, 0.75)",
	"rgba(38, 166, 154, 0.75)",
	"rgba(212, 225, 87, 0.75)",
	"rgba(141, 110, 99, 0.75)",
	"rgba(120, 144, 156, 0.75)",
}

// HasFixedColor reports whether a shape category has a fixed palette entry.
// Categories without one need a cycle index assigned by the caller.
func HasFixedColor(shape string) bool {
	_, ok := shapeColors[shape]
	return ok
}

// ColorForShape returns the color for a shape category. Categories in the
// fixed palette ignore cycleIndex; all others take the cycleIndex-th cycling
// color. Pure function, no hidden state.
func ColorForShape(shape string, cycleIndex int) string {
	if c, ok := shapeColors[shape]; ok {
		return c
	}
	if cycleIndex < 0 {
		cycleIndex = 0
	}
	return cyclePalette[cycleIndex%len(cyclePalette)]
}

// NewGlobePoint derives the renderable point for a sighting. The caller is
// responsible for only passing sightings with HasGeo set.
func NewGlobePoint(s Sighting, cycleIndex int) GlobePoint {
	return GlobePoint{
		Lat:    s.Lat,
		Lng:    s.Lng,
		Alt:    GlobePointAltitude,
		Radius: RadiusForDuration(s.DurationSeconds, s.HasDuration),
		Color:  ColorForShape(s.Shape, cycleIndex),
	}
}
