package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// aggregation runs.
type Metrics struct {
	RowsRead           prometheus.Counter
	RowsSkipped        *prometheus.CounterVec // label: reason={empty_row,bad_timestamp,bad_coords,bad_duration}
	GlobePointsEmitted prometheus.Counter
	SinkPublished      prometheus.Counter

	RunsTotal   *prometheus.CounterVec // label: outcome={success,error}
	RunDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // label: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // label: result={hit,miss}
	GeocodeEnabled  prometheus.Gauge
}

// NewMetrics creates and registers all run metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsRead,
		m.RowsSkipped,
		m.GlobePointsEmitted,
		m.SinkPublished,
		m.RunsTotal,
		m.RunDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "rows_read_total",
			Help:      "Total rows read from the input dataset.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "rows_skipped_total",
			Help:      "Rows or fields skipped during cleaning, by reason.",
		}, []string{"reason"}),
		GlobePointsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "globe_points_emitted_total",
			Help:      "Globe points written to the point-cloud artifact.",
		}),
		SinkPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "sink_published_total",
			Help:      "Cleaned sightings published to the Kafka sink.",
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "runs_total",
			Help:      "Aggregation runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ufo_globe",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete aggregation run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_globe",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ufo_globe",
			Name:      "geocode_enabled",
			Help:      "1 when country backfill geocoding is enabled, 0 otherwise.",
		}),
	}
}
