package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/ufo-globe-etl/internal/aggregate"
	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
	"github.com/couchcryptid/ufo-globe-etl/internal/observability"
)

// ErrNoUsableRows is returned when the input contains no row that survives
// cleaning. Per the run contract this is fatal: no artifacts are written.
var ErrNoUsableRows = errors.New("no usable rows in input")

// Extractor streams raw records from the input dataset. Next returns io.EOF
// after the last record.
type Extractor interface {
	Next(ctx context.Context) (domain.RawRecord, error)
}

// Transformer cleans one raw record into a sighting.
type Transformer interface {
	Transform(ctx context.Context, rec domain.RawRecord) (domain.Sighting, error)
}

// ArtifactLoader persists the two output artifacts.
type ArtifactLoader interface {
	LoadGlobePoints(points []domain.GlobePoint) error
	LoadSummary(summary domain.Summary) error
}

// SightingSink publishes cleaned sightings for downstream consumers.
type SightingSink interface {
	Publish(ctx context.Context, sightings []domain.Sighting) error
}

// Options bound the artifact shapes.
type Options struct {
	TopN           int
	MaxGlobePoints int
}

// Report summarizes one completed run.
type Report struct {
	RowsRead    int
	RowsSkipped map[string]int // by reason
	Sightings   int
	GlobePoints int
}

// Pipeline orchestrates one extract-clean-aggregate-write run.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      ArtifactLoader
	sink        SightingSink // nil when the Kafka sink is disabled
	logger      *slog.Logger
	metrics     *observability.Metrics
	opts        Options
}

// New creates a Pipeline with the given stages and observability. sink may
// be nil.
func New(e Extractor, t Transformer, l ArtifactLoader, sink SightingSink, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		sink:        sink,
		logger:      logger,
		metrics:     metrics,
		opts:        opts,
	}
}

// Run executes one single-pass batch run to completion. Row-level failures
// are skipped and counted; only an unusable input or an artifact write
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	start := time.Now()

	report, sightings, acc, err := p.consume(ctx)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report, err
	}

	if acc.Total() == 0 {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report, ErrNoUsableRows
	}
	report.Sightings = acc.Total()

	points := acc.GlobePoints(p.opts.MaxGlobePoints)
	report.GlobePoints = len(points)

	if err := p.loader.LoadGlobePoints(points); err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("write globe artifact: %w", err)
	}
	p.metrics.GlobePointsEmitted.Add(float64(len(points)))

	if err := p.loader.LoadSummary(acc.Summary(p.opts.TopN)); err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("write summary artifact: %w", err)
	}

	if p.sink != nil {
		if err := p.sink.Publish(ctx, sightings); err != nil {
			// The artifacts are already written; a sink outage degrades to a
			// warning rather than failing the run.
			p.logger.Warn("sink publish failed", "error", err, "sightings", len(sightings))
		} else {
			p.metrics.SinkPublished.Add(float64(len(sightings)))
		}
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())

	p.logger.Info("run complete",
		"rows_read", report.RowsRead,
		"sightings", report.Sightings,
		"globe_points", report.GlobePoints,
		"skipped", report.RowsSkipped,
		"duration", time.Since(start),
	)
	return report, nil
}

// consume drains the extractor, cleaning and accumulating every row.
func (p *Pipeline) consume(ctx context.Context) (Report, []domain.Sighting, *aggregate.Accumulator, error) {
	report := Report{RowsSkipped: make(map[string]int)}
	acc := aggregate.New()
	var sightings []domain.Sighting

	for {
		rec, err := p.extractor.Next(ctx)
		if errors.Is(err, io.EOF) {
			return report, sightings, acc, nil
		}
		if err != nil {
			return report, nil, nil, fmt.Errorf("read input: %w", err)
		}

		report.RowsRead++
		p.metrics.RowsRead.Inc()

		s, err := p.transformer.Transform(ctx, rec)
		if err != nil {
			p.skip(&report, "empty_row", rec.Line, err)
			continue
		}

		for _, reason := range fieldSkips(rec, s) {
			report.RowsSkipped[reason]++
			p.metrics.RowsSkipped.WithLabelValues(reason).Inc()
		}

		acc.Add(s)
		sightings = append(sightings, s)
	}
}

func (p *Pipeline) skip(report *Report, reason string, line int, err error) {
	report.RowsSkipped[reason]++
	p.metrics.RowsSkipped.WithLabelValues(reason).Inc()
	p.logger.Warn("skipping row", "reason", reason, "line", line, "error", err)
}

// fieldSkips reports which populated fields failed validation. A cleared
// Has* flag only counts as a skip when the source column actually held a
// value.
func fieldSkips(rec domain.RawRecord, s domain.Sighting) []string {
	var reasons []string
	if !s.HasTime && rec.Timestamp != "" {
		reasons = append(reasons, "bad_timestamp")
	}
	if !s.HasDuration && rec.DurationSeconds != "" {
		reasons = append(reasons, "bad_duration")
	}
	if !s.HasGeo && (rec.Latitude != "" || rec.Longitude != "") {
		reasons = append(reasons, "bad_coords")
	}
	return reasons
}
