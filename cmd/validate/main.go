// Command validate checks the two JSON artifacts against their file
// contracts, verifies the summary's internal consistency, and reproduces the
// aggregation from the source CSV to confirm the artifacts are byte-identical
// to a fresh run.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/ufo_sightings_scrubbed.csv \
//	  -data-dir data
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/artifact"
	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/ufo-globe-etl/internal/aggregate"
	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the raw sightings CSV")
	dataDir := flag.String("data-dir", "", "directory containing the JSON artifacts")
	topN := flag.Int("top-n", 5, "top-N used when the artifacts were produced")
	maxPoints := flag.Int("max-points", 10000, "globe point cap used when the artifacts were produced")
	flag.Parse()

	if *csvPath == "" || *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*csvPath, *dataDir, *topN, *maxPoints))
}

func run(csvPath, dataDir string, topN, maxPoints int) int {
	fmt.Println("=== UFO Artifact Validation ===")
	fmt.Println()

	globeRaw, err := os.ReadFile(filepath.Join(dataDir, artifact.GlobeFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read globe artifact: %v\n", err)
		return 1
	}
	summaryRaw, err := os.ReadFile(filepath.Join(dataDir, artifact.SummaryFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read summary artifact: %v\n", err)
		return 1
	}

	var points []domain.GlobePoint
	if err := json.Unmarshal(globeRaw, &points); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: globe artifact is not a JSON array: %v\n", err)
		return 1
	}
	var summary domain.Summary
	if err := json.Unmarshal(summaryRaw, &summary); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: summary artifact is not a JSON object: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateGlobeContract(points, maxPoints),
		validateSummaryConsistency(&summary, topN),
		validateReproduction(csvPath, globeRaw, summaryRaw, topN, maxPoints),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Artifacts: %d globe points, %d total sightings\n", len(points), summary.TotalSightings)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Globe Contract ──
// Every point must carry renderable values within the documented ranges.

func validateGlobeContract(points []domain.GlobePoint, maxPoints int) *phase {
	p := &phase{name: "Phase 1: Globe Contract"}

	if len(points) > maxPoints {
		p.errorf("point count %d exceeds cap %d", len(points), maxPoints)
	}

	for i, pt := range points {
		if pt.Lat < -90 || pt.Lat > 90 {
			p.errorf("point %d: lat %g out of range", i, pt.Lat)
		}
		if pt.Lng < -180 || pt.Lng > 180 {
			p.errorf("point %d: lng %g out of range", i, pt.Lng)
		}
		if pt.Alt != domain.GlobePointAltitude {
			p.errorf("point %d: alt %g, expected %g", i, pt.Alt, domain.GlobePointAltitude)
		}
		if pt.Radius < domain.MinPointRadius || pt.Radius > domain.MaxPointRadius {
			p.errorf("point %d: radius %g outside [%g, %g]", i, pt.Radius, domain.MinPointRadius, domain.MaxPointRadius)
		}
		if pt.Color == "" {
			p.errorf("point %d: empty color", i)
		}
	}
	return p
}

// ── Phase 2: Summary Consistency ──
// Checks the summary object against its own totals and ranges.

func validateSummaryConsistency(s *domain.Summary, topN int) *phase {
	p := &phase{name: "Phase 2: Summary Consistency"}

	if s.TotalSightings < 0 {
		p.errorf("total_sightings %d is negative", s.TotalSightings)
	}

	checkPercent(p, "proportion_over_5_min_percent", s.ProportionOver5MinPercent)
	checkPercent(p, "proportion_over_1_hour_percent", s.ProportionOver1HourPercent)
	checkMedian(p, "median_duration_seconds_overall", s.MedianDurationSecondsOverall)
	checkMedian(p, "median_duration_night_seconds", s.MedianDurationNightSeconds)
	checkMedian(p, "median_duration_day_seconds", s.MedianDurationDaySeconds)
	for shape, m := range s.MedianDurationsByTopShapes {
		checkMedian(p, "median_durations_by_top_shapes["+shape+"]", m)
	}

	if len(s.TopCountries) > topN {
		p.errorf("top_countries has %d entries, expected at most %d", len(s.TopCountries), topN)
	}
	if len(s.TopStatesUS) > topN {
		p.errorf("top_states_us has %d entries, expected at most %d", len(s.TopStatesUS), topN)
	}
	if _, ok := s.TopShapes[domain.ShapeUnknown]; ok {
		p.errorf("top_shapes contains the %q sentinel", domain.ShapeUnknown)
	}
	if _, ok := s.TopCountries[domain.CountryUnknown]; ok {
		p.errorf("top_countries contains the %q sentinel", domain.CountryUnknown)
	}

	// Time-bucketed counts never exceed the total: rows without a valid
	// timestamp count toward total_sightings only.
	yearSum := 0
	for _, c := range s.SightingsByYear {
		yearSum += c
	}
	if yearSum > s.TotalSightings {
		p.errorf("sightings_by_year sums to %d, exceeding total %d", yearSum, s.TotalSightings)
	}

	if s.PeakHourNumeric != nil {
		hour := *s.PeakHourNumeric
		if hour < 0 || hour > 23 {
			p.errorf("peak_hour_numeric %d out of range", hour)
		}
		if _, ok := s.SightingsByHour[strconv.Itoa(hour)]; !ok {
			p.errorf("peak_hour_numeric %d has no entry in sightings_by_hour", hour)
		}
	}
	return p
}

func checkPercent(p *phase, key string, v float64) {
	if v < 0 || v > 100 {
		p.errorf("%s is %g, outside [0, 100]", key, v)
	}
}

func checkMedian(p *phase, key string, v *float64) {
	if v != nil && *v < 0 {
		p.errorf("%s is %g, negative", key, *v)
	}
}

// ── Phase 3: Reproduction ──
// Re-runs the aggregation from the CSV and requires byte-identical artifacts.

func validateReproduction(csvPath string, globeRaw, summaryRaw []byte, topN, maxPoints int) *phase {
	p := &phase{name: "Phase 3: Reproduction (byte-identical)"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	extractor, err := csvfile.NewExtractor(csvPath, logger)
	if err != nil {
		p.errorf("open CSV: %v", err)
		return p
	}
	defer extractor.Close()

	rules := domain.DefaultCleaningRules()
	acc := aggregate.New()
	ctx := context.Background()
	for {
		rec, err := extractor.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			p.errorf("read CSV: %v", err)
			return p
		}
		s, err := domain.ParseRecord(rec, rules)
		if err != nil {
			continue
		}
		acc.Add(s)
	}

	wantGlobe, err := marshalArtifact(acc.GlobePoints(maxPoints))
	if err != nil {
		p.errorf("marshal globe: %v", err)
		return p
	}
	wantSummary, err := marshalArtifact(acc.Summary(topN))
	if err != nil {
		p.errorf("marshal summary: %v", err)
		return p
	}

	if !bytes.Equal(wantGlobe, globeRaw) {
		p.errorf("globe artifact differs from a fresh aggregation of %s", csvPath)
	}
	if !bytes.Equal(wantSummary, summaryRaw) {
		p.errorf("summary artifact differs from a fresh aggregation of %s", csvPath)
	}
	return p
}

// marshalArtifact must match the artifact writer's encoding exactly.
func marshalArtifact(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
