// Command genmock generates a deterministic mock sightings CSV plus the two
// expected JSON artifacts. It runs the actual cleaning and aggregation code
// so the artifacts match real pipeline behavior, and prints the aggregate
// counts for updating test assertions.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -csv-out data/mock/ufo_sightings_mock.csv \
//	  -data-out data/mock \
//	  -rows 500
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/ufo-globe-etl/internal/adapter/artifact"
	"github.com/couchcryptid/ufo-globe-etl/internal/aggregate"
	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// Fixed seed keeps the fixture byte-stable across regenerations.
const mockSeed = 42

var header = []string{
	"datetime", "city", "state", "country", "shape",
	"duration (seconds)", "comments", "latitude", "longitude",
}

type place struct {
	city    string
	state   string
	country string
	lat     float64
	lng     float64
}

var places = []place{
	{"phoenix", "az", "us", 33.4484, -112.0740},
	{"seattle", "wa", "us", 47.6062, -122.3321},
	{"roswell", "nm", "us", 33.3943, -104.5230},
	{"chicago", "il", "us", 41.8781, -87.6298},
	{"portland", "or", "us", 45.5152, -122.6784},
	{"london", "", "gb", 51.5074, -0.1278},
	{"toronto", "on", "ca", 43.6532, -79.3832},
	{"sydney", "", "au", -33.8688, 151.2093},
}

var shapes = []string{
	"light", "circle", "triangle", "fireball", "disk",
	"sphere", "oval", "cigar", "changing", "other", "",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the mock sightings CSV")
	dataOut := flag.String("data-out", "", "output directory for the expected artifacts")
	rows := flag.Int("rows", 500, "number of data rows to generate")
	flag.Parse()

	if *csvOut == "" || *dataOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -data-out")
	}

	records := generate(*rows)
	if err := writeCSV(*csvOut, records); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	log.Printf("wrote mock CSV: %s (%d rows)", *csvOut, len(records))

	// Run the actual cleaning and aggregation over the generated rows.
	rules := domain.DefaultCleaningRules()
	acc := aggregate.New()
	skips := map[string]int{}
	for _, rec := range records {
		s, err := domain.ParseRecord(rec, rules)
		if err != nil {
			skips["empty_row"]++
			continue
		}
		if !s.HasTime {
			skips["bad_timestamp"]++
		}
		if !s.HasGeo {
			skips["bad_coords"]++
		}
		if !s.HasDuration && rec.DurationSeconds != "" {
			skips["bad_duration"]++
		}
		acc.Add(s)
	}

	writer := artifact.NewWriter(*dataOut)
	if err := writer.LoadGlobePoints(acc.GlobePoints(10000)); err != nil {
		return fmt.Errorf("writing globe artifact: %w", err)
	}
	summary := acc.Summary(5)
	if err := writer.LoadSummary(summary); err != nil {
		return fmt.Errorf("writing summary artifact: %w", err)
	}
	log.Printf("wrote artifacts: %s", *dataOut)

	printStats(acc, summary, skips)
	return nil
}

// generate produces rows spread over years, hours, and places, with a
// deterministic sprinkle of malformed fields so fixtures exercise the
// per-field validation paths.
func generate(n int) []domain.RawRecord {
	rng := rand.New(rand.NewSource(mockSeed))
	records := make([]domain.RawRecord, 0, n)

	for i := 0; i < n; i++ {
		p := places[rng.Intn(len(places))]
		ts := time.Date(
			1995+rng.Intn(20), time.Month(1+rng.Intn(12)), 1+rng.Intn(28),
			rng.Intn(24), rng.Intn(60), 0, 0, time.UTC,
		)

		rec := domain.RawRecord{
			Timestamp:       ts.Format("1/2/2006 15:04"),
			City:            p.city,
			State:           p.state,
			Country:         p.country,
			Shape:           shapes[rng.Intn(len(shapes))],
			DurationSeconds: strconv.Itoa(1 + rng.Intn(7200)),
			Comments:        fmt.Sprintf("mock sighting %d", i),
			Latitude:        strconv.FormatFloat(p.lat+rng.Float64()*0.5, 'f', 4, 64),
			Longitude:       strconv.FormatFloat(p.lng+rng.Float64()*0.5, 'f', 4, 64),
			Line:            i + 2,
		}

		// Malformed fields on fixed strides.
		switch {
		case i%53 == 7:
			rec.Timestamp = "not-a-date"
		case i%41 == 5:
			rec.DurationSeconds = "-30"
		case i%37 == 3:
			rec.Latitude = "91.0"
		case i%29 == 11:
			rec.Country = ""
		}

		records = append(records, rec)
	}
	return records
}

func writeCSV(path string, records []domain.RawRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.Timestamp, rec.City, rec.State, rec.Country, rec.Shape,
			rec.DurationSeconds, rec.Comments, rec.Latitude, rec.Longitude,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func printStats(acc *aggregate.Accumulator, summary domain.Summary, skips map[string]int) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total sightings: %d\n", acc.Total())
	fmt.Printf("Geo-valid sightings: %d\n", acc.GeoCount())
	fmt.Printf("Globe points: %d\n", len(acc.GlobePoints(10000)))

	reasons := make([]string, 0, len(skips))
	for r := range skips {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	fmt.Print("Field skips:")
	for _, r := range reasons {
		fmt.Printf(" %s=%d", r, skips[r])
	}
	fmt.Println()

	fmt.Printf("Most common shape: %s\n", summary.MostCommonShape)
	fmt.Printf("Peak month: %s, peak year: %s\n", summary.PeakMonth, summary.PeakYearOfReports)
	if summary.PeakHourNumeric != nil {
		fmt.Printf("Peak hour: %d (%s)\n", *summary.PeakHourNumeric, summary.PeakHourReadable)
	}
	fmt.Printf("Top countries: %v\n", summary.TopCountries)
	fmt.Printf("Top US states: %v\n", summary.TopStatesUS)
	if summary.MedianDurationSecondsOverall != nil {
		fmt.Printf("Median duration overall: %g\n", *summary.MedianDurationSecondsOverall)
	}
	fmt.Printf("Over 5 minutes: %g%%, over 1 hour: %g%%\n",
		summary.ProportionOver5MinPercent, summary.ProportionOver1HourPercent)
}
