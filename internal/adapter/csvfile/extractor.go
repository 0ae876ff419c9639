// Package csvfile reads the raw NUFORC CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// columnAliases maps normalized header names to the canonical column. The
// export's headers vary between dumps ("duration (seconds)",
// "duration_seconds", "durationseconds" all occur).
var columnAliases = map[string]string{
	"datetime":        "datetime",
	"date":            "datetime",
	"city":            "city",
	"state":           "state",
	"country":         "country",
	"shape":           "shape",
	"durationseconds": "duration",
	"duration":        "duration",
	"comments":        "comments",
	"latitude":        "latitude",
	"lat":             "latitude",
	"longitude":       "longitude",
	"lng":             "longitude",
	"lon":             "longitude",
}

// requiredColumns must be present in the header for the file to be usable.
var requiredColumns = []string{"datetime", "latitude", "longitude"}

// Extractor streams raw records from a CSV file. It implements
// pipeline.Extractor.
type Extractor struct {
	file   *os.File
	reader *csv.Reader
	cols   map[string]int // canonical column -> field index
	line   int            // 1-based, header is line 1
	logger *slog.Logger
}

// NewExtractor opens the CSV file and maps its header. It fails when the
// file is unreadable, empty, or missing an essential column, the fatal
// input-error cases of the run contract.
func NewExtractor(path string, logger *slog.Logger) (*Extractor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := mapHeader(header)
	for _, col := range requiredColumns {
		if _, ok := cols[col]; !ok {
			f.Close()
			return nil, fmt.Errorf("input is missing essential column %q", col)
		}
	}

	return &Extractor{
		file:   f,
		reader: r,
		cols:   cols,
		line:   1,
		logger: logger,
	}, nil
}

// Next returns the next raw record. Structurally malformed CSV lines are
// logged and skipped; io.EOF signals end of input.
func (e *Extractor) Next(ctx context.Context) (domain.RawRecord, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.RawRecord{}, err
		}

		row, err := e.reader.Read()
		e.line++
		if errors.Is(err, io.EOF) {
			return domain.RawRecord{}, io.EOF
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			e.logger.Warn("skipping malformed csv line", "line", e.line, "error", err)
			continue
		}
		if err != nil {
			return domain.RawRecord{}, fmt.Errorf("read line %d: %w", e.line, err)
		}

		return domain.RawRecord{
			Timestamp:       e.get(row, "datetime"),
			City:            e.get(row, "city"),
			State:           e.get(row, "state"),
			Country:         e.get(row, "country"),
			Shape:           e.get(row, "shape"),
			DurationSeconds: e.get(row, "duration"),
			Comments:        e.get(row, "comments"),
			Latitude:        e.get(row, "latitude"),
			Longitude:       e.get(row, "longitude"),
			Line:            e.line,
		}, nil
	}
}

// Close releases the underlying file.
func (e *Extractor) Close() error {
	return e.file.Close()
}

func (e *Extractor) get(row []string, col string) string {
	i, ok := e.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// mapHeader resolves each header cell through normalization and the alias
// table. The first occurrence of a canonical column wins.
func mapHeader(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		canonical, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if _, exists := cols[canonical]; !exists {
			cols[canonical] = i
		}
	}
	return cols
}

// normalizeHeader lowercases a header cell and strips everything but
// letters and digits, so "Duration (seconds)" becomes "durationseconds".
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
