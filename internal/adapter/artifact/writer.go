// Package artifact persists the JSON output files.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
)

// Artifact file names, part of the presentation-layer contract.
const (
	GlobeFileName   = "sightings_for_globe.json"
	SummaryFileName = "eda_summary.json"
)

// Writer writes both artifacts into a directory. It implements
// pipeline.ArtifactLoader. Writes go through a temp file and an atomic
// rename so a failed run never leaves a partial artifact behind.
type Writer struct {
	dir string
}

// NewWriter creates a Writer targeting the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// LoadGlobePoints writes the point-cloud artifact. A nil slice still
// serializes as an empty JSON array so the globe renders empty rather than
// breaking on null.
func (w *Writer) LoadGlobePoints(points []domain.GlobePoint) error {
	if points == nil {
		points = []domain.GlobePoint{}
	}
	return w.writeAtomic(GlobeFileName, points)
}

// LoadSummary writes the summary artifact.
func (w *Writer) LoadSummary(summary domain.Summary) error {
	return w.writeAtomic(SummaryFileName, summary)
}

func (w *Writer) writeAtomic(name string, v any) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(w.dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(w.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
