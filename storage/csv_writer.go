package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"uk-parliament-scraper/models"
	"uk-parliament-scraper/utils"
)

// CSVWriter serializes record sets into files under a single output
// directory. It is safe for concurrent use.
type CSVWriter struct {
	mu        sync.Mutex
	outputDir string
	logger    *utils.Logger
}

// NewCSVWriter returns a writer rooted at outputDir. The directory is
// created on first write, so constructing a writer never touches the
// filesystem.
func NewCSVWriter(outputDir string, logger *utils.Logger) *CSVWriter {
	return &CSVWriter{outputDir: outputDir, logger: logger}
}

// WriteRecords writes one record set to filename inside the output
// directory and returns the full path. The header row lists the set's
// fields in the order first seen; a field missing from a record renders
// as an empty cell, never a column shift.
func (w *CSVWriter) WriteRecords(set *models.RecordSet, filename string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return "", fmt.Errorf("csv: create output dir: %w", err)
	}

	path := filepath.Join(w.outputDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	fields := set.FieldOrder()
	if err := cw.Write(fields); err != nil {
		return "", fmt.Errorf("csv: write header: %w", err)
	}

	row := make([]string, len(fields))
	for _, rec := range set.Records {
		for i, field := range fields {
			row[i] = cellString(rec[field])
		}
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("csv: write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("csv: flush %q: %w", path, err)
	}

	w.logger.Debug("[csv] Wrote %d records to %s", len(set.Records), path)
	return path, nil
}

// cellString renders a scalar for CSV output. Absent values become
// empty cells.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
