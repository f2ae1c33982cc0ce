package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"uk-parliament-scraper/models"
)

// readCSV decodes a snapshot CSV into a column-ordered table. The first
// row is the header; empty cells read as absent values.
func readCSV(r io.Reader) (models.Tabular, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return &models.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	table := &models.Table{Columns: columns}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = parseCell(cell)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// readJSON decodes a snapshot JSON array of objects as row-oriented
// records.
func readJSON(r io.Reader) (models.Tabular, error) {
	var records []models.Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return &models.RecordSet{Records: records}, nil
}

// parseCell turns a CSV cell into a typed scalar: empty cells become
// nil, numerics become int or float64, everything else stays a string.
func parseCell(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
