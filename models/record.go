package models

import (
	"encoding/json"
	"sort"
)

// Record is one row of tabular data, mapping field names to scalar
// values. Field names are feed-specific; callers treat records opaquely
// except for the single field they are told to inspect.
type Record map[string]any

// RecordSet holds the rows for one entity type together with the field
// order captured from the source schema. Insertion order from the
// source is preserved.
type RecordSet struct {
	Fields  []string
	Records []Record
}

// Tabular is a fetch result that can be rendered row-oriented. The two
// implementations are Table (column-oriented) and RecordSet (already
// row-oriented).
type Tabular interface {
	Normalize() *RecordSet
}

// Table is a column-oriented fetch result. Rows shorter than the column
// list leave the trailing fields absent; extra cells are dropped.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Normalize converts the table into one record per row, preserving the
// column order as the set's field order.
func (t *Table) Normalize() *RecordSet {
	if t == nil {
		return nil
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}

	return &RecordSet{
		Fields:  append([]string(nil), t.Columns...),
		Records: records,
	}
}

// Normalize returns the set unchanged. Row-oriented input is already in
// canonical form, so normalizing twice is the same as normalizing once.
func (s *RecordSet) Normalize() *RecordSet {
	return s
}

// Normalize renders any fetch result row-oriented. A nil input stays
// nil so callers can pass fetch results through without checking.
func Normalize(t Tabular) *RecordSet {
	if t == nil {
		return nil
	}
	return t.Normalize()
}

// Len reports the number of records. Safe on a nil set.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// FieldOrder returns the header order for serialization: the source
// schema order when it was captured, otherwise the field names in the
// order first seen across the records. Go maps do not retain insertion
// order, so names first appearing in the same record are tie-broken
// alphabetically.
func (s *RecordSet) FieldOrder() []string {
	if s == nil {
		return nil
	}
	if len(s.Fields) > 0 {
		return s.Fields
	}

	seen := make(map[string]struct{})
	var order []string
	for _, rec := range s.Records {
		fresh := make([]string, 0, len(rec))
		for name := range rec {
			if _, ok := seen[name]; !ok {
				fresh = append(fresh, name)
			}
		}
		sort.Strings(fresh)
		for _, name := range fresh {
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}
	return order
}

// MarshalJSON serializes the set as a bare array of records, matching
// the shape the upstream feeds use.
func (s *RecordSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.Records)
}
