package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"uk-parliament-scraper/models"
	"uk-parliament-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger("error") }

func TestWriteRecordsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, newTestLogger())

	set := &models.RecordSet{
		Fields: []string{"person_id", "display_name", "party_name"},
		Records: []models.Record{
			{"person_id": 1001, "display_name": "John Smith", "party_name": "Labour"},
			{"person_id": 1002, "display_name": "Jane Doe", "party_name": "Conservative"},
		},
	}

	path, err := w.WriteRecords(set, "uk_mps_20240603_120000.csv")
	if err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if got, want := path, filepath.Join(dir, "uk_mps_20240603_120000.csv"); got != want {
		t.Errorf("path = %q; want %q", got, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	if got, want := len(rows), 3; got != want {
		t.Fatalf("artifact has %d rows; want header + 2 records = %d", got, want)
	}
	if got, want := rows[0], set.Fields; !reflect.DeepEqual(got, want) {
		t.Errorf("header = %v; want the field order %v", got, want)
	}
	if got, want := rows[1], []string{"1001", "John Smith", "Labour"}; !reflect.DeepEqual(got, want) {
		t.Errorf("row 1 = %v; want %v (values stringified)", got, want)
	}
}

func TestWriteRecordsMissingFieldsAsEmptyCells(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, newTestLogger())

	set := &models.RecordSet{
		Records: []models.Record{
			{"name": "A", "end_date": "2023-12-31"},
			{"name": "B"},
			{"name": "C", "end_date": nil},
		},
	}

	path, err := w.WriteRecords(set, "table.csv")
	if err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	if got, want := rows[0], []string{"end_date", "name"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("header = %v; want first-seen order %v", got, want)
	}
	// Record B lacks end_date: that cell must be empty, not shifted.
	if got, want := rows[2], []string{"", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("row for B = %v; want %v", got, want)
	}
	if got, want := rows[3], []string{"", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("row for C = %v; want %v (nil renders empty)", got, want)
	}
}

func TestWriteRecordsCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs", "nested")
	w := NewCSVWriter(dir, newTestLogger())

	set := &models.RecordSet{
		Fields:  []string{"name"},
		Records: []models.Record{{"name": "A"}},
	}

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("output dir should not exist before the first write")
	}

	if _, err := w.WriteRecords(set, "a.csv"); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	// A second write into the now-existing directory must also succeed.
	if _, err := w.WriteRecords(set, "b.csv"); err != nil {
		t.Fatalf("WriteRecords into existing dir: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "b.csv")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestWriteRecordsEmptySet(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, newTestLogger())

	set := &models.RecordSet{Fields: []string{"person_id", "display_name"}}

	path, err := w.WriteRecords(set, "empty.csv")
	if err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty set artifact has %d rows; want the header row only", len(rows))
	}
}
