package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"uk-parliament-scraper/models"
	"uk-parliament-scraper/storage"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	}
}

func TestExportCSVAllWritesSixFiles(t *testing.T) {
	src := populatedSource()
	dir := t.TempDir()
	s := New(src, storage.NewCSVWriter(dir, newTestLogger()), NewCache(), newTestLogger())
	s.now = fixedClock()

	files, err := s.ExportCSV(context.Background(), "all", FetchOptions{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	want := []string{
		"uk_mps_20240603_120000.csv",
		"uk_lords_20240603_120000.csv",
		"uk_mps_government_roles_20240603_120000.csv",
		"uk_lords_government_roles_20240603_120000.csv",
		"uk_mps_committee_memberships_20240603_120000.csv",
		"uk_lords_committee_memberships_20240603_120000.csv",
	}
	if len(files) != len(want) {
		t.Fatalf("exported %d files; want %d: %v", len(files), len(want), files)
	}
	for i, name := range want {
		if got := filepath.Base(files[i]); got != name {
			t.Errorf("file %d = %q; want %q (one run timestamp for every table)", i, got, name)
		}
		if _, err := os.Stat(files[i]); err != nil {
			t.Errorf("artifact %s not on disk: %v", files[i], err)
		}
	}
}

func TestExportCSVAllSkipsUnpopulatedTables(t *testing.T) {
	src := populatedSource()
	src.lordsComm = nil
	s := newTestScraper(t, src)

	files, err := s.ExportCSV(context.Background(), "all", FetchOptions{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if len(files) != 5 {
		t.Fatalf("exported %d files; want 5 when one table was never fetched", len(files))
	}
	for _, f := range files {
		if strings.HasPrefix(filepath.Base(f), "uk_lords_committee_memberships") {
			t.Errorf("unpopulated table was exported: %s", f)
		}
	}
}

func TestExportCSVSingleRosterForwardsOptions(t *testing.T) {
	src := populatedSource()
	s := newTestScraper(t, src)
	s.now = fixedClock()

	files, err := s.ExportCSV(context.Background(), "mps", FetchOptions{
		Current:  true,
		FromDate: "2024-01-01",
		OnDate:   "2024-05-01",
	})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("exported %d files; want 1", len(files))
	}
	q := src.mpsQueries[0]
	if q.FromDate != "2024-01-01" || q.OnDate != "2024-05-01" {
		t.Errorf("forwarded query = %+v; want the caller's dates verbatim", q)
	}
	if src.calls != 1 {
		t.Errorf("source called %d times; want 1", src.calls)
	}
}

func TestExportCSVPairTypesWriteBothSides(t *testing.T) {
	tests := []struct {
		dataType string
		want     []string
	}{
		{"government-roles", []string{
			"uk_mps_government_roles_20240603_120000.csv",
			"uk_lords_government_roles_20240603_120000.csv",
		}},
		{"committees", []string{
			"uk_mps_committee_memberships_20240603_120000.csv",
			"uk_lords_committee_memberships_20240603_120000.csv",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.dataType, func(t *testing.T) {
			src := populatedSource()
			dir := t.TempDir()
			s := New(src, storage.NewCSVWriter(dir, newTestLogger()), NewCache(), newTestLogger())
			s.now = fixedClock()

			files, err := s.ExportCSV(context.Background(), tt.dataType, FetchOptions{Current: true})
			if err != nil {
				t.Fatalf("ExportCSV: %v", err)
			}
			if len(files) != 2 {
				t.Fatalf("exported %d files; want 2", len(files))
			}
			for i, name := range tt.want {
				if got := filepath.Base(files[i]); got != name {
					t.Errorf("file %d = %q; want %q", i, got, name)
				}
			}
		})
	}
}

func TestExportCSVUnknownTypeRejectedBeforeFetch(t *testing.T) {
	src := populatedSource()
	s := newTestScraper(t, src)

	_, err := s.ExportCSV(context.Background(), "senators", FetchOptions{})
	if !errors.Is(err, ErrUnknownDataType) {
		t.Fatalf("err = %v; want ErrUnknownDataType", err)
	}
	if src.calls != 0 {
		t.Errorf("source called %d times; want 0 (validation happens before any fetch)", src.calls)
	}
}

// brokenWriter fails every write after the first n.
type brokenWriter struct {
	inner storage.RecordWriter
	n     int
	calls int
}

func (w *brokenWriter) WriteRecords(set *models.RecordSet, filename string) (string, error) {
	w.calls++
	if w.calls > w.n {
		return "", fmt.Errorf("csv: write %q: disk full", filename)
	}
	return w.inner.WriteRecords(set, filename)
}

func TestExportCSVWriteErrorKeepsEarlierFiles(t *testing.T) {
	src := populatedSource()
	dir := t.TempDir()
	writer := &brokenWriter{inner: storage.NewCSVWriter(dir, newTestLogger()), n: 2}
	s := New(src, writer, NewCache(), newTestLogger())

	files, err := s.ExportCSV(context.Background(), "all", FetchOptions{})
	if err == nil {
		t.Fatal("expected the third write to fail")
	}
	if len(files) != 2 {
		t.Fatalf("returned %d artifacts; want the 2 written before the failure", len(files))
	}
	for _, f := range files {
		if _, statErr := os.Stat(f); statErr != nil {
			t.Errorf("earlier artifact rolled back: %s", f)
		}
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	src := populatedSource()
	dir := t.TempDir()
	s := New(src, storage.NewCSVWriter(dir, newTestLogger()), NewCache(), newTestLogger())

	files, err := s.ExportCSV(context.Background(), "mps", FetchOptions{})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	raw, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	got := string(raw)
	want := "person_id,display_name,house_membership_end_date\n" +
		"1001,John Smith,\n" +
		"1002,Jane Doe,2023-12-31\n"
	if got != want {
		t.Errorf("artifact content:\n%s\nwant:\n%s", got, want)
	}
}
