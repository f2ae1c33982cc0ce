// Package snapshot implements a RecordSource backed by per-entity
// snapshot files. A YAML manifest maps each entity table to a CSV or
// JSON location, either a local path (resolved relative to the
// manifest) or an http(s) URL.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"uk-parliament-scraper/models"
	"uk-parliament-scraper/source"
	"uk-parliament-scraper/utils"
)

// ErrEntityNotConfigured indicates the manifest has no location for one
// of the six entity tables.
var ErrEntityNotConfigured = errors.New("snapshot: entity not configured in manifest")

// Roster membership window fields used to answer date queries.
const (
	membershipStartField = "house_membership_start_date"
	membershipEndField   = "house_membership_end_date"
)

// Manifest maps each entity table to its snapshot location.
type Manifest struct {
	MPs                       string `yaml:"mps"`
	Lords                     string `yaml:"lords"`
	MPsGovernmentRoles        string `yaml:"mps_government_roles"`
	LordsGovernmentRoles      string `yaml:"lords_government_roles"`
	MPsCommitteeMemberships   string `yaml:"mps_committee_memberships"`
	LordsCommitteeMemberships string `yaml:"lords_committee_memberships"`
}

// Validate checks that every entity has a location.
func (m *Manifest) Validate() error {
	entities := []struct {
		name     string
		location string
	}{
		{"mps", m.MPs},
		{"lords", m.Lords},
		{"mps_government_roles", m.MPsGovernmentRoles},
		{"lords_government_roles", m.LordsGovernmentRoles},
		{"mps_committee_memberships", m.MPsCommitteeMemberships},
		{"lords_committee_memberships", m.LordsCommitteeMemberships},
	}
	for _, e := range entities {
		if e.location == "" {
			return fmt.Errorf("%w: %s", ErrEntityNotConfigured, e.name)
		}
	}
	return nil
}

// Source reads entity tables from manifest-listed snapshot files.
type Source struct {
	manifest Manifest
	baseDir  string
	client   *http.Client
	logger   *utils.Logger
}

// New loads and validates the manifest at manifestPath. Relative
// snapshot locations are resolved against the manifest's directory.
func New(manifestPath string, logger *utils.Logger) (*Source, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("snapshot: parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &Source{
		manifest: m,
		baseDir:  filepath.Dir(manifestPath),
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

// FetchMPs loads the Commons roster, narrowed to the query's membership
// window when one is given.
func (s *Source) FetchMPs(ctx context.Context, q source.Query) (models.Tabular, error) {
	tab, err := s.load(ctx, "mps", s.manifest.MPs)
	if err != nil {
		return nil, err
	}
	return filterRoster(tab, q), nil
}

// FetchLords loads the Lords roster, narrowed to the query's membership
// window when one is given.
func (s *Source) FetchLords(ctx context.Context, q source.Query) (models.Tabular, error) {
	tab, err := s.load(ctx, "lords", s.manifest.Lords)
	if err != nil {
		return nil, err
	}
	return filterRoster(tab, q), nil
}

func (s *Source) FetchMPsGovernmentRoles(ctx context.Context) (models.Tabular, error) {
	return s.load(ctx, "mps_government_roles", s.manifest.MPsGovernmentRoles)
}

func (s *Source) FetchLordsGovernmentRoles(ctx context.Context) (models.Tabular, error) {
	return s.load(ctx, "lords_government_roles", s.manifest.LordsGovernmentRoles)
}

func (s *Source) FetchMPsCommitteeMemberships(ctx context.Context) (models.Tabular, error) {
	return s.load(ctx, "mps_committee_memberships", s.manifest.MPsCommitteeMemberships)
}

func (s *Source) FetchLordsCommitteeMemberships(ctx context.Context) (models.Tabular, error) {
	return s.load(ctx, "lords_committee_memberships", s.manifest.LordsCommitteeMemberships)
}

// load reads one entity table from its snapshot location, decoding by
// file extension (.json for row-oriented records, CSV otherwise).
func (s *Source) load(ctx context.Context, entity, location string) (models.Tabular, error) {
	reader, err := s.open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", entity, err)
	}
	defer reader.Close()

	var tab models.Tabular
	if strings.HasSuffix(location, ".json") {
		tab, err = readJSON(reader)
	} else {
		tab, err = readCSV(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", entity, err)
	}

	s.logger.Debug("[snapshot] Loaded %s from %s", entity, location)
	return tab, nil
}

// open returns a reader for a local path or an http(s) URL.
func (s *Source) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", location, err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
		}
		return resp.Body, nil
	}

	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.baseDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return f, nil
}

// filterRoster narrows a roster to the memberships matching the query:
// an on-date keeps memberships covering that date, a from/to range
// keeps memberships overlapping it. Open-ended memberships extend to
// the present; a missing start date is treated as arbitrarily old. A
// zero query returns the table untouched.
func filterRoster(tab models.Tabular, q source.Query) models.Tabular {
	if q == (source.Query{}) {
		return tab
	}

	set := models.Normalize(tab)
	if set == nil {
		return tab
	}

	kept := make([]models.Record, 0, len(set.Records))
	for _, rec := range set.Records {
		if servedDuring(rec, q) {
			kept = append(kept, rec)
		}
	}
	return &models.RecordSet{Fields: set.FieldOrder(), Records: kept}
}

// servedDuring reports whether the record's membership window satisfies
// the query. ISO dates compare lexicographically.
func servedDuring(rec models.Record, q source.Query) bool {
	start := dateString(rec[membershipStartField])
	end := dateString(rec[membershipEndField])

	if q.OnDate != "" {
		if start != "" && start > q.OnDate {
			return false
		}
		if end != "" && end < q.OnDate {
			return false
		}
	}
	if q.FromDate != "" && end != "" && end < q.FromDate {
		return false
	}
	if q.ToDate != "" && start != "" && start > q.ToDate {
		return false
	}
	return true
}

// dateString extracts a comparable date from a record value. Anything
// that is not a date string reads as "no date".
func dateString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "NaT" || s == "NaN" {
		return ""
	}
	return s
}
