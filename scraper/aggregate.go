package scraper

import (
	"context"
	"time"

	"uk-parliament-scraper/models"
)

// allCacheKey is the fixed fingerprint for the full composite report.
const allCacheKey = "all"

// ScrapeAll runs every fetcher in sequence and assembles the composite
// report. Each fetcher receives only the current flag; date-range
// parameters never apply to a full aggregation. On success the report
// is cached under "all" and the last-updated stamp advances. On any
// fetcher error the partial result is discarded, nothing is cached
// here, and the error is returned unchanged.
func (s *Scraper) ScrapeAll(ctx context.Context, current bool) (*models.Report, error) {
	s.logger.Info("[scraper] Starting comprehensive data scrape (current=%t)", current)

	mps, err := s.ScrapeMPs(ctx, FetchOptions{Current: current})
	if err != nil {
		s.logger.Error("[scraper] Comprehensive scrape failed: %v", err)
		return nil, err
	}
	lords, err := s.ScrapeLords(ctx, FetchOptions{Current: current})
	if err != nil {
		s.logger.Error("[scraper] Comprehensive scrape failed: %v", err)
		return nil, err
	}
	roles, err := s.ScrapeGovernmentRoles(ctx, current)
	if err != nil {
		s.logger.Error("[scraper] Comprehensive scrape failed: %v", err)
		return nil, err
	}
	committees, err := s.ScrapeCommitteeMemberships(ctx, current)
	if err != nil {
		s.logger.Error("[scraper] Comprehensive scrape failed: %v", err)
		return nil, err
	}

	report := &models.Report{
		Metadata: models.Metadata{
			ScrapedAt:      s.now(),
			ScraperVersion: scraperVersion,
			DataSource:     dataSourceLabel,
		},
		MPs:                  mps,
		Lords:                lords,
		GovernmentRoles:      roles,
		CommitteeMemberships: committees,
		Summary: models.Summary{
			TotalMPs:             safeLen(mps),
			TotalLords:           safeLen(lords),
			TotalMPsGovRoles:     safeLen(roles.MPs),
			TotalLordsGovRoles:   safeLen(roles.Lords),
			TotalMPsCommittees:   safeLen(committees.MPs),
			TotalLordsCommittees: safeLen(committees.Lords),
		},
	}

	s.cache.Put(allCacheKey, report)
	s.mu.Lock()
	s.lastUpdated = s.now()
	s.mu.Unlock()

	s.logger.Info("[scraper] Scrape complete — found %d MPs and %d Lords",
		report.Summary.TotalMPs, report.Summary.TotalLords)
	return report, nil
}

// safeLen counts the records in a fetch result. Anything without a
// measurable length (nil sets, error strings, partial upstream
// responses) counts as zero rather than failing a report whose job is
// to be broadly available.
func safeLen(v any) int {
	switch t := v.(type) {
	case *models.RecordSet:
		return t.Len()
	case []models.Record:
		return len(t)
	}
	return 0
}

// CachedReport returns the composite report from the last successful
// ScrapeAll, if one is cached.
func (s *Scraper) CachedReport() (*models.Report, bool) {
	entry, ok := s.cache.Get(allCacheKey)
	if !ok {
		return nil, false
	}
	report, ok := entry.Data.(*models.Report)
	return report, ok
}

// LastUpdated reports when the last successful full aggregation
// finished. ok is false before the first one.
func (s *Scraper) LastUpdated() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated, !s.lastUpdated.IsZero()
}
