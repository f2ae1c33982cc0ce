// Package scraper aggregates, filters, caches, and exports UK
// parliamentary membership data fetched through a RecordSource.
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"uk-parliament-scraper/models"
	"uk-parliament-scraper/source"
	"uk-parliament-scraper/storage"
	"uk-parliament-scraper/utils"
)

const (
	scraperVersion  = "1.0.0"
	dataSourceLabel = "UK Parliament API"

	dateLayout = "2006-01-02"
)

// FetchOptions selects which slice of an entity's history to fetch.
// Dates are YYYY-MM-DD strings; empty means not supplied. From, to, and
// on dates are independent and combinable; their interpretation belongs
// to the record source.
type FetchOptions struct {
	Current  bool
	FromDate string
	ToDate   string
	OnDate   string
}

// Scraper fetches parliamentary data through a RecordSource, memoizes
// results in its cache, and exports them as CSV artifacts. Every fetch
// goes to the source; the cache is written through afterward, never
// consulted to skip a fetch.
type Scraper struct {
	src    source.RecordSource
	writer storage.RecordWriter
	cache  *Cache
	logger *utils.Logger
	now    func() time.Time

	mu          sync.Mutex
	lastUpdated time.Time
}

// New creates a Scraper around the given source, export writer, and
// cache.
func New(src source.RecordSource, writer storage.RecordWriter, cache *Cache, logger *utils.Logger) *Scraper {
	return &Scraper{
		src:    src,
		writer: writer,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// ScrapeMPs fetches House of Commons members. The normalized result is
// cached under the request fingerprint and returned. Source errors are
// logged and returned unchanged.
func (s *Scraper) ScrapeMPs(ctx context.Context, opts FetchOptions) (*models.RecordSet, error) {
	tab, err := s.src.FetchMPs(ctx, s.sourceQuery(opts))
	if err != nil {
		s.logger.Error("[scraper] MPs fetch failed: %v", err)
		return nil, err
	}

	set := models.Normalize(tab)
	s.cache.Put(rosterFingerprint("mps", opts), set)
	return set, nil
}

// ScrapeLords fetches House of Lords members with the same parameter
// handling as ScrapeMPs.
func (s *Scraper) ScrapeLords(ctx context.Context, opts FetchOptions) (*models.RecordSet, error) {
	tab, err := s.src.FetchLords(ctx, s.sourceQuery(opts))
	if err != nil {
		s.logger.Error("[scraper] Lords fetch failed: %v", err)
		return nil, err
	}

	set := models.Normalize(tab)
	s.cache.Put(rosterFingerprint("lords", opts), set)
	return set, nil
}

// sourceQuery maps roster fetch options onto a source query. Explicit
// dates pass through verbatim. Current without an explicit on-date
// synthesizes today's UTC date, since the source's native primitive for
// "serving right now" is "who was serving on date X". An explicit
// on-date always wins over the synthesized one.
func (s *Scraper) sourceQuery(opts FetchOptions) source.Query {
	q := source.Query{
		FromDate: opts.FromDate,
		ToDate:   opts.ToDate,
		OnDate:   opts.OnDate,
	}
	if opts.Current && q.OnDate == "" {
		q.OnDate = s.now().UTC().Format(dateLayout)
	}
	return q
}

// rosterFingerprint builds the cache key for a roster fetch from the
// caller's parameters. The synthesized on-date never enters the key,
// only what the caller supplied.
func rosterFingerprint(entity string, opts FetchOptions) string {
	return fmt.Sprintf("%s_current_%t_from_%s_to_%s_on_%s",
		entity, opts.Current, orNone(opts.FromDate), orNone(opts.ToDate), orNone(opts.OnDate))
}

// pairFingerprint builds the cache key for the two-sided role and
// committee fetches, which only carry the current flag.
func pairFingerprint(entity string, current bool) string {
	return fmt.Sprintf("%s_current_%t", entity, current)
}

func orNone(date string) string {
	if date == "" {
		return "none"
	}
	return date
}
