package scraper

import (
	"context"
	"errors"
	"fmt"

	"uk-parliament-scraper/models"
)

// ErrUnknownDataType is returned for export requests naming an
// unrecognized entity type. No fetch happens in that case.
var ErrUnknownDataType = errors.New("scraper: unknown data type")

const exportTimestampLayout = "20060102_150405"

// CSV file prefixes, one per logical table.
const (
	prefixMPs             = "uk_mps"
	prefixLords           = "uk_lords"
	prefixMPsGovRoles     = "uk_mps_government_roles"
	prefixLordsGovRoles   = "uk_lords_government_roles"
	prefixMPsCommittees   = "uk_mps_committee_memberships"
	prefixLordsCommittees = "uk_lords_committee_memberships"
)

// ExportCSV fetches the requested data type and writes each table to
// its own CSV file, returning the artifact paths in the order written.
// Every file from one call shares the same UTC run timestamp. "all"
// runs a full aggregation and writes up to six files; "mps" and "lords"
// forward the complete options to one roster fetch; "government-roles"
// and "committees" forward only the current flag and write one file per
// populated side. Tables that were never fetched (nil sets) are
// skipped. Files already written when a later write fails are left in
// place.
func (s *Scraper) ExportCSV(ctx context.Context, dataType string, opts FetchOptions) ([]string, error) {
	timestamp := s.now().UTC().Format(exportTimestampLayout)
	var exported []string

	write := func(prefix string, set *models.RecordSet) error {
		if set == nil {
			return nil
		}
		path, err := s.writer.WriteRecords(set, prefix+"_"+timestamp+".csv")
		if err != nil {
			s.logger.Error("[export] Writing %s failed: %v", prefix, err)
			return err
		}
		exported = append(exported, path)
		return nil
	}

	switch dataType {
	case "all":
		report, err := s.ScrapeAll(ctx, opts.Current)
		if err != nil {
			return nil, err
		}
		tables := []struct {
			prefix string
			set    *models.RecordSet
		}{
			{prefixMPs, report.MPs},
			{prefixLords, report.Lords},
			{prefixMPsGovRoles, report.GovernmentRoles.MPs},
			{prefixLordsGovRoles, report.GovernmentRoles.Lords},
			{prefixMPsCommittees, report.CommitteeMemberships.MPs},
			{prefixLordsCommittees, report.CommitteeMemberships.Lords},
		}
		for _, t := range tables {
			if err := write(t.prefix, t.set); err != nil {
				return exported, err
			}
		}

	case "mps":
		set, err := s.ScrapeMPs(ctx, opts)
		if err != nil {
			return nil, err
		}
		if err := write(prefixMPs, set); err != nil {
			return exported, err
		}

	case "lords":
		set, err := s.ScrapeLords(ctx, opts)
		if err != nil {
			return nil, err
		}
		if err := write(prefixLords, set); err != nil {
			return exported, err
		}

	case "government-roles":
		roles, err := s.ScrapeGovernmentRoles(ctx, opts.Current)
		if err != nil {
			return nil, err
		}
		if err := write(prefixMPsGovRoles, roles.MPs); err != nil {
			return exported, err
		}
		if err := write(prefixLordsGovRoles, roles.Lords); err != nil {
			return exported, err
		}

	case "committees":
		committees, err := s.ScrapeCommitteeMemberships(ctx, opts.Current)
		if err != nil {
			return nil, err
		}
		if err := write(prefixMPsCommittees, committees.MPs); err != nil {
			return exported, err
		}
		if err := write(prefixLordsCommittees, committees.Lords); err != nil {
			return exported, err
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataType, dataType)
	}

	s.logger.Info("[export] Exported %d CSV files", len(exported))
	return exported, nil
}
