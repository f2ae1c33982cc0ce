package scraper

import (
	"context"

	"uk-parliament-scraper/models"
)

// End-date fields for the two locally filtered entity types.
const (
	govRoleEndField   = "government_incumbency_end_date"
	committeeEndField = "committee_membership_end_date"
)

// ScrapeGovernmentRoles fetches role incumbencies for both houses. The
// upstream source has no as-of-date query for roles, so current=true is
// applied locally against the incumbency end date.
func (s *Scraper) ScrapeGovernmentRoles(ctx context.Context, current bool) (*models.GovernmentRoles, error) {
	mpsTab, err := s.src.FetchMPsGovernmentRoles(ctx)
	if err != nil {
		s.logger.Error("[scraper] MPs government roles fetch failed: %v", err)
		return nil, err
	}
	lordsTab, err := s.src.FetchLordsGovernmentRoles(ctx)
	if err != nil {
		s.logger.Error("[scraper] Lords government roles fetch failed: %v", err)
		return nil, err
	}

	roles := &models.GovernmentRoles{
		MPs:   models.Normalize(mpsTab),
		Lords: models.Normalize(lordsTab),
	}
	if current {
		roles.MPs = currentOnly(roles.MPs, govRoleEndField)
		roles.Lords = currentOnly(roles.Lords, govRoleEndField)
	}

	s.cache.Put(pairFingerprint("government-roles", current), roles)
	return roles, nil
}

// ScrapeCommitteeMemberships fetches committee seats for both houses,
// filtered locally the same way as government roles.
func (s *Scraper) ScrapeCommitteeMemberships(ctx context.Context, current bool) (*models.CommitteeMemberships, error) {
	mpsTab, err := s.src.FetchMPsCommitteeMemberships(ctx)
	if err != nil {
		s.logger.Error("[scraper] MPs committee memberships fetch failed: %v", err)
		return nil, err
	}
	lordsTab, err := s.src.FetchLordsCommitteeMemberships(ctx)
	if err != nil {
		s.logger.Error("[scraper] Lords committee memberships fetch failed: %v", err)
		return nil, err
	}

	committees := &models.CommitteeMemberships{
		MPs:   models.Normalize(mpsTab),
		Lords: models.Normalize(lordsTab),
	}
	if current {
		committees.MPs = currentOnly(committees.MPs, committeeEndField)
		committees.Lords = currentOnly(committees.Lords, committeeEndField)
	}

	s.cache.Put(pairFingerprint("committees", current), committees)
	return committees, nil
}

// currentOnly applies the temporal filter to a normalized set, keeping
// the field order of the original.
func currentOnly(set *models.RecordSet, endDateField string) *models.RecordSet {
	if set == nil {
		return nil
	}
	return &models.RecordSet{
		Fields:  set.FieldOrder(),
		Records: filterCurrent(set.Records, endDateField),
	}
}
