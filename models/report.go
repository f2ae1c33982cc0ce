package models

import "time"

// Metadata describes one aggregation run.
type Metadata struct {
	ScrapedAt      time.Time `json:"scraped_at"`
	ScraperVersion string    `json:"scraper_version"`
	DataSource     string    `json:"data_source"`
}

// GovernmentRoles pairs the government role incumbencies held by
// members of each house.
type GovernmentRoles struct {
	MPs   *RecordSet `json:"mps_government_roles"`
	Lords *RecordSet `json:"lords_government_roles"`
}

// CommitteeMemberships pairs the committee seats held by members of
// each house.
type CommitteeMemberships struct {
	MPs   *RecordSet `json:"mps_committee_memberships"`
	Lords *RecordSet `json:"lords_committee_memberships"`
}

// Summary holds the per-table record counts. It is computed when the
// report is assembled and never mutated afterward.
type Summary struct {
	TotalMPs             int `json:"total_mps"`
	TotalLords           int `json:"total_lords"`
	TotalMPsGovRoles     int `json:"total_mps_gov_roles"`
	TotalLordsGovRoles   int `json:"total_lords_gov_roles"`
	TotalMPsCommittees   int `json:"total_mps_committee_memberships"`
	TotalLordsCommittees int `json:"total_lords_committee_memberships"`
}

// Report is the composite result of aggregating every entity type.
type Report struct {
	Metadata             Metadata              `json:"metadata"`
	MPs                  *RecordSet            `json:"members_of_parliament"`
	Lords                *RecordSet            `json:"house_of_lords"`
	GovernmentRoles      *GovernmentRoles      `json:"government_roles"`
	CommitteeMemberships *CommitteeMemberships `json:"committee_memberships"`
	Summary              Summary               `json:"summary"`
}
