// Package source defines the boundary to the upstream parliamentary
// data provider. The engine only ever talks to a RecordSource; where
// the tables actually come from is an implementation detail.
package source

import (
	"context"

	"uk-parliament-scraper/models"
)

// Query carries the optional date parameters for roster fetches. Empty
// strings mean "not supplied". Dates are YYYY-MM-DD; how a range or an
// on-date combination is interpreted is delegated to the
// implementation.
type Query struct {
	FromDate string
	ToDate   string
	OnDate   string
}

// RecordSource supplies the raw tables for every entity type. The two
// roster fetches accept date parameters; the role and committee fetches
// have no date-aware query upstream and accept none.
type RecordSource interface {
	FetchMPs(ctx context.Context, q Query) (models.Tabular, error)
	FetchLords(ctx context.Context, q Query) (models.Tabular, error)
	FetchMPsGovernmentRoles(ctx context.Context) (models.Tabular, error)
	FetchLordsGovernmentRoles(ctx context.Context) (models.Tabular, error)
	FetchMPsCommitteeMemberships(ctx context.Context) (models.Tabular, error)
	FetchLordsCommitteeMemberships(ctx context.Context) (models.Tabular, error)
}
