package ingest

import (
	"context"
	"fmt"
)

// RawRecord is one listing in a source's native shape. Values are kept
// as the source produced them; the normalizer owns all parsing.
type RawRecord struct {
	ExternalID string

	Name     string
	Industry string

	Address string
	City    string
	State   string
	Zip     string
	Country string

	AskingPrice       string
	AnnualRevenue     string
	CashFlow          string
	GrossProfitMargin string
	EstablishedYear   string
	Employees         string
	MonthlyRevenue    string
	MonthlyProfit     string
	AskingMultiple    string

	BrokerName      string
	BrokerEmail     string
	BrokerPhone     string
	ListingURL      string
	Description     string
	SellerFinancing *bool
}

// Filters narrows what a source adapter fetches in one run.
type Filters struct {
	Keyword  string
	Industry string
	State    string
	MaxPages int
}

// SourceAdapter produces source-native listing records for one external
// source. Pacing, retries and parsing of the remote format are the
// adapter's own concern.
type SourceAdapter interface {
	// Name returns the source name used in provenance tags.
	Name() string

	// Fetch returns the raw records matching the filters. The returned
	// batch is finite and not restartable.
	Fetch(ctx context.Context, filters Filters) ([]RawRecord, error)
}

// FetchError wraps a network or parse failure in one source. The
// failing source's batch is abandoned; other sources proceed.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
