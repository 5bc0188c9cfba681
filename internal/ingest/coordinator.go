package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dealscout/internal/listing"
	"dealscout/internal/scoring"
	"dealscout/pkg/logger"
)

// Store is the persistence surface the coordinator writes through.
type Store interface {
	// CreateIfNew atomically runs the duplicate check and, when the
	// candidate is new, the insert. Returns true when a row was
	// inserted.
	CreateIfNew(ctx context.Context, l *listing.Listing, isDuplicate listing.DuplicateCheck) (bool, error)
}

// SourceResult holds per-source counts for one import run.
type SourceResult struct {
	Source   string `json:"source"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Errors   int    `json:"errors"`

	// Err is set when the source's fetch failed and the batch was
	// abandoned. Per-record errors are counted, not raised.
	Err error `json:"-"`
}

// Coordinator runs the ingestion pipeline: fetch, normalize, dedup,
// score, persist. One instance per process; one Run per import.
type Coordinator struct {
	adapters []SourceAdapter
	store    Store
	logger   *logger.Logger

	// now is injectable for tests; scoring needs the current year.
	now func() time.Time
}

// NewCoordinator creates a new ingestion coordinator.
func NewCoordinator(adapters []SourceAdapter, store Store, log *logger.Logger) *Coordinator {
	return &Coordinator{
		adapters: adapters,
		store:    store,
		logger:   log.WithField("module", "ingest"),
		now:      time.Now,
	}
}

// Run imports from every configured source concurrently and returns
// per-source counts in adapter order.
func (c *Coordinator) Run(ctx context.Context, filters Filters) []SourceResult {
	results := make([]SourceResult, len(c.adapters))

	var wg sync.WaitGroup
	for i, adapter := range c.adapters {
		wg.Add(1)
		go func(i int, adapter SourceAdapter) {
			defer wg.Done()
			results[i] = c.RunSource(ctx, adapter, filters)
		}(i, adapter)
	}
	wg.Wait()

	return results
}

// RunSource imports one source's batch. Records are processed
// sequentially: the duplicate check and the insert must be atomic per
// provenance tag, and a later record's failure must not discard
// earlier accepted records.
func (c *Coordinator) RunSource(ctx context.Context, adapter SourceAdapter, filters Filters) SourceResult {
	source := adapter.Name()
	log := c.logger.WithField("source", source)
	result := SourceResult{Source: source}

	log.Info("Starting import")

	records, err := adapter.Fetch(ctx, filters)
	if err != nil {
		result.Err = &FetchError{Source: source, Err: err}
		log.WithError(err).Error("Fetch failed, batch abandoned")
		return result
	}

	profile := scoring.ProfileFor(source)
	currentYear := c.now().Year()

	for _, raw := range records {
		select {
		case <-ctx.Done():
			result.Err = ctx.Err()
			return result
		default:
		}

		l, fieldErrs := Normalize(source, raw)
		for _, fe := range fieldErrs {
			log.WithFields(map[string]interface{}{
				"external_id": raw.ExternalID,
				"field":       fe.Field,
				"value":       fe.Value,
			}).Warn("Rejected unparseable field")
		}

		if l.Name == "" {
			result.Errors++
			log.WithField("external_id", raw.ExternalID).Warn("Record has no name, skipped as error")
			continue
		}

		l.QualityScore = scoring.QualityScore(l, profile)
		l.RiskScore = scoring.RiskScore(l, profile, currentYear)

		created, err := c.store.CreateIfNew(ctx, &l, func(ctx context.Context, store listing.Lookup) (bool, error) {
			return IsDuplicate(ctx, l, store)
		})
		if err != nil {
			result.Errors++
			log.WithError(err).WithField("external_id", raw.ExternalID).Error("Failed to persist listing")
			continue
		}

		if !created {
			result.Skipped++
			log.WithField("external_id", raw.ExternalID).Debug("Duplicate skipped")
			continue
		}

		result.Imported++
		log.WithFields(map[string]interface{}{
			"listing_id":    l.ID,
			"quality_score": l.QualityScore,
			"risk_score":    l.RiskScore,
		}).Debug("Imported listing")
	}

	log.WithFields(map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   result.Errors,
	}).Info("Import completed")

	return result
}

// AdapterByName returns the configured adapter for a source name.
func (c *Coordinator) AdapterByName(source string) (SourceAdapter, error) {
	for _, a := range c.adapters {
		if a.Name() == source {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown source: %s", source)
}

// Sources returns the configured source names in order.
func (c *Coordinator) Sources() []string {
	names := make([]string, len(c.adapters))
	for i, a := range c.adapters {
		names[i] = a.Name()
	}
	return names
}
