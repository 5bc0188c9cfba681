package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscout/internal/listing"
	"dealscout/pkg/config"
	"dealscout/pkg/logger"
)

// fakeAdapter serves a canned batch.
type fakeAdapter struct {
	name    string
	records []RawRecord
	err     error
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(_ context.Context, _ Filters) ([]RawRecord, error) {
	return f.records, f.err
}

// memStore implements Store with the duplicate check wired to an
// in-memory fakeLookup, mirroring how the real repository runs the
// check inside the insert transaction.
type memStore struct {
	mu     sync.Mutex
	lookup *fakeLookup
	nextID int
}

func newMemStore() *memStore {
	return &memStore{lookup: newFakeLookup()}
}

func (m *memStore) CreateIfNew(ctx context.Context, l *listing.Listing, isDuplicate listing.DuplicateCheck) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dup, err := isDuplicate(ctx, m.lookup)
	if err != nil || dup {
		return false, err
	}

	m.nextID++
	l.ID = fmt.Sprintf("mem-%d", m.nextID)
	m.lookup.add(*l)
	return true, nil
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestRunSourceCounts(t *testing.T) {
	store := newMemStore()
	adapter := &fakeAdapter{
		name: "biznest",
		records: []RawRecord{
			{ExternalID: "BN-1", Name: "Hill Country Coffee Roasters", City: "Austin", State: "TX", AskingPrice: "$450,000"},
			{ExternalID: "BN-2", Name: "Main Street Laundromat", City: "Tulsa", State: "OK"},
			{ExternalID: "BN-1", Name: "Hill Country Coffee Roasters", City: "Austin", State: "TX"}, // same tag
			{ExternalID: "BN-3", Name: ""}, // no name
		},
	}

	c := NewCoordinator([]SourceAdapter{adapter}, store, testLogger())

	result := c.RunSource(context.Background(), adapter, Filters{})

	assert.Equal(t, "biznest", result.Source)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Errors)
	assert.NoError(t, result.Err)
}

func TestRunSourceScoresBeforePersist(t *testing.T) {
	store := newMemStore()
	adapter := &fakeAdapter{
		name: "biznest",
		records: []RawRecord{
			{
				ExternalID:      "BN-9",
				Name:            "Hill Country Coffee Roasters",
				AskingPrice:     "$450,000",
				AnnualRevenue:   "1.1M",
				CashFlow:        "180000",
				EstablishedYear: "2012",
				City:            "Austin",
				State:           "TX",
			},
		},
	}

	var persisted listing.Listing
	spy := &storeSpy{inner: store, onCreate: func(l listing.Listing) { persisted = l }}

	c := NewCoordinator([]SourceAdapter{adapter}, spy, testLogger())
	result := c.RunSource(context.Background(), adapter, Filters{})

	require.Equal(t, 1, result.Imported)
	assert.Greater(t, persisted.QualityScore, 0)
	assert.GreaterOrEqual(t, persisted.RiskScore, 0)
	assert.Equal(t, "$250K–$500K", persisted.PriceRange)
}

// storeSpy records what reaches the store.
type storeSpy struct {
	inner    Store
	onCreate func(listing.Listing)
}

func (s *storeSpy) CreateIfNew(ctx context.Context, l *listing.Listing, isDuplicate listing.DuplicateCheck) (bool, error) {
	created, err := s.inner.CreateIfNew(ctx, l, isDuplicate)
	if created {
		s.onCreate(*l)
	}
	return created, err
}

func TestRunSourceFetchFailureAbandonsBatch(t *testing.T) {
	store := newMemStore()
	adapter := &fakeAdapter{name: "flipnest", err: errors.New("connection refused")}

	c := NewCoordinator([]SourceAdapter{adapter}, store, testLogger())
	result := c.RunSource(context.Background(), adapter, Filters{})

	require.Error(t, result.Err)

	var fetchErr *FetchError
	require.ErrorAs(t, result.Err, &fetchErr)
	assert.Equal(t, "flipnest", fetchErr.Source)
	assert.Equal(t, 0, result.Imported)
}

func TestRunCrossSourceDedup(t *testing.T) {
	store := newMemStore()

	// The same physical business appears on two sources under different
	// external ids. Exactly one source wins the insert.
	biznest := &fakeAdapter{
		name: "biznest",
		records: []RawRecord{
			{ExternalID: "BN-1", Name: "Main Street Laundromat", City: "Tulsa", State: "OK"},
		},
	}
	dealboard := &fakeAdapter{
		name: "dealboard",
		records: []RawRecord{
			{ExternalID: "DB-1", Name: "main street laundromat", City: "Tulsa", State: "OK"},
		},
	}

	c := NewCoordinator([]SourceAdapter{biznest, dealboard}, store, testLogger())
	results := c.Run(context.Background(), Filters{})

	require.Len(t, results, 2)
	assert.Equal(t, "biznest", results[0].Source)
	assert.Equal(t, "dealboard", results[1].Source)

	totalImported := results[0].Imported + results[1].Imported
	totalSkipped := results[0].Skipped + results[1].Skipped
	assert.Equal(t, 1, totalImported)
	assert.Equal(t, 1, totalSkipped)
}

func TestAdapterByName(t *testing.T) {
	c := NewCoordinator([]SourceAdapter{
		&fakeAdapter{name: "biznest"},
		&fakeAdapter{name: "flipnest"},
	}, newMemStore(), testLogger())

	a, err := c.AdapterByName("flipnest")
	require.NoError(t, err)
	assert.Equal(t, "flipnest", a.Name())

	_, err = c.AdapterByName("nope")
	assert.Error(t, err)

	assert.Equal(t, []string{"biznest", "flipnest"}, c.Sources())
}
