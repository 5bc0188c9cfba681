package biznest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `
<html><body>
<div class="search-results">
  <div class="listing-card" data-listing-id="BN-10021">
    <h3 class="listing-title">Hill Country Coffee Roasters</h3>
    <span class="listing-industry">Food &amp; Beverage</span>
    <span class="asking-price">$450,000</span>
    <span class="cash-flow">$180,000</span>
    <span class="listing-location">Austin, TX</span>
    <span class="established">Est. 2012</span>
    <span class="broker-name">J. Alvarez</span>
    <span class="broker-phone">512-555-0100</span>
    <p class="listing-teaser">Established roastery with wholesale accounts.</p>
    <a class="listing-link" href="/listing/BN-10021">View listing</a>
  </div>
  <div class="listing-card" data-listing-id="BN-10022">
    <h3 class="listing-title">Newsletter Empire</h3>
    <span class="listing-industry">Media &amp; Publishing</span>
    <span class="asking-price">$85K</span>
    <span class="listing-location">Remote</span>
    <a class="listing-link" href="https://www.biznest.com/listing/BN-10022">View listing</a>
  </div>
  <div class="listing-card">
    <h3 class="listing-title">Card without an id is skipped</h3>
  </div>
</div>
</body></html>`

func TestParseListings(t *testing.T) {
	records, err := parseListings(strings.NewReader(samplePage), "https://www.biznest.com")
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "BN-10021", first.ExternalID)
	assert.Equal(t, "Hill Country Coffee Roasters", first.Name)
	assert.Equal(t, "Food & Beverage", first.Industry)
	assert.Equal(t, "$450,000", first.AskingPrice)
	assert.Equal(t, "$180,000", first.CashFlow)
	assert.Equal(t, "Austin", first.City)
	assert.Equal(t, "TX", first.State)
	assert.Equal(t, "2012", first.EstablishedYear)
	assert.Equal(t, "J. Alvarez", first.BrokerName)
	assert.Equal(t, "512-555-0100", first.BrokerPhone)

	// Relative links are resolved against the site base.
	assert.Equal(t, "https://www.biznest.com/listing/BN-10021", first.ListingURL)

	second := records[1]
	assert.Equal(t, "BN-10022", second.ExternalID)
	assert.Equal(t, "Remote", second.City)
	assert.Empty(t, second.State)

	// Absolute links pass through untouched.
	assert.Equal(t, "https://www.biznest.com/listing/BN-10022", second.ListingURL)
}

func TestParseListingsEmptyPage(t *testing.T) {
	records, err := parseListings(strings.NewReader("<html><body></body></html>"), "https://www.biznest.com")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		input     string
		wantCity  string
		wantState string
	}{
		{"Austin, TX", "Austin", "TX"},
		{"Remote", "Remote", ""},
		{"  Tulsa ,  OK ", "Tulsa", "OK"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			city, state := splitLocation(tt.input)
			assert.Equal(t, tt.wantCity, city)
			assert.Equal(t, tt.wantState, state)
		})
	}
}
