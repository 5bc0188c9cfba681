package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantNil bool
		wantErr bool
	}{
		{"plain number", "250000", 250_000, false, false},
		{"dollar sign and commas", "$1,250,000", 1_250_000, false, false},
		{"decimal", "99999.50", 99_999.50, false, false},
		{"k suffix", "85K", 85_000, false, false},
		{"lowercase k suffix", "85k", 85_000, false, false},
		{"m suffix", "1.2M", 1_200_000, false, false},
		{"dollar and m suffix", "$2.5M", 2_500_000, false, false},
		{"internal spaces", "$ 250 000", 250_000, false, false},
		{"empty means absent", "", 0, true, false},
		{"whitespace means absent", "   ", 0, true, false},
		{"negative rejected", "-5000", 0, false, true},
		{"text rejected", "call for price", 0, false, true},
		{"bare dollar rejected", "$", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMoney(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantNil bool
		wantErr bool
	}{
		{"2010", 2010, false, false},
		{"1985", 1985, false, false},
		{"", 0, true, false},
		{"10", 0, false, true},
		{"3000", 0, false, true},
		{"since forever", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseYear(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNormalize(t *testing.T) {
	raw := RawRecord{
		ExternalID:      "BN-10021",
		Name:            "  Hill Country Coffee Roasters ",
		Industry:        "Food & Beverage",
		AskingPrice:     "$450,000",
		AnnualRevenue:   "1.1M",
		CashFlow:        "180000",
		EstablishedYear: "2012",
		City:            "Austin",
		State:           "TX",
		BrokerName:      "J. Alvarez",
		ListingURL:      "https://www.biznest.com/listing/BN-10021",
		Description:     "Established roastery with wholesale accounts.",
	}

	l, fieldErrs := Normalize("biznest", raw)

	assert.Empty(t, fieldErrs)
	assert.Equal(t, "Hill Country Coffee Roasters", l.Name)
	assert.Equal(t, []string{"biznest:BN-10021"}, l.Sources)

	require.NotNil(t, l.Financial.AskingPrice)
	assert.Equal(t, 450_000.0, *l.Financial.AskingPrice)
	require.NotNil(t, l.Financial.AnnualRevenue)
	assert.Equal(t, 1_100_000.0, *l.Financial.AnnualRevenue)
	require.NotNil(t, l.Financial.EstablishedYear)
	assert.Equal(t, 2012, *l.Financial.EstablishedYear)

	// Derived price range follows the asking price.
	assert.Equal(t, "$250K–$500K", l.PriceRange)
}

func TestNormalizeRejectsBadFieldsKeepsRecord(t *testing.T) {
	raw := RawRecord{
		ExternalID:    "DB-77",
		Name:          "Main Street Laundromat",
		AskingPrice:   "make me an offer",
		AnnualRevenue: "250000",
	}

	l, fieldErrs := Normalize("dealboard", raw)

	// The bad field is reported and left absent, not coerced to zero.
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "asking_price", fieldErrs[0].Field)
	assert.Nil(t, l.Financial.AskingPrice)
	assert.Empty(t, l.PriceRange)

	// Good fields on the same record survive.
	require.NotNil(t, l.Financial.AnnualRevenue)
	assert.Equal(t, 250_000.0, *l.Financial.AnnualRevenue)
}

func TestNormalizeAbsentFinancialsStayAbsent(t *testing.T) {
	l, fieldErrs := Normalize("flipnest", RawRecord{ExternalID: "fn-1", Name: "SaaS Tool"})

	assert.Empty(t, fieldErrs)
	assert.Nil(t, l.Financial.AskingPrice)
	assert.Nil(t, l.Financial.AnnualRevenue)
	assert.Nil(t, l.Financial.CashFlow)
	assert.Nil(t, l.Financial.EstablishedYear)
	assert.False(t, l.Financial.HasRevenue())
	assert.False(t, l.Financial.HasProfit())
}
