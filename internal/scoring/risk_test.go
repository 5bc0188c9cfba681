package scoring

import (
	"testing"

	"dealscout/internal/listing"
)

const testYear = 2025

func TestRiskScoreAgeBaseline(t *testing.T) {
	revenue := 500_000.0

	tests := []struct {
		name string
		year *int
		want int
	}{
		{"brand new", iptr(2025), 30},
		{"one year old", iptr(2024), 25},
		{"two years old", iptr(2023), 15},
		{"four years old", iptr(2021), 15},
		{"five years old", iptr(2020), 10},
		{"nine years old", iptr(2016), 10},
		{"ten years old", iptr(2015), 5},
		{"decades old", iptr(1990), 5},
		{"future year treated as new", iptr(2030), 30},
		{"missing year treated as new", nil, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listing.Listing{
				Financial: listing.FinancialData{
					EstablishedYear: tt.year,
					AnnualRevenue:   &revenue,
				},
			}

			got := RiskScore(l, DefaultProfile, testYear)
			if got != tt.want {
				t.Errorf("RiskScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRiskScorePenalties(t *testing.T) {
	revenue := 500_000.0

	tests := []struct {
		name    string
		listing listing.Listing
		profile SourceProfile
		want    int
	}{
		{
			name: "no revenue adds 20",
			listing: listing.Listing{
				Financial: listing.FinancialData{EstablishedYear: iptr(2010)},
			},
			profile: DefaultProfile,
			want:    25, // 5 baseline + 20
		},
		{
			name: "high risk industry adds 10",
			listing: listing.Listing{
				Industry:  "Restaurant",
				Financial: listing.FinancialData{EstablishedYear: iptr(2010), AnnualRevenue: &revenue},
			},
			profile: DefaultProfile,
			want:    15, // 5 + 10
		},
		{
			name: "industry match is exact, not substring",
			listing: listing.Listing{
				Industry:  "Retail Technology",
				Financial: listing.FinancialData{EstablishedYear: iptr(2010), AnnualRevenue: &revenue},
			},
			profile: DefaultProfile,
			want:    5,
		},
		{
			name: "remote business adds 5",
			listing: listing.Listing{
				Location:  listing.Location{City: "Remote"},
				Financial: listing.FinancialData{EstablishedYear: iptr(2010), AnnualRevenue: &revenue},
			},
			profile: DefaultProfile,
			want:    10, // 5 + 5
		},
		{
			name: "biznest reliability credit",
			listing: listing.Listing{
				Financial: listing.FinancialData{EstablishedYear: iptr(2010), AnnualRevenue: &revenue},
			},
			profile: ProfileFor("biznest"),
			want:    0, // 5 - 5, clamped at zero
		},
		{
			name: "dealboard penalty stacks",
			listing: listing.Listing{
				Industry:  "retail",
				Financial: listing.FinancialData{EstablishedYear: iptr(2024)},
			},
			profile: ProfileFor("dealboard"),
			want:    70, // 25 + 20 + 15 + 10
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RiskScore(tt.listing, tt.profile, testYear)
			if got != tt.want {
				t.Errorf("RiskScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("RiskScore() = %d, out of [0, 100]", got)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if clamp(-10) != 0 {
		t.Error("expected negative scores to clamp to 0")
	}
	if clamp(150) != 100 {
		t.Error("expected scores over 100 to clamp to 100")
	}
	if clamp(42) != 42 {
		t.Error("expected in-range score to pass through")
	}
}
