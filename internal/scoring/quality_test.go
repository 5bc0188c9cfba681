package scoring

import (
	"strings"
	"testing"

	"dealscout/internal/listing"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestQualityScore(t *testing.T) {
	tests := []struct {
		name    string
		listing listing.Listing
		profile SourceProfile
		want    int
	}{
		{
			name:    "empty listing scores zero",
			listing: listing.Listing{},
			profile: DefaultProfile,
			want:    0,
		},
		{
			name: "asking price only",
			listing: listing.Listing{
				Financial: listing.FinancialData{AskingPrice: fptr(100_000)},
			},
			profile: DefaultProfile,
			want:    10,
		},
		{
			name: "monthly revenue counts as revenue",
			listing: listing.Listing{
				Financial: listing.FinancialData{MonthlyRevenue: fptr(10_000)},
			},
			profile: DefaultProfile,
			want:    10,
		},
		{
			name: "broker email without name still earns identity points",
			listing: listing.Listing{
				Contact: listing.ContactInfo{BrokerEmail: "broker@example.com"},
			},
			profile: DefaultProfile,
			want:    10,
		},
		{
			name: "city without state earns nothing",
			listing: listing.Listing{
				Location: listing.Location{City: "Austin"},
			},
			profile: DefaultProfile,
			want:    0,
		},
		{
			name: "city and state at default points",
			listing: listing.Listing{
				Location: listing.Location{City: "Austin", State: "TX"},
			},
			profile: DefaultProfile,
			want:    10,
		},
		{
			name: "city and state on dealboard profile",
			listing: listing.Listing{
				Location: listing.Location{City: "Austin", State: "TX"},
			},
			profile: ProfileFor("dealboard"),
			want:    0, // 15 - 15 adjustment
		},
		{
			name: "short description",
			listing: listing.Listing{
				Contact: listing.ContactInfo{Description: "Great business."},
			},
			profile: DefaultProfile,
			want:    5,
		},
		{
			name: "long description",
			listing: listing.Listing{
				Contact: listing.ContactInfo{Description: strings.Repeat("x", 101)},
			},
			profile: DefaultProfile,
			want:    10,
		},
		{
			name: "biznest bonus applied",
			listing: listing.Listing{
				Financial: listing.FinancialData{AskingPrice: fptr(100_000)},
			},
			profile: ProfileFor("biznest"),
			want:    20, // 10 + 10 bonus
		},
		{
			name: "full record on biznest clamps at 100",
			listing: listing.Listing{
				Financial: listing.FinancialData{
					AskingPrice:     fptr(450_000),
					AnnualRevenue:   fptr(1_100_000),
					CashFlow:        fptr(180_000),
					EstablishedYear: iptr(2012),
				},
				Contact: listing.ContactInfo{
					BrokerName:  "J. Alvarez",
					BrokerPhone: "512-555-0100",
					ListingURL:  "https://www.biznest.com/listing/BN-1",
					Description: strings.Repeat("Wholesale accounts and loyal subscription customers. ", 3),
				},
				Location: listing.Location{City: "Austin", State: "TX", Zip: "78701"},
			},
			profile: ProfileFor("biznest"),
			want:    100, // 90 base + 10 bonus, clamped
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QualityScore(tt.listing, tt.profile)
			if got != tt.want {
				t.Errorf("QualityScore() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("QualityScore() = %d, out of [0, 100]", got)
			}
		})
	}
}

func TestProfileFor(t *testing.T) {
	p := ProfileFor("biznest")
	if p.QualityAdjustment != 10 || p.RiskAdjustment != -5 {
		t.Errorf("unexpected biznest profile: %+v", p)
	}

	p = ProfileFor("dealboard")
	if p.QualityAdjustment != -15 || p.RiskAdjustment != 15 || p.CityStatePoints != 15 {
		t.Errorf("unexpected dealboard profile: %+v", p)
	}

	// Unknown sources score with the neutral default.
	p = ProfileFor("craigslist")
	if p.QualityAdjustment != 0 || p.RiskAdjustment != 0 || p.CityStatePoints != 10 {
		t.Errorf("unexpected default profile: %+v", p)
	}
	if p.Name != "craigslist" {
		t.Errorf("expected profile name craigslist, got %s", p.Name)
	}
}
