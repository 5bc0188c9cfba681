package diligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscout/internal/listing"
)

const testYear = 2025

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestGrade(t *testing.T) {
	tests := []struct {
		composite int
		want      string
	}{
		{0, "A"},
		{20, "A"},
		{21, "B"},
		{40, "B"},
		{41, "C"},
		{60, "C"},
		{61, "D"},
		{80, "D"},
		{81, "F"},
		{100, "F"},
	}

	for _, tt := range tests {
		if got := Grade(tt.composite); got != tt.want {
			t.Errorf("Grade(%d) = %q, want %q", tt.composite, got, tt.want)
		}
	}
}

func TestAssessEstablishedRetailBusiness(t *testing.T) {
	l := listing.Listing{
		Name:     "Hill Country Outfitters",
		Industry: "Retail",
		Location: listing.Location{City: "Austin", State: "TX"},
		Financial: listing.FinancialData{
			AskingPrice:     fptr(300_000),
			AnnualRevenue:   fptr(600_000),
			CashFlow:        fptr(120_000),
			EstablishedYear: iptr(2010),
		},
		QualityScore: 85,
	}

	got := Assess(l, testYear)

	// Healthy margin and 15 years of history pull financial risk down;
	// the declining retail market pushes market risk up.
	assert.Equal(t, 25, got.Components.FinancialHealth)
	assert.Equal(t, 30, got.Components.LegalRisk)
	assert.Equal(t, 20, got.Components.OperationalRisk)
	assert.Equal(t, 65, got.Components.MarketRisk)

	assert.Equal(t, 33, got.CompositeScore)
	assert.Equal(t, "B", got.Grade)
}

func TestFinancialHealth(t *testing.T) {
	tests := []struct {
		name string
		fin  listing.FinancialData
		want int
	}{
		{
			name: "no data stays at baseline",
			fin:  listing.FinancialData{},
			want: 50,
		},
		{
			name: "large revenue with strong margin",
			fin: listing.FinancialData{
				AnnualRevenue: fptr(2_000_000),
				CashFlow:      fptr(400_000), // 20% margin
			},
			want: 25, // 50 - 10 - 15
		},
		{
			name: "small revenue with thin margin",
			fin: listing.FinancialData{
				AnnualRevenue: fptr(100_000),
				CashFlow:      fptr(2_000), // 2% margin
			},
			want: 85, // 50 + 15 + 20
		},
		{
			name: "margin ignored when cash flow unknown",
			fin: listing.FinancialData{
				AnnualRevenue: fptr(2_000_000),
			},
			want: 40, // 50 - 10
		},
		{
			name: "young business",
			fin: listing.FinancialData{
				EstablishedYear: iptr(2024),
			},
			want: 65, // 50 + 15
		},
		{
			name: "worst case clamps at 100",
			fin: listing.FinancialData{
				AnnualRevenue:   fptr(100_000),
				CashFlow:        fptr(1_000),
				EstablishedYear: iptr(2024),
			},
			want: 100, // 50 + 15 + 20 + 15
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := financialHealth(listing.Listing{Financial: tt.fin}, testYear)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLegalRisk(t *testing.T) {
	tests := []struct {
		industry string
		want     int
	}{
		{"Landscaping", 30},
		{"Cannabis Dispensary", 60},
		{"Cryptocurrency Exchange", 60},
		{"Healthcare Services", 45},
		{"Food Service", 45},
		{"", 30},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			assert.Equal(t, tt.want, legalRisk(tt.industry))
		})
	}
}

func TestOperationalRisk(t *testing.T) {
	tests := []struct {
		name    string
		state   string
		quality int
		want    int
	}{
		{"friendly state high quality", "TX", 85, 20},
		{"friendly state low quality", "FL", 30, 50},
		{"challenging state", "CA", 60, 50},
		{"neutral state", "OH", 60, 40},
		{"lowercase state still matches", "tx", 60, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := listing.Listing{
				Location:     listing.Location{State: tt.state},
				QualityScore: tt.quality,
			}
			assert.Equal(t, tt.want, operationalRisk(l))
		})
	}
}

func TestMarketRisk(t *testing.T) {
	tests := []struct {
		industry string
		want     int
	}{
		{"Technology", 30},
		{"E-commerce", 30},
		{"Retail", 65},
		{"Print Media", 65},
		{"Landscaping", 45},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			assert.Equal(t, tt.want, marketRisk(tt.industry))
		})
	}
}

func TestAssessSBA(t *testing.T) {
	tests := []struct {
		name          string
		listing       listing.Listing
		wantQualified bool
		wantScore     float64
		wantMaxLoan   float64
	}{
		{
			name: "qualified small business",
			listing: listing.Listing{
				Industry: "Landscaping",
				Financial: listing.FinancialData{
					AskingPrice:   fptr(1_000_000),
					AnnualRevenue: fptr(600_000),
				},
			},
			wantQualified: true,
			wantScore:     1.0,
			wantMaxLoan:   900_000, // 90% of price
		},
		{
			name: "loan capped at program maximum",
			listing: listing.Listing{
				Industry: "Manufacturing",
				Financial: listing.FinancialData{
					AskingPrice:   fptr(10_000_000),
					AnnualRevenue: fptr(20_000_000),
				},
			},
			wantQualified: true,
			wantScore:     1.0,
			wantMaxLoan:   5_000_000,
		},
		{
			name: "ineligible industry",
			listing: listing.Listing{
				Industry: "Gambling",
				Financial: listing.FinancialData{
					AskingPrice:   fptr(500_000),
					AnnualRevenue: fptr(600_000),
				},
			},
			wantQualified: false,
			wantScore:     2.0 / 3,
			wantMaxLoan:   450_000,
		},
		{
			name: "revenue over size standard",
			listing: listing.Listing{
				Industry: "Logistics",
				Financial: listing.FinancialData{
					AskingPrice:   fptr(20_000_000),
					AnnualRevenue: fptr(40_000_000),
				},
			},
			wantQualified: false,
			wantScore:     2.0 / 3,
			wantMaxLoan:   5_000_000,
		},
		{
			name: "unknown revenue fails financial check only",
			listing: listing.Listing{
				Industry:  "Landscaping",
				Financial: listing.FinancialData{AskingPrice: fptr(200_000)},
			},
			wantQualified: false,
			wantScore:     2.0 / 3,
			wantMaxLoan:   180_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessSBA(tt.listing)
			assert.Equal(t, tt.wantQualified, got.Qualified)
			assert.InDelta(t, tt.wantScore, got.QualificationScore, 1e-9)
			assert.Equal(t, tt.wantMaxLoan, got.MaxLoanAmount)
		})
	}
}

func TestProjectROI(t *testing.T) {
	l := listing.Listing{
		Financial: listing.FinancialData{
			AnnualRevenue: fptr(600_000),
			CashFlow:      fptr(120_000),
		},
	}

	got := ProjectROI(l, 300_000, 33)

	assert.InDelta(t, 40.0, got.ProjectedROI, 1e-9)
	assert.InDelta(t, 30.0, got.BreakEvenMonths, 1e-9)
	assert.InDelta(t, 40.0*0.67, got.RiskAdjustedReturn, 1e-9)
	assert.InDelta(t, 28.0, got.ConfidenceInterval.Low, 1e-9)
	assert.InDelta(t, 52.0, got.ConfidenceInterval.High, 1e-9)
}

func TestProjectROIRiskAdjustmentFloor(t *testing.T) {
	l := listing.Listing{
		Financial: listing.FinancialData{
			AnnualRevenue: fptr(600_000),
			CashFlow:      fptr(120_000),
		},
	}

	// Composite 90 would imply a 0.1 multiplier; the floor holds it at 0.5.
	got := ProjectROI(l, 300_000, 90)
	assert.InDelta(t, 20.0, got.RiskAdjustedReturn, 1e-9)
}

func TestProjectROIDegradesToZeros(t *testing.T) {
	base := listing.Listing{
		Financial: listing.FinancialData{
			AnnualRevenue: fptr(600_000),
			CashFlow:      fptr(120_000),
		},
	}

	tests := []struct {
		name       string
		listing    listing.Listing
		investment float64
	}{
		{
			name:       "missing cash flow",
			listing:    listing.Listing{Financial: listing.FinancialData{AnnualRevenue: fptr(600_000)}},
			investment: 300_000,
		},
		{
			name: "zero cash flow",
			listing: listing.Listing{Financial: listing.FinancialData{
				AnnualRevenue: fptr(600_000),
				CashFlow:      fptr(0),
			}},
			investment: 300_000,
		},
		{
			name:       "missing revenue",
			listing:    listing.Listing{Financial: listing.FinancialData{CashFlow: fptr(120_000)}},
			investment: 300_000,
		},
		{
			name:       "non-positive investment",
			listing:    base,
			investment: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectROI(tt.listing, tt.investment, 33)
			assert.Equal(t, ROIProjection{}, got)
		})
	}
}

func TestEvaluate(t *testing.T) {
	l := listing.Listing{
		Name:     "Hill Country Outfitters",
		Industry: "Retail",
		Location: listing.Location{City: "Austin", State: "TX"},
		Financial: listing.FinancialData{
			AskingPrice:     fptr(300_000),
			AnnualRevenue:   fptr(600_000),
			CashFlow:        fptr(120_000),
			EstablishedYear: iptr(2010),
		},
		QualityScore: 85,
	}

	assessment, roi, sba := Evaluate(l, 300_000, testYear)

	require.Equal(t, "B", assessment.Grade)
	assert.Equal(t, 33, assessment.CompositeScore)

	assert.True(t, sba.Qualified)
	assert.Equal(t, 270_000.0, sba.MaxLoanAmount)

	assert.InDelta(t, 40.0, roi.ProjectedROI, 1e-9)
	assert.InDelta(t, 30.0, roi.BreakEvenMonths, 1e-9)
}
