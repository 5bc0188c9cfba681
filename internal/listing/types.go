package listing

import (
	"fmt"
	"strings"
	"time"
)

// Listing is the canonical, source-independent record for one
// business-for-sale. Every source adapter's output is normalized into
// this shape before scoring and persistence.
type Listing struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`

	Location  Location      `json:"location"`
	Financial FinancialData `json:"financial_data"`
	Contact   ContactInfo   `json:"contact_info"`

	// PriceRange is the display bucket derived from the asking price,
	// empty when the asking price is unknown.
	PriceRange string `json:"price_range,omitempty"`

	QualityScore int `json:"quality_score"`
	RiskScore    int `json:"risk_score"`

	// Sources holds provenance tags ("source:external_id") for every
	// external source that contributed to this record. No two listings
	// share a tag.
	Sources []string `json:"data_sources"`

	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// Location describes where the business operates.
// City "Remote" or "Online" marks a location-independent business.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsRemote reports whether the location marks a location-independent
// business.
func (l Location) IsRemote() bool {
	city := strings.ToLower(strings.TrimSpace(l.City))
	return city == "remote" || city == "online"
}

// FinancialData holds the financial figures of a listing. Numeric
// fields are pointers: absent means unknown, never zero.
type FinancialData struct {
	AskingPrice       *float64 `json:"asking_price,omitempty"`
	AnnualRevenue     *float64 `json:"annual_revenue,omitempty"`
	CashFlow          *float64 `json:"cash_flow,omitempty"`
	GrossProfitMargin *float64 `json:"gross_profit_margin,omitempty"`
	EstablishedYear   *int     `json:"established_year,omitempty"`
	Employees         *int     `json:"employees,omitempty"`
	MonthlyRevenue    *float64 `json:"monthly_revenue,omitempty"`
	MonthlyProfit     *float64 `json:"monthly_profit,omitempty"`
	AskingMultiple    *float64 `json:"asking_multiple,omitempty"`
}

// HasRevenue reports whether any revenue figure is known.
func (f FinancialData) HasRevenue() bool {
	return f.AnnualRevenue != nil || f.MonthlyRevenue != nil
}

// HasProfit reports whether any cash-flow/profit figure is known.
func (f FinancialData) HasProfit() bool {
	return f.CashFlow != nil || f.MonthlyProfit != nil
}

// ContactInfo holds broker and listing contact details.
type ContactInfo struct {
	BrokerName      string `json:"broker_name,omitempty"`
	BrokerEmail     string `json:"broker_email,omitempty"`
	BrokerPhone     string `json:"broker_phone,omitempty"`
	ListingURL      string `json:"listing_url,omitempty"`
	Description     string `json:"description,omitempty"`
	SellerFinancing *bool  `json:"seller_financing,omitempty"`
}

// ProvenanceTag builds the "source:external_id" tag that records which
// external source contributed a record.
func ProvenanceTag(source, externalID string) string {
	return fmt.Sprintf("%s:%s", source, externalID)
}

// Price range bucket labels, used for tier-restricted display.
const (
	RangeUnder50K  = "Under $50K"
	Range50To100K  = "$50K–$100K"
	Range100To250K = "$100K–$250K"
	Range250To500K = "$250K–$500K"
	Range500KTo1M  = "$500K–$1M"
	RangeOver1M    = "Over $1M"
)

// PriceRangeBucket maps an asking price to its display bucket.
// Boundaries are inclusive on the lower bucket: exactly 50,000 maps to
// "$50K–$100K".
func PriceRangeBucket(askingPrice float64) string {
	switch {
	case askingPrice < 50_000:
		return RangeUnder50K
	case askingPrice < 100_000:
		return Range50To100K
	case askingPrice < 250_000:
		return Range100To250K
	case askingPrice < 500_000:
		return Range250To500K
	case askingPrice < 1_000_000:
		return Range500KTo1M
	default:
		return RangeOver1M
	}
}
