package diligence

import "time"

// DueDiligenceReport is an immutable, append-only report over one
// listing. Repeated requests produce repeated reports.
type DueDiligenceReport struct {
	ID             string `json:"id"`
	ListingID      string `json:"listing_id"`
	OrganizationID string `json:"organization_id"`

	RiskAssessment RiskAssessment `json:"risk_assessment"`
	ROIProjection  ROIProjection  `json:"roi_projection"`
	SBAAssessment  SBAAssessment  `json:"sba_assessment"`

	CreatedAt time.Time `json:"created_at"`
}

// RiskAssessment blends four risk components into a composite score
// and letter grade.
type RiskAssessment struct {
	CompositeScore int            `json:"composite_score"`
	Grade          string         `json:"grade"`
	Components     RiskComponents `json:"components"`
}

// RiskComponents are the individual 0-100 risk dimensions.
type RiskComponents struct {
	FinancialHealth int `json:"financial_health"`
	LegalRisk       int `json:"legal_risk"`
	OperationalRisk int `json:"operational_risk"`
	MarketRisk      int `json:"market_risk"`
}

// ROIProjection estimates returns for a given investment amount.
// All zero when the required inputs are missing.
type ROIProjection struct {
	ProjectedROI       float64            `json:"projected_roi"`
	BreakEvenMonths    float64            `json:"break_even_months"`
	RiskAdjustedReturn float64            `json:"risk_adjusted_return"`
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
}

// ConfidenceInterval is a fixed ±30% band around the projected ROI.
type ConfidenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// SBAAssessment is a simplified SBA 7(a) loan eligibility check.
type SBAAssessment struct {
	Qualified          bool      `json:"qualified"`
	QualificationScore float64   `json:"qualification_score"`
	Checks             SBAChecks `json:"checks"`
	MaxLoanAmount      float64   `json:"max_loan_amount"`
}

// SBAChecks are the individual eligibility checks.
type SBAChecks struct {
	SizeStandard        bool `json:"size_standard"`
	IndustryEligibility bool `json:"industry_eligibility"`
	FinancialHealth     bool `json:"financial_health"`
}
