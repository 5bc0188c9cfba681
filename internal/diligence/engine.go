package diligence

import (
	"math"
	"strings"

	"dealscout/internal/listing"
)

// The engine is a pure function of (listing, investment, current year).
// It always produces a report, degrading to zeros where inputs are
// missing; it never fails on partial data.

// Industry risk tables. Matching is case-insensitive substring, so
// "Healthcare Services" hits "healthcare".
var (
	legalHighRisk   = []string{"cannabis", "cryptocurrency", "gambling", "adult"}
	legalMediumRisk = []string{"healthcare", "finance", "food service"}

	growthIndustries    = []string{"technology", "healthcare", "e-commerce", "renewable"}
	decliningIndustries = []string{"retail", "print media", "coal", "traditional manufacturing"}

	sbaIneligible = []string{"gambling", "adult entertainment", "pyramid sales"}
)

// States grouped by regulatory/operating climate for small businesses.
var (
	businessFriendlyStates = map[string]bool{
		"TX": true, "FL": true, "TN": true, "NV": true, "NC": true, "AZ": true, "DE": true,
	}
	challengingStates = map[string]bool{
		"CA": true, "NY": true, "NJ": true, "IL": true, "MA": true,
	}
)

const (
	sbaSizeStandardRevenue = 35_000_000
	sbaMinRevenue          = 50_000
	sbaMaxLoan             = 5_000_000
	sbaLoanToPrice         = 0.9
	sbaQualifyThreshold    = 0.7
)

// Assess computes the full risk assessment for a listing.
func Assess(l listing.Listing, currentYear int) RiskAssessment {
	components := RiskComponents{
		FinancialHealth: financialHealth(l, currentYear),
		LegalRisk:       legalRisk(l.Industry),
		OperationalRisk: operationalRisk(l),
		MarketRisk:      marketRisk(l.Industry),
	}

	composite := int(math.Round(
		0.4*float64(components.FinancialHealth) +
			0.2*float64(components.LegalRisk) +
			0.2*float64(components.OperationalRisk) +
			0.2*float64(components.MarketRisk)))

	return RiskAssessment{
		CompositeScore: composite,
		Grade:          Grade(composite),
		Components:     components,
	}
}

// Grade maps a composite score to a letter grade. Thresholds are
// inclusive on the lower grade: 20 is still an A.
func Grade(composite int) string {
	switch {
	case composite <= 20:
		return "A"
	case composite <= 40:
		return "B"
	case composite <= 60:
		return "C"
	case composite <= 80:
		return "D"
	default:
		return "F"
	}
}

// financialHealth scores revenue scale, cash-flow margin and business
// age from a baseline of 50. Lower is healthier.
func financialHealth(l listing.Listing, currentYear int) int {
	score := 50

	if rev := l.Financial.AnnualRevenue; rev != nil {
		if *rev > 1_000_000 {
			score -= 10
		} else if *rev < 250_000 {
			score += 15
		}

		if cf := l.Financial.CashFlow; cf != nil && *rev > 0 {
			margin := *cf / *rev
			if margin > 0.15 {
				score -= 15
			} else if margin < 0.05 {
				score += 20
			}
		}
	}

	if year := l.Financial.EstablishedYear; year != nil {
		age := currentYear - *year
		if age > 10 {
			score -= 10
		} else if age < 3 {
			score += 15
		}
	}

	return clamp(score)
}

// legalRisk scores regulatory exposure from the industry name.
func legalRisk(industry string) int {
	score := 30

	if matchesAny(industry, legalHighRisk) {
		score += 30
	} else if matchesAny(industry, legalMediumRisk) {
		score += 15
	}

	return clamp(score)
}

// operationalRisk scores operating climate and listing documentation.
func operationalRisk(l listing.Listing) int {
	score := 40

	state := strings.ToUpper(strings.TrimSpace(l.Location.State))
	if businessFriendlyStates[state] {
		score -= 10
	} else if challengingStates[state] {
		score += 10
	}

	if l.QualityScore < 50 {
		score += 20
	} else if l.QualityScore > 80 {
		score -= 10
	}

	return clamp(score)
}

// marketRisk scores industry trajectory.
func marketRisk(industry string) int {
	score := 45

	if matchesAny(industry, growthIndustries) {
		score -= 15
	} else if matchesAny(industry, decliningIndustries) {
		score += 20
	}

	return clamp(score)
}

// AssessSBA runs the simplified SBA loan eligibility checks.
// Unknown revenue passes the size standard but fails the financial
// health check; unknown industry is presumed eligible.
func AssessSBA(l listing.Listing) SBAAssessment {
	checks := SBAChecks{
		SizeStandard:        l.Financial.AnnualRevenue == nil || *l.Financial.AnnualRevenue <= sbaSizeStandardRevenue,
		IndustryEligibility: !matchesAny(l.Industry, sbaIneligible),
		FinancialHealth:     l.Financial.AnnualRevenue != nil && *l.Financial.AnnualRevenue > sbaMinRevenue,
	}

	trueCount := 0
	for _, ok := range []bool{checks.SizeStandard, checks.IndustryEligibility, checks.FinancialHealth} {
		if ok {
			trueCount++
		}
	}
	score := float64(trueCount) / 3

	var maxLoan float64
	if price := l.Financial.AskingPrice; price != nil {
		maxLoan = math.Min(sbaMaxLoan, *price*sbaLoanToPrice)
	}

	return SBAAssessment{
		Qualified:          score >= sbaQualifyThreshold,
		QualificationScore: score,
		Checks:             checks,
		MaxLoanAmount:      maxLoan,
	}
}

// ProjectROI estimates returns for the investment amount. Missing or
// zero cash flow, missing revenue or a non-positive investment all
// yield the all-zero projection rather than an error.
func ProjectROI(l listing.Listing, investment float64, compositeScore int) ROIProjection {
	cf := l.Financial.CashFlow
	if cf == nil || *cf == 0 || l.Financial.AnnualRevenue == nil || investment <= 0 {
		return ROIProjection{}
	}

	projectedROI := (*cf / investment) * 100
	breakEvenMonths := investment / (*cf / 12)

	riskAdjustment := math.Max(0.5, 1-float64(compositeScore)/100)

	return ROIProjection{
		ProjectedROI:       projectedROI,
		BreakEvenMonths:    breakEvenMonths,
		RiskAdjustedReturn: projectedROI * riskAdjustment,
		ConfidenceInterval: ConfidenceInterval{
			Low:  projectedROI * 0.7,
			High: projectedROI * 1.3,
		},
	}
}

// Evaluate produces the full report content for a listing.
func Evaluate(l listing.Listing, investment float64, currentYear int) (RiskAssessment, ROIProjection, SBAAssessment) {
	assessment := Assess(l, currentYear)
	roi := ProjectROI(l, investment, assessment.CompositeScore)
	sba := AssessSBA(l)
	return assessment, roi, sba
}

func matchesAny(industry string, terms []string) bool {
	industry = strings.ToLower(industry)
	for _, term := range terms {
		if strings.Contains(industry, term) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
