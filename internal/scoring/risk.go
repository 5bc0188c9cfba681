package scoring

import (
	"strings"

	"dealscout/internal/listing"
)

// Age-based risk baselines and additive penalties.
const (
	riskAgeUnder1  = 30
	riskAgeUnder2  = 25
	riskAgeUnder5  = 15
	riskAgeUnder10 = 10
	riskAgeMature  = 5

	riskNoRevenue        = 20
	riskVolatileIndustry = 10
	riskRemoteBusiness   = 5
)

// Industries with historically elevated acquisition risk.
var highRiskIndustries = map[string]bool{
	"restaurant":         true,
	"retail":             true,
	"entertainment":      true,
	"media & publishing": true,
}

// RiskScore computes the 0-100 acquisition-risk score for a candidate.
// Starts from an age baseline, adds penalties for missing revenue,
// volatile industries and remote operation, then the source-reliability
// adjustment, clamped to [0, 100].
func RiskScore(l listing.Listing, p SourceProfile, currentYear int) int {
	// Missing established year counts as age 0, the highest risk bucket.
	age := 0
	if l.Financial.EstablishedYear != nil {
		age = currentYear - *l.Financial.EstablishedYear
		if age < 0 {
			age = 0
		}
	}

	score := ageBaseline(age)

	if !l.Financial.HasRevenue() {
		score += riskNoRevenue
	}

	score += p.RiskAdjustment

	if highRiskIndustries[strings.ToLower(strings.TrimSpace(l.Industry))] {
		score += riskVolatileIndustry
	}

	// Remote businesses are harder to verify on the ground.
	if l.Location.IsRemote() {
		score += riskRemoteBusiness
	}

	return clamp(score)
}

func ageBaseline(age int) int {
	switch {
	case age < 1:
		return riskAgeUnder1
	case age < 2:
		return riskAgeUnder2
	case age < 5:
		return riskAgeUnder5
	case age < 10:
		return riskAgeUnder10
	default:
		return riskAgeMature
	}
}
