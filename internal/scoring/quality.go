package scoring

import (
	"dealscout/internal/listing"
)

// Quality score point values. Heuristics carried over from the product,
// centralized so recalibration is a one-file change.
const (
	pointsAskingPrice     = 10
	pointsRevenue         = 10
	pointsProfit          = 10
	pointsEstablishedYear = 10
	pointsBrokerIdentity  = 10
	pointsBrokerPhone     = 10
	pointsListingURL      = 5
	pointsZip             = 5
	pointsLongDescription = 10
	pointsAnyDescription  = 5

	longDescriptionChars = 100
)

// QualityScore computes the 0-100 completeness/trust score for a
// candidate. Deterministic additive scoring over present fields plus
// the source adjustment, clamped to [0, 100].
func QualityScore(l listing.Listing, p SourceProfile) int {
	score := 0

	if l.Financial.AskingPrice != nil {
		score += pointsAskingPrice
	}
	if l.Financial.HasRevenue() {
		score += pointsRevenue
	}
	if l.Financial.HasProfit() {
		score += pointsProfit
	}
	if l.Financial.EstablishedYear != nil {
		score += pointsEstablishedYear
	}

	if l.Contact.BrokerName != "" || l.Contact.BrokerEmail != "" {
		score += pointsBrokerIdentity
	}
	if l.Contact.BrokerPhone != "" {
		score += pointsBrokerPhone
	}
	if l.Contact.ListingURL != "" {
		score += pointsListingURL
	}

	if l.Location.City != "" && l.Location.State != "" {
		score += p.CityStatePoints
	}
	if l.Location.Zip != "" {
		score += pointsZip
	}

	if len(l.Contact.Description) > longDescriptionChars {
		score += pointsLongDescription
	} else if l.Contact.Description != "" {
		score += pointsAnyDescription
	}

	score += p.QualityAdjustment

	return clamp(score)
}
