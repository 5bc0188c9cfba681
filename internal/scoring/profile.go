package scoring

// SourceProfile parameterizes the scorers per external source. One
// scoring algorithm serves every source; only the adjustments differ.
type SourceProfile struct {
	Name string

	// QualityAdjustment is a signed bonus/penalty applied after the
	// base quality sum, before clamping. Verified platforms earn a
	// bonus, informal sources a penalty.
	QualityAdjustment int

	// RiskAdjustment is the source-reliability term of the risk score.
	RiskAdjustment int

	// CityStatePoints is the quality credit for a populated city+state
	// pair. Defaults to 10; legacy call sites for some sources used 15.
	CityStatePoints int
}

// DefaultProfile is used for sources without a registered profile.
var DefaultProfile = SourceProfile{
	Name:            "",
	CityStatePoints: 10,
}

var profiles = map[string]SourceProfile{
	// Verified brokerage marketplace: complete records, stable ids.
	"biznest": {
		Name:              "biznest",
		QualityAdjustment: 10,
		RiskAdjustment:    -5,
		CityStatePoints:   10,
	},
	// Marketplace API, neutral reliability.
	"flipnest": {
		Name:            "flipnest",
		CityStatePoints: 10,
	},
	// Informal community board: sparse records, unverified sellers.
	"dealboard": {
		Name:              "dealboard",
		QualityAdjustment: -15,
		RiskAdjustment:    15,
		CityStatePoints:   15,
	},
}

// ProfileFor returns the scoring profile for a source name.
func ProfileFor(source string) SourceProfile {
	if p, ok := profiles[source]; ok {
		return p
	}
	p := DefaultProfile
	p.Name = source
	return p
}

// clamp bounds a score to [0, 100].
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
