// Package scoring implements the district opportunity scoring engine.
// It converts raw district and election-history records into four factor
// scores, a weighted composite, and a tier classification the map colors
// districts by.
package scoring

import "github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"

// Factor keys.
const (
	KeyOpportunity   = "opportunity"
	KeyMobilization  = "mobilization"
	KeyDonorCapacity = "donor_capacity"
	KeyTrending      = "trending"
)

// Tier is the discrete classification a district lands in.
type Tier string

const (
	TierHighOpportunity Tier = "high_opportunity"
	TierEmerging        Tier = "emerging"
	TierBuild           Tier = "build"
	TierDefensive       Tier = "defensive"
	TierNonCompetitive  Tier = "non_competitive"
)

// Composite-score thresholds for the tier ladder.
const (
	TierHighOpportunityMin = 70.0
	TierEmergingMin        = 50.0
	TierBuildMin           = 30.0
)

// NeedsCandidateMin is the composite score at or above which a district
// with no target-party filing gets flagged for recruitment.
const NeedsCandidateMin = 50.0

// TierFromScore maps a composite score to its threshold tier. The
// defensive override for target-held seats is applied by the engine,
// not here.
func TierFromScore(score float64) Tier {
	switch {
	case score >= TierHighOpportunityMin:
		return TierHighOpportunity
	case score >= TierEmergingMin:
		return TierEmerging
	case score >= TierBuildMin:
		return TierBuild
	default:
		return TierNonCompetitive
	}
}

// ScoreResult is the complete output of scoring one district.
// Immutable once computed.
type ScoreResult struct {
	District       int            `json:"district"`
	Composite      float64        `json:"composite"`
	Tier           Tier           `json:"tier"`
	NeedsCandidate bool           `json:"needs_candidate"`
	TargetParty    chamber.Party  `json:"target_party"`
	OpenSeat       bool           `json:"open_seat"`
	Factors        FactorSet      `json:"factors"`
	Breakdown      []FactorResult `json:"breakdown"`
}

// FactorSet is the four factor scores as a plain value set, each in
// [0,100]. Recomputed on demand, never persisted on its own.
type FactorSet struct {
	Opportunity   float64 `json:"opportunity"`
	Mobilization  float64 `json:"mobilization"`
	DonorCapacity float64 `json:"donor_capacity"`
	Trending      float64 `json:"trending"`
}

func (s *FactorSet) set(key string, score float64) {
	switch key {
	case KeyOpportunity:
		s.Opportunity = score
	case KeyMobilization:
		s.Mobilization = score
	case KeyDonorCapacity:
		s.DonorCapacity = score
	case KeyTrending:
		s.Trending = score
	}
}

// FactorResult is the output of a single factor calculator, with the
// weighting applied by the engine.
type FactorResult struct {
	Key          string   `json:"key"`   // machine key: "opportunity"
	Name         string   `json:"name"`  // human name: "Opportunity"
	Score        float64  `json:"score"` // 0-100
	Weight       float64  `json:"weight"`
	Contribution float64  `json:"contribution"` // weight * score
	Evidence     []string `json:"evidence,omitempty"`
}
