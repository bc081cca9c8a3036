package scoring

import (
	"fmt"
	"math"
)

// Weights holds the composite weighting for the four factors. The
// values must sum to 1.0 so the composite stays on the 0-100 scale.
type Weights struct {
	Opportunity   float64
	Mobilization  float64
	DonorCapacity float64
	Trending      float64
}

// DefaultWeights returns the production weighting: opportunity carries
// the most signal, mobilization next, donor capacity and trending split
// the remainder evenly.
func DefaultWeights() Weights {
	return Weights{
		Opportunity:   0.40,
		Mobilization:  0.30,
		DonorCapacity: 0.15,
		Trending:      0.15,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Opportunity + w.Mobilization + w.DonorCapacity + w.Trending
}

// Validate checks that the weights sum to 1.0.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("factor weights sum to %v, want 1.0", w.Sum())
	}
	return nil
}

// For returns the weight assigned to a factor key, or 0 for an unknown
// key.
func (w Weights) For(key string) float64 {
	switch key {
	case KeyOpportunity:
		return w.Opportunity
	case KeyMobilization:
		return w.Mobilization
	case KeyDonorCapacity:
		return w.DonorCapacity
	case KeyTrending:
		return w.Trending
	default:
		return 0
	}
}

// WeightsFromMap builds Weights from factor-keyed values, typically
// parsed from configuration. Keys missing from the map keep their
// default weight; the result must still sum to 1.0.
func WeightsFromMap(m map[string]float64) (Weights, error) {
	w := DefaultWeights()
	for key, value := range m {
		switch key {
		case KeyOpportunity:
			w.Opportunity = value
		case KeyMobilization:
			w.Mobilization = value
		case KeyDonorCapacity:
			w.DonorCapacity = value
		case KeyTrending:
			w.Trending = value
		default:
			return Weights{}, fmt.Errorf("unknown factor weight %q", key)
		}
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// FactorDefaults holds the tunable constants for all factor
// calculators.
type FactorDefaults struct {
	// Opportunity
	OpportunityCompetitivenessShare float64
	OpportunityOpenSeatBonus        float64

	// Mobilization
	MobilizationBaseline         float64
	MobilizationTightBonus       float64
	MobilizationCloseBonus       float64
	MobilizationSafePenalty      float64
	MobilizationHistoryBonus     float64
	MobilizationCycleWindow      int // most recent cycles averaged
	MobilizationHistoryMinCycles int // cycles needed for the depth bonus

	// Donor capacity
	DonorBaseline             float64
	DonorCompetitivenessShare float64
	DonorCrowdedFieldBonus    float64
	DonorSoleFilerBonus       float64
	DonorOpenSeatBonus        float64

	// Trending
	TrendingBaseline float64
}

// Defaults returns the default factor constants.
func Defaults() FactorDefaults {
	return FactorDefaults{
		// Opportunity
		OpportunityCompetitivenessShare: 0.6,
		OpportunityOpenSeatBonus:        15,

		// Mobilization
		MobilizationBaseline:         50,
		MobilizationTightBonus:       30,
		MobilizationCloseBonus:       15,
		MobilizationSafePenalty:      10,
		MobilizationHistoryBonus:     10,
		MobilizationCycleWindow:      3,
		MobilizationHistoryMinCycles: 2,

		// Donor capacity
		DonorBaseline:             40,
		DonorCompetitivenessShare: 0.3,
		DonorCrowdedFieldBonus:    15,
		DonorSoleFilerBonus:       5,
		DonorOpenSeatBonus:        10,

		// Trending
		TrendingBaseline: 50,
	}
}
