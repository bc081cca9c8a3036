package scoring

import (
	"fmt"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// DonorCapacityFactor estimates fundraising potential from the
// competitiveness index and the size of the filed candidate field.
type DonorCapacityFactor struct {
	Baseline             float64
	CompetitivenessShare float64
	CrowdedFieldBonus    float64 // two or more filed candidates
	SoleFilerBonus       float64 // exactly one filed candidate
	OpenSeatBonus        float64
}

func (f *DonorCapacityFactor) Key() string  { return KeyDonorCapacity }
func (f *DonorCapacityFactor) Name() string { return "Donor capacity" }

func (f *DonorCapacityFactor) Evaluate(d *chamber.District, hist *chamber.History) FactorResult {
	result := FactorResult{
		Key:  f.Key(),
		Name: f.Name(),
	}

	score := f.Baseline
	if hist != nil {
		c := f.CompetitivenessShare * hist.Competitiveness
		score += c
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("competitiveness %.1f contributes %.1f", hist.Competitiveness, c))
	}

	switch n := len(d.Candidates); {
	case n >= 2:
		score += f.CrowdedFieldBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("%d filed candidates (+%.0f)", n, f.CrowdedFieldBonus))
	case n == 1:
		score += f.SoleFilerBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("one filed candidate (+%.0f)", f.SoleFilerBonus))
	}

	if d.Open() {
		score += f.OpenSeatBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("open seat +%.0f", f.OpenSeatBonus))
	}

	result.Score = clamp(score)
	return result
}
