package scoring

import (
	"fmt"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Margin bands for the opportunity bonus, in percentage points. A
// district whose latest margin falls within a band earns the matching
// bonus; only the tightest applicable band counts.
const (
	MarginBandTight = 5.0
	MarginBandClose = 10.0
	MarginBandNear  = 15.0

	MarginBonusTight = 30.0
	MarginBonusClose = 20.0
	MarginBonusNear  = 10.0
)

// OpportunityFactor scores how winnable a district looks right now:
// the competitiveness index, the latest margin, and open-seat status.
type OpportunityFactor struct {
	CompetitivenessShare float64 // share of the competitiveness index carried into the score
	OpenSeatBonus        float64
}

func (f *OpportunityFactor) Key() string  { return KeyOpportunity }
func (f *OpportunityFactor) Name() string { return "Opportunity" }

func (f *OpportunityFactor) Evaluate(d *chamber.District, hist *chamber.History) FactorResult {
	result := FactorResult{
		Key:  f.Key(),
		Name: f.Name(),
	}

	var score float64
	if hist != nil {
		score = f.CompetitivenessShare * hist.Competitiveness
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("competitiveness %.1f contributes %.1f", hist.Competitiveness, score))
	}

	if margin, ok := hist.LatestMargin(); ok {
		var bonus float64
		switch {
		case margin <= MarginBandTight:
			bonus = MarginBonusTight
		case margin <= MarginBandClose:
			bonus = MarginBonusClose
		case margin <= MarginBandNear:
			bonus = MarginBonusNear
		}
		if bonus > 0 {
			score += bonus
			result.Evidence = append(result.Evidence,
				fmt.Sprintf("last margin %.1f earns +%.0f", margin, bonus))
		}
	}

	if d.Open() {
		score += f.OpenSeatBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("open seat +%.0f", f.OpenSeatBonus))
	}

	result.Score = clamp(score)
	return result
}
