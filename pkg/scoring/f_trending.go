package scoring

import (
	"fmt"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Swing bands and steps for the trending ladder, in percentage points.
// A positive swing means the margin tightened between the two most
// recent cycles; tightening is rewarded more than widening is punished.
const (
	SwingBandLarge  = 10.0
	SwingBandMedium = 5.0

	SwingBonusLarge  = 40.0
	SwingBonusMedium = 20.0
	SwingBonusSmall  = 10.0

	SwingPenaltyLarge  = 30.0
	SwingPenaltyMedium = 15.0
	SwingPenaltySmall  = 5.0
)

// TrendingFactor scores the direction a district is moving, from the
// margin swing between its two most recent cycles with data.
type TrendingFactor struct {
	Baseline float64
}

func (f *TrendingFactor) Key() string  { return KeyTrending }
func (f *TrendingFactor) Name() string { return "Trending" }

func (f *TrendingFactor) Evaluate(d *chamber.District, hist *chamber.History) FactorResult {
	result := FactorResult{
		Key:  f.Key(),
		Name: f.Name(),
	}

	current, previous, ok := hist.LastTwoMargins()
	if !ok {
		// One cycle of data cannot show a direction.
		result.Score = clamp(f.Baseline)
		result.Evidence = append(result.Evidence, "fewer than two cycles of data, baseline applied")
		return result
	}

	swing := previous - current
	score := f.Baseline
	switch {
	case swing > SwingBandLarge:
		score += SwingBonusLarge
	case swing > SwingBandMedium:
		score += SwingBonusMedium
	case swing > 0:
		score += SwingBonusSmall
	case swing < -SwingBandLarge:
		score -= SwingPenaltyLarge
	case swing < -SwingBandMedium:
		score -= SwingPenaltyMedium
	case swing < 0:
		score -= SwingPenaltySmall
	}

	if swing != 0 {
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("margin moved %.1f to %.1f (swing %+.1f)", previous, current, swing))
	} else {
		result.Evidence = append(result.Evidence, "margin unchanged across last two cycles")
	}

	result.Score = clamp(score)
	return result
}
