package scoring

import (
	"fmt"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Average-margin bands for the mobilization ladder, in percentage points.
const (
	AvgMarginTight = 10.0
	AvgMarginClose = 20.0
)

// MobilizationFactor estimates how responsive a district's electorate is
// to organizing, from how close its recent cycles ran.
type MobilizationFactor struct {
	Baseline     float64
	TightBonus   float64 // margins averaging within AvgMarginTight
	CloseBonus   float64 // margins averaging within AvgMarginClose
	SafePenalty  float64 // subtracted when the average is wider than both bands
	HistoryBonus float64 // depth bonus for MinCycles or more of data
	CycleWindow  int     // most recent cycles averaged
	MinCycles    int     // cycles needed for the depth bonus
}

func (f *MobilizationFactor) Key() string  { return KeyMobilization }
func (f *MobilizationFactor) Name() string { return "Mobilization" }

func (f *MobilizationFactor) Evaluate(d *chamber.District, hist *chamber.History) FactorResult {
	result := FactorResult{
		Key:  f.Key(),
		Name: f.Name(),
	}

	margins := hist.RecentMargins(f.CycleWindow)
	if len(margins) == 0 {
		// No electoral record: stay on the baseline rather than guess
		// in either direction.
		result.Score = clamp(f.Baseline)
		result.Evidence = append(result.Evidence, "no election history, baseline applied")
		return result
	}

	var sum float64
	for _, m := range margins {
		sum += m
	}
	avg := sum / float64(len(margins))

	score := f.Baseline
	switch {
	case avg <= AvgMarginTight:
		score += f.TightBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("avg margin %.1f over %d cycles is tight (+%.0f)", avg, len(margins), f.TightBonus))
	case avg <= AvgMarginClose:
		score += f.CloseBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("avg margin %.1f over %d cycles is close (+%.0f)", avg, len(margins), f.CloseBonus))
	default:
		score -= f.SafePenalty
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("avg margin %.1f over %d cycles is safe (-%.0f)", avg, len(margins), f.SafePenalty))
	}

	if len(margins) >= f.MinCycles {
		score += f.HistoryBonus
		result.Evidence = append(result.Evidence,
			fmt.Sprintf("%d cycles of data (+%.0f)", len(margins), f.HistoryBonus))
	}

	result.Score = clamp(score)
	return result
}
