// Package scorequery provides shared filtering and aggregation over
// district score runs. Used by both the local CLI server and the hosted
// platform API to shape score data for the dashboard's filter panel.
package scorequery

import (
	"sort"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// Filter narrows a score run to the assessments a view asks for. Zero
// values leave that dimension unconstrained.
type Filter struct {
	Tiers              []scoring.Tier // empty = all tiers
	NeedsCandidateOnly bool
	OpenSeatsOnly      bool
	MinScore           float64
	MaxScore           float64 // 0 = no upper bound
}

// TierCount is one tier's share of a score run.
type TierCount struct {
	Tier  scoring.Tier `json:"tier"`
	Count int          `json:"count"`
}

// Breakdown aggregates a score run for the dashboard's summary strip.
type Breakdown struct {
	Districts      int         `json:"districts"`
	Tiers          []TierCount `json:"tiers"`
	NeedsCandidate int         `json:"needs_candidate"`
	OpenSeats      int         `json:"open_seats"`
	MeanComposite  float64     `json:"mean_composite"`
}

// tierOrder fixes the display order, strongest tier first with the
// defensive column last.
var tierOrder = []scoring.Tier{
	scoring.TierHighOpportunity,
	scoring.TierEmerging,
	scoring.TierBuild,
	scoring.TierNonCompetitive,
	scoring.TierDefensive,
}

// Apply returns the assessments that pass every constraint, preserving
// input order.
func Apply(results []scoring.ScoreResult, f Filter) []scoring.ScoreResult {
	tierSet := make(map[scoring.Tier]bool, len(f.Tiers))
	for _, t := range f.Tiers {
		tierSet[t] = true
	}

	filtered := make([]scoring.ScoreResult, 0, len(results))
	for _, r := range results {
		if len(tierSet) > 0 && !tierSet[r.Tier] {
			continue
		}
		if f.NeedsCandidateOnly && !r.NeedsCandidate {
			continue
		}
		if f.OpenSeatsOnly && !r.OpenSeat {
			continue
		}
		if r.Composite < f.MinScore {
			continue
		}
		if f.MaxScore > 0 && r.Composite > f.MaxScore {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// TierBreakdown counts assessments per tier plus run-level aggregates.
// Tiers with no districts are omitted from the slice.
func TierBreakdown(results []scoring.ScoreResult) *Breakdown {
	b := &Breakdown{Districts: len(results)}

	counts := make(map[scoring.Tier]int)
	var sum float64
	for _, r := range results {
		counts[r.Tier]++
		sum += r.Composite
		if r.NeedsCandidate {
			b.NeedsCandidate++
		}
		if r.OpenSeat {
			b.OpenSeats++
		}
	}

	for _, tier := range tierOrder {
		if n := counts[tier]; n > 0 {
			b.Tiers = append(b.Tiers, TierCount{Tier: tier, Count: n})
		}
	}
	if len(results) > 0 {
		b.MeanComposite = sum / float64(len(results))
	}
	return b
}

// TopN returns the n highest-scoring assessments, ties broken by
// ascending district number so paginated views stay stable. n <= 0
// returns the full run sorted.
func TopN(results []scoring.ScoreResult, n int) []scoring.ScoreResult {
	sorted := make([]scoring.ScoreResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Composite != sorted[j].Composite {
			return sorted[i].Composite > sorted[j].Composite
		}
		return sorted[i].District < sorted[j].District
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
