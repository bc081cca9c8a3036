// Package recruit ranks districts for candidate recruitment.
//
// A district is a recruitment target when the target party neither holds
// the seat nor has a filed candidate, and its composite score clears the
// floor. Targets are ranked by score with an urgency grade layered on top.
package recruit

import (
	"fmt"
	"sort"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// Urgency grades how quickly a recruitment gap needs attention.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Urgency thresholds on the composite score.
const (
	CriticalScoreMin  = 70.0
	HighScoreMin      = 60.0
	MediumScoreMin    = 50.0
	CriticalMarginMax = 10.0 // last margin must be inside this for critical
)

// DefaultMinScore is the composite floor applied when Options.MinScore
// is zero.
const DefaultMinScore = 50.0

// Options configures a ranking run.
type Options struct {
	MinScore float64 // composite floor; DefaultMinScore when zero
	Limit    int     // max targets returned; 0 means no cap
}

// Target is one ranked recruitment priority.
type Target struct {
	Rank         int          `json:"rank"`
	District     int          `json:"district"`
	Score        float64      `json:"score"`
	Tier         scoring.Tier `json:"tier"`
	OpenSeat     bool         `json:"open_seat"`
	LastMargin   *float64     `json:"last_margin,omitempty"`   // most recent cycle with data
	MarginChange *float64     `json:"margin_change,omitempty"` // positive = tightening for the target
	Urgency      Urgency      `json:"urgency"`
}

// Rank scores every district the target party could contest and returns
// the ranked recruitment list. Districts the target party already holds
// or has filed in are skipped.
func Rank(engine *scoring.Engine, districts []chamber.District, history map[int]chamber.History, opts Options) ([]Target, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is nil")
	}
	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}

	party := engine.Target()
	var targets []Target
	for i := range districts {
		d := &districts[i]
		if d.HeldBy(party) || d.HasCandidateFrom(party) {
			continue
		}

		var hist *chamber.History
		if h, ok := history[d.Number]; ok {
			hist = &h
		}

		sr, err := engine.Score(d, hist)
		if err != nil {
			return nil, fmt.Errorf("scoring district %d: %w", d.Number, err)
		}
		if sr.Composite < minScore {
			continue
		}

		t := Target{
			District: d.Number,
			Score:    sr.Composite,
			Tier:     sr.Tier,
			OpenSeat: sr.OpenSeat,
		}
		if m, ok := hist.LatestMargin(); ok {
			margin := m
			t.LastMargin = &margin
		}
		if current, previous, ok := hist.LastTwoMargins(); ok {
			change := previous - current
			t.MarginChange = &change
		}
		t.Urgency = urgencyFor(sr.Composite, t.LastMargin)

		targets = append(targets, t)
	}

	// Highest score first; equal scores fall back to district order so
	// the ranking is stable run to run.
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Score != targets[j].Score {
			return targets[i].Score > targets[j].Score
		}
		return targets[i].District < targets[j].District
	})

	if opts.Limit > 0 && len(targets) > opts.Limit {
		targets = targets[:opts.Limit]
	}
	for i := range targets {
		targets[i].Rank = i + 1
	}

	return targets, nil
}

// urgencyFor grades a target. A district with no margin on record is
// never critical.
func urgencyFor(score float64, lastMargin *float64) Urgency {
	switch {
	case score >= CriticalScoreMin && lastMargin != nil && *lastMargin < CriticalMarginMax:
		return UrgencyCritical
	case score >= HighScoreMin:
		return UrgencyHigh
	case score >= MediumScoreMin:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
