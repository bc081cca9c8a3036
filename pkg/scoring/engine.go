package scoring

import (
	"fmt"
	"sort"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Factor is the interface all factor calculators implement.
type Factor interface {
	// Key returns the machine-readable factor identifier.
	Key() string
	// Name returns the human-readable factor name.
	Name() string
	// Evaluate computes the raw 0-100 factor score for one district.
	Evaluate(d *chamber.District, hist *chamber.History) FactorResult
}

// Engine runs all configured factors against a district and combines
// them into a weighted composite with a tier classification.
type Engine struct {
	target  chamber.Party
	weights Weights
	factors []Factor
}

// NewEngine creates a scoring engine for the given target party using
// the default weights.
func NewEngine(target chamber.Party, factors ...Factor) *Engine {
	return &Engine{target: target, weights: DefaultWeights(), factors: factors}
}

// NewEngineWithWeights creates a scoring engine with custom weights.
func NewEngineWithWeights(target chamber.Party, weights Weights, factors ...Factor) *Engine {
	return &Engine{target: target, weights: weights, factors: factors}
}

// Target returns the party the engine scores districts for.
func (e *Engine) Target() chamber.Party { return e.target }

// Score evaluates all factors for one district. hist may be nil when
// the district has no recorded election history.
func (e *Engine) Score(d *chamber.District, hist *chamber.History) (*ScoreResult, error) {
	if d == nil {
		return nil, fmt.Errorf("district is nil")
	}

	result := &ScoreResult{
		District:    d.Number,
		TargetParty: e.target,
		OpenSeat:    d.Open(),
	}

	// Run each factor
	var composite float64
	for _, f := range e.factors {
		fr := f.Evaluate(d, hist)
		fr.Weight = e.weights.For(fr.Key)
		fr.Contribution = fr.Weight * fr.Score
		composite += fr.Contribution
		result.Factors.set(fr.Key, fr.Score)
		result.Breakdown = append(result.Breakdown, fr)
	}

	result.Composite = clamp(composite)

	// A seat the target party already holds is defensive, whatever the
	// composite says.
	if d.HeldBy(e.target) {
		result.Tier = TierDefensive
	} else {
		result.Tier = TierFromScore(result.Composite)
	}

	// The recruitment flag ignores the tier: a defensive seat with no
	// target-party filing still gets flagged.
	result.NeedsCandidate = result.Composite >= NeedsCandidateMin && !d.HasCandidateFrom(e.target)

	return result, nil
}

// ScoreAll scores every district in the slice, pairing each with its
// history record. Results come back ordered by district number.
func (e *Engine) ScoreAll(districts []chamber.District, history map[int]chamber.History) ([]ScoreResult, error) {
	results := make([]ScoreResult, 0, len(districts))
	for i := range districts {
		d := &districts[i]
		var hist *chamber.History
		if h, ok := history[d.Number]; ok {
			hist = &h
		}
		sr, err := e.Score(d, hist)
		if err != nil {
			return nil, fmt.Errorf("scoring district %d: %w", d.Number, err)
		}
		results = append(results, *sr)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].District < results[j].District
	})

	return results, nil
}

// clamp bounds a score to the 0-100 scale.
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
