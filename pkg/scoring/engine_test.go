package scoring_test

import (
	"math"
	"testing"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

func histWith(competitiveness float64, margins map[string]float64) *chamber.History {
	h := &chamber.History{
		Results:         make(map[string]chamber.Result, len(margins)),
		Competitiveness: competitiveness,
	}
	for year, m := range margins {
		h.Results[year] = chamber.Result{TotalVotes: 24000, Margin: m, Contested: true}
	}
	return h
}

func TestEngineScore_WeightedComposite(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	d := &chamber.District{
		Number:    42,
		Incumbent: &chamber.Incumbent{Name: "M. Gaines", Party: chamber.Rep},
		Candidates: []chamber.Candidate{
			{Name: "L. Prioleau", Party: chamber.Dem, FiledAt: "2026-03-21"},
		},
	}
	hist := histWith(70, map[string]float64{"2024": 6, "2022": 14, "2020": 18})

	result, err := engine.Score(d, hist)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	// opportunity 0.6*70+20=62, mobilization 50+15+10=75,
	// donor 40+0.3*70+5=66, trending 50+20=70
	want := 0.40*62 + 0.30*75 + 0.15*66 + 0.15*70
	if math.Abs(result.Composite-want) > 1e-9 {
		t.Errorf("Composite = %f, want %f", result.Composite, want)
	}
	if result.Tier != scoring.TierEmerging {
		t.Errorf("Tier = %s, want %s", result.Tier, scoring.TierEmerging)
	}
	if result.NeedsCandidate {
		t.Error("NeedsCandidate = true for a district with a target-party filing")
	}
	if len(result.Breakdown) != 4 {
		t.Fatalf("Breakdown has %d entries, want 4", len(result.Breakdown))
	}

	var weightSum float64
	for _, fr := range result.Breakdown {
		weightSum += fr.Weight
		if math.Abs(fr.Contribution-fr.Weight*fr.Score) > 1e-9 {
			t.Errorf("%s: Contribution = %f, want weight*score = %f", fr.Key, fr.Contribution, fr.Weight*fr.Score)
		}
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		t.Errorf("breakdown weights sum to %f, want 1.0", weightSum)
	}
}

func TestEngineScore_DefensiveOverride(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	d := &chamber.District{
		Number:    31,
		Incumbent: &chamber.Incumbent{Name: "R. Govan", Party: chamber.Dem},
	}
	hist := histWith(80, map[string]float64{"2024": 4, "2022": 6})

	result, err := engine.Score(d, hist)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if result.Tier != scoring.TierDefensive {
		t.Errorf("Tier = %s, want %s for a target-held seat", result.Tier, scoring.TierDefensive)
	}
	// The flag still applies: nobody from the target party has filed to
	// defend the seat.
	if !result.NeedsCandidate {
		t.Error("NeedsCandidate = false, want true for an unprotected defensive seat")
	}
}

func TestEngineScore_LowScoreNotFlagged(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	d := &chamber.District{
		Number:    64,
		Incumbent: &chamber.Incumbent{Name: "K. Bamberg", Party: chamber.Rep},
	}

	result, err := engine.Score(d, nil)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	// opportunity 0, mobilization 50, donor 40, trending 50
	want := 0.30*50 + 0.15*40 + 0.15*50
	if math.Abs(result.Composite-want) > 1e-9 {
		t.Errorf("Composite = %f, want %f", result.Composite, want)
	}
	if result.Tier != scoring.TierNonCompetitive {
		t.Errorf("Tier = %s, want %s", result.Tier, scoring.TierNonCompetitive)
	}
	if result.NeedsCandidate {
		t.Error("NeedsCandidate = true below the recruitment threshold")
	}
}

func TestEngineScore_OpenSeatLift(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	hist := histWith(60, map[string]float64{"2024": 8})

	held := &chamber.District{Number: 5, Incumbent: &chamber.Incumbent{Name: "D. Rivers", Party: chamber.Rep}}
	open := &chamber.District{Number: 5}

	heldResult, err := engine.Score(held, hist)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	openResult, err := engine.Score(open, hist)
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}

	// 0.40*15 from opportunity plus 0.15*10 from donor capacity
	if diff := openResult.Composite - heldResult.Composite; math.Abs(diff-7.5) > 1e-9 {
		t.Errorf("open-seat lift = %f, want 7.5", diff)
	}
	if !openResult.OpenSeat || heldResult.OpenSeat {
		t.Error("OpenSeat flags do not match the fixtures")
	}
}

func TestEngineScore_NilDistrict(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	if _, err := engine.Score(nil, nil); err == nil {
		t.Error("expected error for nil district")
	}
}

func TestScoreAll_OrdersByDistrict(t *testing.T) {
	engine := scoring.NewEngine(chamber.Dem, scoring.DefaultFactors()...)
	districts := []chamber.District{
		{Number: 7, Incumbent: &chamber.Incumbent{Name: "P. Lowe", Party: chamber.Rep}},
		{Number: 3, Incumbent: &chamber.Incumbent{Name: "S. Crosby", Party: chamber.Rep}},
		{Number: 5},
	}
	history := map[int]chamber.History{
		3: *histWith(70, map[string]float64{"2024": 4, "2022": 9}),
	}

	results, err := engine.ScoreAll(districts, history)
	if err != nil {
		t.Fatalf("ScoreAll() error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []int{3, 5, 7} {
		if results[i].District != want {
			t.Errorf("results[%d].District = %d, want %d", i, results[i].District, want)
		}
	}
	// Only district 3 has history; the others sit on factor baselines.
	if results[0].Composite <= results[1].Composite {
		t.Error("district with tight history should outscore a bare open seat")
	}
}

func TestTierFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  scoring.Tier
	}{
		{100, scoring.TierHighOpportunity},
		{70, scoring.TierHighOpportunity},
		{69.9, scoring.TierEmerging},
		{50, scoring.TierEmerging},
		{49.9, scoring.TierBuild},
		{30, scoring.TierBuild},
		{29.9, scoring.TierNonCompetitive},
		{0, scoring.TierNonCompetitive},
	}
	for _, tc := range cases {
		if got := scoring.TierFromScore(tc.score); got != tc.want {
			t.Errorf("TierFromScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := scoring.DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	bad := scoring.Weights{Opportunity: 0.5, Mobilization: 0.3, DonorCapacity: 0.15, Trending: 0.15}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights summing past 1.0")
	}
}

func TestWeightsFromMap(t *testing.T) {
	w, err := scoring.WeightsFromMap(map[string]float64{
		scoring.KeyOpportunity:  0.5,
		scoring.KeyMobilization: 0.2,
	})
	if err != nil {
		t.Fatalf("WeightsFromMap() error = %v", err)
	}
	if w.Opportunity != 0.5 || w.Mobilization != 0.2 {
		t.Errorf("overrides not applied: %+v", w)
	}
	// Untouched keys keep their defaults.
	if w.DonorCapacity != 0.15 || w.Trending != 0.15 {
		t.Errorf("defaults not preserved: %+v", w)
	}

	if _, err := scoring.WeightsFromMap(map[string]float64{"turnout": 1.0}); err == nil {
		t.Error("expected error for unknown factor key")
	}
	if _, err := scoring.WeightsFromMap(map[string]float64{scoring.KeyOpportunity: 0.9}); err == nil {
		t.Error("expected error for weights that no longer sum to 1.0")
	}
}
