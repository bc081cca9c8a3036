package scoring_test

import (
	"math"
	"testing"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

func TestOpportunityFactor_MarginBands(t *testing.T) {
	f := &scoring.OpportunityFactor{CompetitivenessShare: 0.6, OpenSeatBonus: 15}
	held := &chamber.District{Number: 9, Incumbent: &chamber.Incumbent{Name: "T. Pruitt", Party: chamber.Rep}}

	cases := []struct {
		name   string
		margin float64
		bonus  float64
	}{
		{"at tight band", 5.0, 30},
		{"just past tight band", 5.1, 20},
		{"at close band", 10.0, 20},
		{"just past close band", 10.1, 10},
		{"at near band", 15.0, 10},
		{"past all bands", 15.1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hist := histWith(50, map[string]float64{"2024": tc.margin})
			got := f.Evaluate(held, hist).Score
			want := 0.6*50 + tc.bonus
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("margin %.1f: score = %f, want %f", tc.margin, got, want)
			}
		})
	}
}

func TestOpportunityFactor_OpenSeatBonus(t *testing.T) {
	f := &scoring.OpportunityFactor{CompetitivenessShare: 0.6, OpenSeatBonus: 15}
	hist := histWith(40, map[string]float64{"2024": 22})

	held := &chamber.District{Number: 3, Incumbent: &chamber.Incumbent{Name: "E. Shealy", Party: chamber.Rep}}
	open := &chamber.District{Number: 3}

	heldScore := f.Evaluate(held, hist).Score
	openScore := f.Evaluate(open, hist).Score

	if diff := openScore - heldScore; math.Abs(diff-15) > 1e-9 {
		t.Errorf("open-seat bonus = %f, want exactly 15", diff)
	}
}

func TestOpportunityFactor_ClampsAt100(t *testing.T) {
	f := &scoring.OpportunityFactor{CompetitivenessShare: 0.6, OpenSeatBonus: 15}
	open := &chamber.District{Number: 88}
	hist := histWith(100, map[string]float64{"2024": 2})

	// 60 + 30 + 15 lands past the ceiling
	if got := f.Evaluate(open, hist).Score; got != 100 {
		t.Errorf("score = %f, want 100", got)
	}
}

func TestOpportunityFactor_NoHistory(t *testing.T) {
	f := &scoring.OpportunityFactor{CompetitivenessShare: 0.6, OpenSeatBonus: 15}

	held := &chamber.District{Number: 51, Incumbent: &chamber.Incumbent{Name: "M. Odom", Party: chamber.Dem}}
	if got := f.Evaluate(held, nil).Score; got != 0 {
		t.Errorf("score with no history = %f, want 0", got)
	}

	open := &chamber.District{Number: 52}
	if got := f.Evaluate(open, nil).Score; got != 15 {
		t.Errorf("open seat with no history = %f, want 15", got)
	}
}
