package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/surface"
)

func sampleResult() *scoring.ScoreResult {
	return &scoring.ScoreResult{
		District:       42,
		Composite:      67.7,
		Tier:           scoring.TierEmerging,
		NeedsCandidate: true,
		TargetParty:    chamber.Dem,
		Breakdown: []scoring.FactorResult{
			{
				Key:          scoring.KeyOpportunity,
				Name:         "Opportunity",
				Score:        62,
				Weight:       0.40,
				Contribution: 24.8,
				Evidence: []string{
					"competitiveness 70.0 contributes 42.0",
					"latest margin 6.0 adds 20.0",
				},
			},
			{
				Key:          scoring.KeyMobilization,
				Name:         "Mobilization",
				Score:        75,
				Weight:       0.30,
				Contribution: 22.5,
				Evidence:     []string{"average margin 12.7 over 3 cycles adds 15.0"},
			},
			{
				Key:          scoring.KeyDonorCapacity,
				Name:         "Donor capacity",
				Score:        66,
				Weight:       0.15,
				Contribution: 9.9,
			},
			{
				Key:          scoring.KeyTrending,
				Name:         "Trending",
				Score:        70,
				Weight:       0.15,
				Contribution: 10.5,
				Evidence:     []string{"margin moved 14.0 to 6.0 (swing +8.0)"},
			},
		},
	}
}

func sampleComparison() *chamber.CycleComparison {
	cur, prev, delta := 4.0, 12.0, -8.0
	return &chamber.CycleComparison{
		CurrentYear:  "2024",
		PreviousYear: "2022",
		Shifts: []chamber.MarginShift{
			{
				District:          9,
				CurrentMargin:     &cur,
				PreviousMargin:    &prev,
				Delta:             &delta,
				ImprovedForTarget: true,
				Magnitude:         8,
				Significant:       true,
				Direction:         chamber.ShiftImprovedForTarget,
			},
			{District: 11},
		},
		Summary: chamber.ShiftSummary{
			CurrentYear:       "2024",
			PreviousYear:      "2022",
			Compared:          1,
			Excluded:          1,
			ImprovedForTarget: 1,
			MeanDelta:         -8,
			SignificantShifts: 1,
			LargestImprovement: &chamber.SwingExtreme{
				District: 9,
				Delta:    -8,
			},
		},
	}
}

func TestTerminalRenderer_Score(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.RenderScore(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderScore() error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "District 42") {
		t.Error("expected District 42 in header")
	}
	if !strings.Contains(output, "Score 67.7") {
		t.Error("expected Score 67.7 in header")
	}
	if !strings.Contains(output, "emerging") {
		t.Error("expected tier in header")
	}
	if !strings.Contains(output, "Needs D candidate") {
		t.Error("expected recruitment callout")
	}
	if !strings.Contains(output, "Opportunity") {
		t.Error("expected Opportunity factor line")
	}
	if !strings.Contains(output, "latest margin 6.0 adds 20.0") {
		t.Error("expected second evidence line")
	}
	if !strings.Contains(output, "( 24.8)") {
		t.Error("expected opportunity contribution")
	}
}

func TestTerminalRenderer_Run(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	results := []scoring.ScoreResult{
		*sampleResult(),
		{District: 43, Composite: 22.1, Tier: scoring.TierNonCompetitive, OpenSeat: true},
	}
	if err := r.RenderRun(&buf, results); err != nil {
		t.Fatalf("RenderRun() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "2 districts") {
		t.Error("expected district count in header")
	}
	if !strings.Contains(output, "emerging") || !strings.Contains(output, "non_competitive") {
		t.Error("expected both tier rows")
	}
	if !strings.Contains(output, "open") {
		t.Error("expected open-seat marker")
	}
}

func TestTerminalRenderer_Targets(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	margin, change := 6.0, 8.0
	targets := []recruit.Target{
		{
			Rank:         1,
			District:     42,
			Score:        72.4,
			Tier:         scoring.TierHighOpportunity,
			LastMargin:   &margin,
			MarginChange: &change,
			Urgency:      recruit.UrgencyCritical,
		},
		{Rank: 2, District: 17, Score: 61.0, Tier: scoring.TierEmerging, Urgency: recruit.UrgencyHigh},
	}

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.RenderTargets(&buf, targets); err != nil {
		t.Fatalf("RenderTargets() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "2 recruitment targets") {
		t.Error("expected target count header")
	}
	if !strings.Contains(output, "District 42") {
		t.Error("expected top target")
	}
	if !strings.Contains(output, "critical") {
		t.Error("expected urgency grade")
	}
	if !strings.Contains(output, "last margin 6.0, moving +8.0") {
		t.Error("expected margin detail line")
	}
	if !strings.Contains(output, "no margin on record") {
		t.Error("expected missing-margin line for district 17")
	}
}

func TestTerminalRenderer_TargetsEmpty(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.RenderTargets(&buf, nil); err != nil {
		t.Fatalf("RenderTargets() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No recruitment targets") {
		t.Error("expected empty-list message")
	}
}

func TestTerminalRenderer_Shift(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer
	if err := r.RenderShift(&buf, sampleComparison()); err != nil {
		t.Fatalf("RenderShift() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "2022 → 2024") {
		t.Error("expected period in header")
	}
	if !strings.Contains(output, "compared 1, excluded 1") {
		t.Error("expected comparison counts")
	}
	if !strings.Contains(output, "12.0 →   4.0") {
		t.Error("expected margin movement for district 9")
	}
	if !strings.Contains(output, "significant") {
		t.Error("expected significance marker")
	}
	if !strings.Contains(output, "no comparable data") {
		t.Error("expected excluded line for district 11")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.RenderScore(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderScore() error: %v", err)
	}

	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestForFormat(t *testing.T) {
	if _, ok := surface.ForFormat("json").(*surface.JSONRenderer); !ok {
		t.Error("expected JSONRenderer for json")
	}
	if _, ok := surface.ForFormat("markdown").(*surface.MarkdownRenderer); !ok {
		t.Error("expected MarkdownRenderer for markdown")
	}
	if _, ok := surface.ForFormat("").(*surface.TerminalRenderer); !ok {
		t.Error("expected TerminalRenderer fallback")
	}
}
