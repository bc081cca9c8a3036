package surface

import (
	"fmt"
	"io"
	"os"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scorequery"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func tierColor(tier scoring.Tier) string {
	if noColor() {
		return ""
	}
	switch tier {
	case scoring.TierHighOpportunity:
		return colorGreen
	case scoring.TierEmerging:
		return colorYellow
	case scoring.TierDefensive:
		return colorCyan
	default:
		return ""
	}
}

func urgencyColor(u recruit.Urgency) string {
	if noColor() {
		return ""
	}
	switch u {
	case recruit.UrgencyCritical:
		return colorRed
	case recruit.UrgencyHigh:
		return colorYellow
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// RenderScore writes one district assessment with its factor breakdown.
func (r *TerminalRenderer) RenderScore(w io.Writer, result *scoring.ScoreResult) error {
	tc := tierColor(result.Tier)

	header := fmt.Sprintf("District %d — Score %.1f (%s)",
		result.District, result.Composite, colored(string(result.Tier), tc))
	fmt.Fprintf(w, "%s\n", bold(header))

	if result.OpenSeat {
		fmt.Fprintln(w, "Open seat")
	}
	if result.NeedsCandidate {
		fmt.Fprintf(w, "%s\n", colored(fmt.Sprintf("Needs %s candidate", result.TargetParty), colorYellow))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Factors:")
	for _, fr := range result.Breakdown {
		fmt.Fprintf(w, "  (%5.1f) %s", fr.Contribution, bold(fr.Name))
		if len(fr.Evidence) > 0 {
			fmt.Fprintf(w, " — %s", fr.Evidence[0])
		}
		fmt.Fprintln(w)

		for i := 1; i < len(fr.Evidence); i++ {
			fmt.Fprintf(w, "          %s\n", dim(fr.Evidence[i]))
		}
	}
	fmt.Fprintln(w)

	return nil
}

// RenderRun writes every assessment in a score run, one line per
// district, preceded by the tier breakdown.
func (r *TerminalRenderer) RenderRun(w io.Writer, results []scoring.ScoreResult) error {
	b := scorequery.TierBreakdown(results)

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%d districts — mean score %.1f", b.Districts, b.MeanComposite)))
	for _, tc := range b.Tiers {
		fmt.Fprintf(w, "  %-17s %d\n", string(tc.Tier), tc.Count)
	}
	if b.NeedsCandidate > 0 {
		fmt.Fprintf(w, "  %s\n", colored(fmt.Sprintf("needs candidate    %d", b.NeedsCandidate), colorYellow))
	}
	fmt.Fprintln(w)

	for _, res := range results {
		marker := " "
		if res.NeedsCandidate {
			marker = colored("●", colorYellow)
		}
		line := fmt.Sprintf("%4d  %6.1f  %-17s", res.District, res.Composite, string(res.Tier))
		fmt.Fprintf(w, "%s %s", marker, colored(line, tierColor(res.Tier)))
		if res.OpenSeat {
			fmt.Fprintf(w, "  %s", dim("open"))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// RenderTargets writes the recruitment target list in rank order.
func (r *TerminalRenderer) RenderTargets(w io.Writer, targets []recruit.Target) error {
	if len(targets) == 0 {
		fmt.Fprintln(w, "No recruitment targets above the score floor.")
		return nil
	}

	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("%d recruitment targets", len(targets))))

	for _, tgt := range targets {
		fmt.Fprintf(w, "%3d. %s  %.1f (%s)",
			tgt.Rank, bold(fmt.Sprintf("District %d", tgt.District)), tgt.Score, string(tgt.Tier))
		if tgt.OpenSeat {
			fmt.Fprint(w, "  open")
		}
		fmt.Fprintf(w, "  %s\n", colored(string(tgt.Urgency), urgencyColor(tgt.Urgency)))

		switch {
		case tgt.LastMargin != nil && tgt.MarginChange != nil:
			fmt.Fprintf(w, "     %s\n", dim(fmt.Sprintf("last margin %.1f, moving %+.1f", *tgt.LastMargin, *tgt.MarginChange)))
		case tgt.LastMargin != nil:
			fmt.Fprintf(w, "     %s\n", dim(fmt.Sprintf("last margin %.1f", *tgt.LastMargin)))
		default:
			fmt.Fprintf(w, "     %s\n", dim("no margin on record"))
		}
	}

	return nil
}

// RenderShift writes the cycle comparison summary and per-district
// margin movement.
func (r *TerminalRenderer) RenderShift(w io.Writer, cmp *chamber.CycleComparison) error {
	s := cmp.Summary

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Margin shift %s → %s", s.PreviousYear, s.CurrentYear)))
	fmt.Fprintf(w, "  compared %d, excluded %d\n", s.Compared, s.Excluded)
	fmt.Fprintf(w, "  %s %d   %s %d   stable %d\n",
		colored("improved", colorGreen), s.ImprovedForTarget,
		colored("slipped", colorRed), s.ImprovedForOpponent,
		s.Stable)
	if s.Compared > 0 {
		fmt.Fprintf(w, "  mean delta %+.1f, %d significant\n", s.MeanDelta, s.SignificantShifts)
	}
	if s.LargestImprovement != nil {
		fmt.Fprintf(w, "  best: district %d (%+.1f)\n", s.LargestImprovement.District, s.LargestImprovement.Delta)
	}
	if s.LargestDecline != nil {
		fmt.Fprintf(w, "  worst: district %d (%+.1f)\n", s.LargestDecline.District, s.LargestDecline.Delta)
	}
	fmt.Fprintln(w)

	for _, shift := range cmp.Shifts {
		if shift.Delta == nil {
			fmt.Fprintf(w, "%4d  %s\n", shift.District, dim("no comparable data"))
			continue
		}

		var markColor string
		mark := "·"
		switch shift.Direction {
		case chamber.ShiftImprovedForTarget:
			mark, markColor = "▲", colorGreen
		case chamber.ShiftImprovedForOpponent:
			mark, markColor = "▼", colorRed
		}

		line := fmt.Sprintf("%4d  %5.1f → %5.1f  %+5.1f %s",
			shift.District, *shift.PreviousMargin, *shift.CurrentMargin, *shift.Delta,
			colored(mark, markColor))
		if shift.Significant {
			line += "  " + bold("significant")
		}
		fmt.Fprintln(w, line)
	}

	return nil
}
