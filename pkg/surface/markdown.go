package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scorequery"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// MarkdownRenderer produces shareable markdown briefs, the format field
// teams paste into notes and recruitment memos.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) RenderScore(w io.Writer, result *scoring.ScoreResult) error {
	_, err := io.WriteString(w, r.BuildBrief(result))
	return err
}

// BuildBrief creates the markdown brief for one district assessment.
func (r *MarkdownRenderer) BuildBrief(result *scoring.ScoreResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## District %d — Score %.1f (%s)\n\n",
		result.District, result.Composite, tierLabel(result.Tier)))

	if result.OpenSeat {
		sb.WriteString("**Open seat.** ")
	}
	if result.NeedsCandidate {
		sb.WriteString(fmt.Sprintf("**No %s candidate has filed.**", result.TargetParty))
	}
	if result.OpenSeat || result.NeedsCandidate {
		sb.WriteString("\n\n")
	}

	sb.WriteString("### Factors\n\n")
	sb.WriteString("| Factor | Score | Weight | Contribution |\n|--------|-------|--------|--------------|\n")
	for _, fr := range result.Breakdown {
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %.2f | %.1f |\n",
			fr.Name, fr.Score, fr.Weight, fr.Contribution))
	}
	sb.WriteString("\n")

	for _, fr := range result.Breakdown {
		if len(fr.Evidence) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("**%s**\n", fr.Name))
		// Top 3 evidence lines per factor
		maxEv := 3
		if len(fr.Evidence) < maxEv {
			maxEv = len(fr.Evidence)
		}
		for i := 0; i < maxEv; i++ {
			sb.WriteString(fmt.Sprintf("- %s\n", fr.Evidence[i]))
		}
		if len(fr.Evidence) > maxEv {
			sb.WriteString(fmt.Sprintf("- _... and %d more_\n", len(fr.Evidence)-maxEv))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (r *MarkdownRenderer) RenderRun(w io.Writer, results []scoring.ScoreResult) error {
	var sb strings.Builder
	b := scorequery.TierBreakdown(results)

	sb.WriteString(fmt.Sprintf("## Chamber scores — %d districts, mean %.1f\n\n", b.Districts, b.MeanComposite))

	sb.WriteString("| Tier | Districts |\n|------|-----------|\n")
	for _, tc := range b.Tiers {
		sb.WriteString(fmt.Sprintf("| %s | %d |\n", tierLabel(tc.Tier), tc.Count))
	}
	sb.WriteString("\n")
	if b.NeedsCandidate > 0 {
		sb.WriteString(fmt.Sprintf("%d districts score 50+ with no candidate filed.\n\n", b.NeedsCandidate))
	}

	sb.WriteString("| District | Score | Tier | Flags |\n|----------|-------|------|-------|\n")
	for _, res := range results {
		var flags []string
		if res.OpenSeat {
			flags = append(flags, "open")
		}
		if res.NeedsCandidate {
			flags = append(flags, "needs candidate")
		}
		sb.WriteString(fmt.Sprintf("| %d | %.1f | %s | %s |\n",
			res.District, res.Composite, tierLabel(res.Tier), strings.Join(flags, ", ")))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) RenderTargets(w io.Writer, targets []recruit.Target) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Recruitment targets — %d districts\n\n", len(targets)))
	sb.WriteString("| Rank | District | Score | Tier | Last margin | Urgency |\n|------|----------|-------|------|-------------|---------|\n")
	for _, tgt := range targets {
		margin := "—"
		if tgt.LastMargin != nil {
			margin = fmt.Sprintf("%.1f", *tgt.LastMargin)
			if tgt.MarginChange != nil {
				margin += fmt.Sprintf(" (%+.1f)", *tgt.MarginChange)
			}
		}
		sb.WriteString(fmt.Sprintf("| %d | %d | %.1f | %s | %s | %s |\n",
			tgt.Rank, tgt.District, tgt.Score, tierLabel(tgt.Tier), margin, tgt.Urgency))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *MarkdownRenderer) RenderShift(w io.Writer, cmp *chamber.CycleComparison) error {
	var sb strings.Builder
	s := cmp.Summary

	sb.WriteString(fmt.Sprintf("## Margin shift %s → %s\n\n", s.PreviousYear, s.CurrentYear))
	sb.WriteString(fmt.Sprintf("Compared %d districts (%d excluded): %d improved, %d slipped, %d stable.",
		s.Compared, s.Excluded, s.ImprovedForTarget, s.ImprovedForOpponent, s.Stable))
	if s.Compared > 0 {
		sb.WriteString(fmt.Sprintf(" Mean delta %+.1f with %d significant shifts.", s.MeanDelta, s.SignificantShifts))
	}
	sb.WriteString("\n\n")

	sb.WriteString("| District | Previous | Current | Delta | Direction |\n|----------|----------|---------|-------|-----------|\n")
	for _, shift := range cmp.Shifts {
		if shift.Delta == nil {
			sb.WriteString(fmt.Sprintf("| %d | — | — | — | excluded |\n", shift.District))
			continue
		}
		sb.WriteString(fmt.Sprintf("| %d | %.1f | %.1f | %+.1f | %s |\n",
			shift.District, *shift.PreviousMargin, *shift.CurrentMargin, *shift.Delta, shift.Direction))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// tierLabel renders a tier for prose output ("high_opportunity" ->
// "high opportunity").
func tierLabel(tier scoring.Tier) string {
	return strings.ReplaceAll(string(tier), "_", " ")
}
