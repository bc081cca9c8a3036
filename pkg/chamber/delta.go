package chamber

import "sort"

// Margin-movement classification thresholds, in percentage points.
const (
	// ShiftDeadZone is the band around zero treated as stable when
	// classifying cycle-over-cycle movement, so small-sample noise does
	// not read as a trend.
	ShiftDeadZone = 2.0
	// SignificantShiftThreshold marks movement large enough to call out
	// in summaries.
	SignificantShiftThreshold = 5.0
)

// ShiftDirection classifies which side a margin moved toward.
type ShiftDirection string

const (
	ShiftImprovedForTarget   ShiftDirection = "improved_for_target"
	ShiftImprovedForOpponent ShiftDirection = "improved_for_opponent"
	ShiftStable              ShiftDirection = "stable"
)

// MarginShift is one district's margin movement between two cycles.
// Delta is current minus previous: margins are winning-side percentage
// points, so a positive delta means the seat got safer for its holder
// and a negative delta means the challenger side closed ground.
type MarginShift struct {
	District          int            `json:"district"`
	CurrentYear       string         `json:"current_year"`
	PreviousYear      string         `json:"previous_year"`
	CurrentMargin     *float64       `json:"current_margin"`
	PreviousMargin    *float64       `json:"previous_margin"`
	Delta             *float64       `json:"delta"` // nil when either margin is missing
	ImprovedForTarget bool           `json:"improved_for_target"`
	Magnitude         float64        `json:"magnitude"`
	Significant       bool           `json:"significant"`
	Direction         ShiftDirection `json:"direction,omitempty"`
}

// ShiftSummary aggregates margin movement across one comparison period.
// Districts missing either margin are counted as excluded and contribute
// to no other field.
type ShiftSummary struct {
	CurrentYear         string        `json:"current_year"`
	PreviousYear        string        `json:"previous_year"`
	Compared            int           `json:"compared"`
	Excluded            int           `json:"excluded"`
	ImprovedForTarget   int           `json:"improved_for_target"`
	ImprovedForOpponent int           `json:"improved_for_opponent"`
	Stable              int           `json:"stable"`
	MeanDelta           float64       `json:"mean_delta"`
	SignificantShifts   int           `json:"significant_shifts"`
	LargestImprovement  *SwingExtreme `json:"largest_improvement,omitempty"`
	LargestDecline      *SwingExtreme `json:"largest_decline,omitempty"`
}

// SwingExtreme names the single largest swing in one direction.
type SwingExtreme struct {
	District int     `json:"district"`
	Delta    float64 `json:"delta"`
}

// CycleComparison is the full output of comparing two cycles: one shift
// per district plus the period summary. Computed fresh per period
// selection; nothing is carried over between selections.
type CycleComparison struct {
	CurrentYear  string        `json:"current_year"`
	PreviousYear string        `json:"previous_year"`
	Shifts       []MarginShift `json:"shifts"`
	Summary      ShiftSummary  `json:"summary"`
}

// CompareCycles computes per-district margin movement between two named
// election cycles and the aggregate summary for the period. A district
// missing a margin in either cycle yields a nil delta and is excluded
// from every aggregate; an unknown margin is never read as zero.
func CompareCycles(history map[int]History, currentYear, previousYear string) *CycleComparison {
	cmp := &CycleComparison{
		CurrentYear:  currentYear,
		PreviousYear: previousYear,
		Summary: ShiftSummary{
			CurrentYear:  currentYear,
			PreviousYear: previousYear,
		},
	}

	var deltaSum float64

	for number := range history {
		h := history[number]
		shift := MarginShift{
			District:     number,
			CurrentYear:  currentYear,
			PreviousYear: previousYear,
		}

		if m, ok := h.MarginIn(currentYear); ok {
			cur := m
			shift.CurrentMargin = &cur
		}
		if m, ok := h.MarginIn(previousYear); ok {
			prev := m
			shift.PreviousMargin = &prev
		}

		if shift.CurrentMargin == nil || shift.PreviousMargin == nil {
			cmp.Summary.Excluded++
			cmp.Shifts = append(cmp.Shifts, shift)
			continue
		}

		d := *shift.CurrentMargin - *shift.PreviousMargin
		shift.Delta = &d
		shift.ImprovedForTarget = d < 0
		shift.Magnitude = abs(d)
		shift.Significant = shift.Magnitude >= SignificantShiftThreshold
		shift.Direction = classifyShift(d)

		cmp.Summary.Compared++
		deltaSum += d
		switch shift.Direction {
		case ShiftImprovedForTarget:
			cmp.Summary.ImprovedForTarget++
		case ShiftImprovedForOpponent:
			cmp.Summary.ImprovedForOpponent++
		default:
			cmp.Summary.Stable++
		}
		if shift.Significant {
			cmp.Summary.SignificantShifts++
		}
		if d < 0 && (cmp.Summary.LargestImprovement == nil || d < cmp.Summary.LargestImprovement.Delta) {
			cmp.Summary.LargestImprovement = &SwingExtreme{District: number, Delta: d}
		}
		if d > 0 && (cmp.Summary.LargestDecline == nil || d > cmp.Summary.LargestDecline.Delta) {
			cmp.Summary.LargestDecline = &SwingExtreme{District: number, Delta: d}
		}

		cmp.Shifts = append(cmp.Shifts, shift)
	}

	if cmp.Summary.Compared > 0 {
		cmp.Summary.MeanDelta = deltaSum / float64(cmp.Summary.Compared)
	}

	sort.Slice(cmp.Shifts, func(i, j int) bool {
		return cmp.Shifts[i].District < cmp.Shifts[j].District
	})

	return cmp
}

// classifyShift applies the dead zone around zero.
func classifyShift(delta float64) ShiftDirection {
	switch {
	case delta < -ShiftDeadZone:
		return ShiftImprovedForTarget
	case delta > ShiftDeadZone:
		return ShiftImprovedForOpponent
	default:
		return ShiftStable
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
