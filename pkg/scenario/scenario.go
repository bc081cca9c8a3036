// Package scenario implements the what-if seat simulation layered on a
// chamber's baseline party control.
//
// A scenario is a sparse override map: districts absent from the map sit
// at their baseline. Toggling walks a fixed per-baseline cycle that
// skips the district's own party, so an override can never restate what
// the seat already is.
package scenario

import (
	"fmt"
	"sort"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Status is a district's simulated position in a scenario.
type Status string

const (
	StatusBaseline   Status = "baseline"
	StatusFlippedDem Status = "flipped_dem"
	StatusFlippedRep Status = "flipped_rep"
	StatusTossup     Status = "tossup"
)

// SeatCounts is the chamber-level seat tally under a scenario.
type SeatCounts struct {
	Dem    int `json:"dem"`
	Rep    int `json:"rep"`
	Tossup int `json:"tossup"`
}

// Scenario is one session's override state over a chamber baseline.
// Not safe for concurrent use; each session owns its own instance.
type Scenario struct {
	baseline  map[int]chamber.Party
	overrides map[int]Status
}

// New creates an empty scenario over a chamber baseline. The baseline
// map is held by reference and must not change while the scenario lives.
func New(baseline map[int]chamber.Party) *Scenario {
	return &Scenario{
		baseline:  baseline,
		overrides: make(map[int]Status),
	}
}

// cycleFor returns the toggle order for a district with the given
// baseline control. The district's own party is skipped: flipping a seat
// to the party that already holds it is a no-op state.
func cycleFor(baseline chamber.Party) []Status {
	switch baseline {
	case chamber.Dem:
		return []Status{StatusBaseline, StatusFlippedRep, StatusTossup}
	case chamber.Rep:
		return []Status{StatusBaseline, StatusFlippedDem, StatusTossup}
	default:
		return []Status{StatusBaseline, StatusTossup, StatusFlippedDem, StatusFlippedRep}
	}
}

// conflictsWithBaseline reports whether a status restates the district's
// own baseline control.
func conflictsWithBaseline(status Status, baseline chamber.Party) bool {
	switch status {
	case StatusFlippedDem:
		return baseline == chamber.Dem
	case StatusFlippedRep:
		return baseline == chamber.Rep
	default:
		return false
	}
}

// Status returns the district's current status, StatusBaseline when no
// override is set.
func (s *Scenario) Status(district int) Status {
	if status, ok := s.overrides[district]; ok {
		return status
	}
	return StatusBaseline
}

// Toggle advances a district one step along its cycle and returns the
// new status. Reaching baseline removes the map entry, keeping the
// override map sparse.
func (s *Scenario) Toggle(district int) (Status, error) {
	baseline, ok := s.baseline[district]
	if !ok {
		return StatusBaseline, fmt.Errorf("district %d is not in the chamber baseline", district)
	}

	cycle := cycleFor(baseline)
	current := s.Status(district)
	idx := 0
	for i, status := range cycle {
		if status == current {
			idx = i
			break
		}
	}

	next := cycle[(idx+1)%len(cycle)]
	if next == StatusBaseline {
		delete(s.overrides, district)
	} else {
		s.overrides[district] = next
	}
	return next, nil
}

// Set writes a district's status directly, bypassing the cycle. Setting
// StatusBaseline removes the override; setting a flip to the district's
// own baseline party is rejected.
func (s *Scenario) Set(district int, status Status) error {
	baseline, ok := s.baseline[district]
	if !ok {
		return fmt.Errorf("district %d is not in the chamber baseline", district)
	}

	switch status {
	case StatusBaseline:
		delete(s.overrides, district)
		return nil
	case StatusFlippedDem, StatusFlippedRep, StatusTossup:
		if conflictsWithBaseline(status, baseline) {
			return fmt.Errorf("district %d already belongs to that party at baseline", district)
		}
		s.overrides[district] = status
		return nil
	default:
		return fmt.Errorf("unknown status %q", status)
	}
}

// Reset clears every override.
func (s *Scenario) Reset() {
	s.overrides = make(map[int]Status)
}

// Overrides returns a copy of the override map.
func (s *Scenario) Overrides() map[int]Status {
	out := make(map[int]Status, len(s.overrides))
	for district, status := range s.overrides {
		out[district] = status
	}
	return out
}

// OverrideCount returns the number of districts moved off baseline.
func (s *Scenario) OverrideCount() int {
	return len(s.overrides)
}

// Districts returns the overridden district numbers in ascending order.
func (s *Scenario) Districts() []int {
	districts := make([]int, 0, len(s.overrides))
	for district := range s.overrides {
		districts = append(districts, district)
	}
	sort.Ints(districts)
	return districts
}

// SeatCounts recomputes the chamber tally from scratch. Open and
// minor-party seats count in the tossup column.
func (s *Scenario) SeatCounts() SeatCounts {
	var counts SeatCounts
	for district, baseline := range s.baseline {
		status, ok := s.overrides[district]
		if !ok {
			switch baseline {
			case chamber.Dem:
				counts.Dem++
			case chamber.Rep:
				counts.Rep++
			default:
				counts.Tossup++
			}
			continue
		}
		switch status {
		case StatusFlippedDem:
			counts.Dem++
		case StatusFlippedRep:
			counts.Rep++
		default:
			counts.Tossup++
		}
	}
	return counts
}

// BaselineCounts tallies the chamber with no overrides applied.
func (s *Scenario) BaselineCounts() SeatCounts {
	var counts SeatCounts
	for _, baseline := range s.baseline {
		switch baseline {
		case chamber.Dem:
			counts.Dem++
		case chamber.Rep:
			counts.Rep++
		default:
			counts.Tossup++
		}
	}
	return counts
}
