// Package chamber defines the core legislative data model for the election map.
// These types are the shared vocabulary across all modules: district records,
// candidate filings, and per-cycle election history for one chamber at a time.
package chamber

import (
	"sort"
	"strconv"
	"time"
)

// Party is a party affiliation in its canonical single-letter form.
// Minor-party letters pass through unchanged; the engine only branches
// on the two major parties and treats everything else as unknown.
type Party string

const (
	Dem     Party = "D"
	Rep     Party = "R"
	Unknown Party = ""
)

// Major reports whether p is one of the two major parties.
func (p Party) Major() bool {
	return p == Dem || p == Rep
}

// Opponent returns the other major party, or Unknown for anything else.
func (p Party) Opponent() Party {
	switch p {
	case Dem:
		return Rep
	case Rep:
		return Dem
	default:
		return Unknown
	}
}

// District represents one legislative seat and its current candidate field.
// Districts are immutable inputs; the engine never mutates them.
type District struct {
	Number     int         `json:"number"`               // positive, unique within a chamber
	Incumbent  *Incumbent  `json:"incumbent,omitempty"`  // nil = open seat
	Candidates []Candidate `json:"candidates,omitempty"` // filed for the upcoming cycle
}

// Incumbent is the current seat holder.
type Incumbent struct {
	Name  string `json:"name"`
	Party Party  `json:"party"`
}

// Candidate is a filed candidate for the upcoming cycle.
type Candidate struct {
	Name    string `json:"name"`
	Party   Party  `json:"party,omitempty"`    // empty when the filing lists no affiliation
	FiledAt string `json:"filed_at,omitempty"` // filing date label from the source export
}

// Open reports whether the seat has no incumbent.
func (d *District) Open() bool {
	return d.Incumbent == nil
}

// HeldBy reports whether the seat's incumbent belongs to party p.
func (d *District) HeldBy(p Party) bool {
	return d.Incumbent != nil && d.Incumbent.Party == p
}

// HasCandidateFrom reports whether any filed candidate belongs to party p.
func (d *District) HasCandidateFrom(p Party) bool {
	for _, c := range d.Candidates {
		if c.Party == p {
			return true
		}
	}
	return false
}

// Control returns the district's baseline party control: the incumbent's
// party when it is a major party, Unknown for open seats and minor parties.
func (d *District) Control() Party {
	if d.Incumbent != nil && d.Incumbent.Party.Major() {
		return d.Incumbent.Party
	}
	return Unknown
}

// Result is the outcome of one election cycle in one district.
type Result struct {
	TotalVotes int     `json:"total_votes"`
	Margin     float64 `json:"margin"` // winning-side margin, percentage points
	Contested  bool    `json:"contested"`
}

// History holds a district's past results keyed by election year label
// ("2024"), plus the precomputed competitiveness score used by scoring.
type History struct {
	Results         map[string]Result `json:"results"`
	Competitiveness float64           `json:"competitiveness"` // 0-100
}

// Years returns the history's year labels ordered newest first.
func (h *History) Years() []string {
	if h == nil || len(h.Results) == 0 {
		return nil
	}
	years := make([]string, 0, len(h.Results))
	for y := range h.Results {
		years = append(years, y)
	}
	SortYearsDesc(years)
	return years
}

// MarginIn looks up the margin for one year label.
func (h *History) MarginIn(year string) (float64, bool) {
	if h == nil {
		return 0, false
	}
	r, ok := h.Results[year]
	if !ok {
		return 0, false
	}
	return r.Margin, true
}

// LatestMargin returns the margin of the most recent cycle with data.
func (h *History) LatestMargin() (float64, bool) {
	years := h.Years()
	if len(years) == 0 {
		return 0, false
	}
	return h.Results[years[0]].Margin, true
}

// RecentMargins returns up to n margins, newest first.
func (h *History) RecentMargins(n int) []float64 {
	years := h.Years()
	if len(years) > n {
		years = years[:n]
	}
	margins := make([]float64, 0, len(years))
	for _, y := range years {
		margins = append(margins, h.Results[y].Margin)
	}
	return margins
}

// LastTwoMargins returns the margins of the two most recent cycles with
// data, newest first. ok is false when fewer than two cycles exist.
func (h *History) LastTwoMargins() (current, previous float64, ok bool) {
	margins := h.RecentMargins(2)
	if len(margins) < 2 {
		return 0, 0, false
	}
	return margins[0], margins[1], true
}

// SortYearsDesc orders year labels newest first. Labels are compared
// numerically when both parse as integers, lexicographically otherwise.
func SortYearsDesc(years []string) {
	sort.Slice(years, func(i, j int) bool {
		yi, erri := strconv.Atoi(years[i])
		yj, errj := strconv.Atoi(years[j])
		if erri == nil && errj == nil {
			return yi > yj
		}
		return years[i] > years[j]
	})
}

// BaselineControl derives the scenario baseline map (district number to
// current party control) from a district slice.
func BaselineControl(districts []District) map[int]Party {
	baseline := make(map[int]Party, len(districts))
	for i := range districts {
		baseline[districts[i].Number] = districts[i].Control()
	}
	return baseline
}

// Dataset bundles one chamber's districts and election history with
// provenance metadata. Datasets are immutable once created.
type Dataset struct {
	ID          string          `json:"id"`
	Chamber     string          `json:"chamber"` // display name: "SC House"
	Cycle       string          `json:"cycle"`   // upcoming cycle label: "2026"
	Source      string          `json:"source,omitempty"`
	Districts   []District      `json:"districts"`
	History     map[int]History `json:"history"` // keyed by district number
	Stats       DatasetStats    `json:"stats"`
	RetrievedAt time.Time       `json:"retrieved_at"`
}

// DatasetStats holds summary statistics for a dataset.
type DatasetStats struct {
	DistrictCount  int      `json:"district_count"`
	OpenSeats      int      `json:"open_seats"`
	CandidateCount int      `json:"candidate_count"`
	CyclesCovered  []string `json:"cycles_covered,omitempty"`
}

// ComputeStats recalculates the dataset's summary statistics in place.
func (ds *Dataset) ComputeStats() {
	stats := DatasetStats{DistrictCount: len(ds.Districts)}
	for i := range ds.Districts {
		if ds.Districts[i].Open() {
			stats.OpenSeats++
		}
		stats.CandidateCount += len(ds.Districts[i].Candidates)
	}
	cycles := make(map[string]bool)
	for _, h := range ds.History {
		for y := range h.Results {
			cycles[y] = true
		}
	}
	for y := range cycles {
		stats.CyclesCovered = append(stats.CyclesCovered, y)
	}
	SortYearsDesc(stats.CyclesCovered)
	ds.Stats = stats
}

// DistrictByNumber returns the district with the given number, or nil.
func (ds *Dataset) DistrictByNumber(n int) *District {
	for i := range ds.Districts {
		if ds.Districts[i].Number == n {
			return &ds.Districts[i]
		}
	}
	return nil
}

// HistoryFor returns the history record for a district number, or nil
// when the district has no recorded history.
func (ds *Dataset) HistoryFor(n int) *History {
	h, ok := ds.History[n]
	if !ok {
		return nil
	}
	return &h
}
