// Package scvotes normalizes the election commission's CSV exports
// (roster, filings, precinct-rolled results) into canonical chamber
// datasets.
package scvotes

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/normalize"
)

// Source parses election commission CSV downloads. Columns are matched
// by header name, so export column order does not matter.
type Source struct{}

// Normalize reads the requested export files and builds a dataset.
// The roster export is required; filings and results are optional.
func (s *Source) Normalize(ctx context.Context, req normalize.Request) (*normalize.Result, error) {
	start := time.Now()

	if req.RosterPath == "" {
		return nil, fmt.Errorf("roster export is required")
	}

	roster, err := readRows(req.RosterPath)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	var filings, results []row
	if req.FilingsPath != "" {
		if filings, err = readRows(req.FilingsPath); err != nil {
			return nil, fmt.Errorf("filings: %w", err)
		}
	}
	if req.ResultsPath != "" {
		if results, err = readRows(req.ResultsPath); err != nil {
			return nil, fmt.Errorf("results: %w", err)
		}
	}

	return buildResult(req, roster, filings, results, start), nil
}

// row is one export line with its cells keyed by lower-cased header.
type row struct {
	line  int
	cells map[string]string
}

func (r row) get(key string) string {
	return r.cells[key]
}

// district parses the row's district column, reporting malformed and
// non-positive values.
func (r row) district() (int, error) {
	raw := r.get("district")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("district %q is not a positive number", raw)
	}
	return n, nil
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer f.Close()
	return parseRows(f)
}

// parseRows reads a headered CSV export into rows keyed by column name.
func parseRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing export: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	rows := make([]row, 0, len(records)-1)
	for i, record := range records[1:] {
		cells := make(map[string]string, len(header))
		for j, cell := range record {
			if j < len(header) {
				cells[header[j]] = strings.TrimSpace(cell)
			}
		}
		// Line numbers are 1-based and count the header.
		rows = append(rows, row{line: i + 2, cells: cells})
	}
	return rows, nil
}

func buildResult(req normalize.Request, roster, filings, results []row, start time.Time) *normalize.Result {
	var warnings []string
	warnf := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	byNumber := make(map[int]*chamber.District)

	for _, r := range roster {
		number, err := r.district()
		if err != nil {
			warnf("roster line %d: %v", r.line, err)
			continue
		}
		if _, ok := byNumber[number]; ok {
			warnf("roster line %d: duplicate district %d", r.line, number)
			continue
		}
		d := &chamber.District{Number: number}
		// A blank member column marks a vacant seat.
		if member := r.get("member"); member != "" {
			d.Incumbent = &chamber.Incumbent{
				Name:  member,
				Party: normalize.CanonicalParty(r.get("party")),
			}
		}
		byNumber[number] = d
	}

	for _, r := range filings {
		number, err := r.district()
		if err != nil {
			warnf("filings line %d: %v", r.line, err)
			continue
		}
		d, ok := byNumber[number]
		if !ok {
			warnf("filings line %d: district %d is not on the roster", r.line, number)
			continue
		}
		name := r.get("candidate")
		if name == "" {
			warnf("filings line %d: missing candidate name", r.line)
			continue
		}
		d.Candidates = append(d.Candidates, chamber.Candidate{
			Name:    name,
			Party:   normalize.CanonicalParty(r.get("party")),
			FiledAt: r.get("filed"),
		})
	}

	history := buildHistory(results, byNumber, warnf)

	districts := make([]chamber.District, 0, len(byNumber))
	for _, d := range byNumber {
		districts = append(districts, *d)
	}
	sort.Slice(districts, func(i, j int) bool {
		return districts[i].Number < districts[j].Number
	})

	ds := &chamber.Dataset{
		ID:          uuid.New().String(),
		Chamber:     req.Chamber,
		Cycle:       req.Cycle,
		Source:      "scvotes",
		Districts:   districts,
		History:     history,
		RetrievedAt: time.Now(),
	}
	ds.ComputeStats()

	return &normalize.Result{
		Dataset:  ds,
		Warnings: warnings,
		Duration: time.Since(start),
	}
}

// buildHistory rolls candidate-level result rows up to one Result per
// district and year, then derives each district's competitiveness.
func buildHistory(results []row, byNumber map[int]*chamber.District, warnf func(string, ...any)) map[int]chamber.History {
	type cycleKey struct {
		district int
		year     string
	}
	votes := make(map[cycleKey][]int)

	for _, r := range results {
		number, err := r.district()
		if err != nil {
			warnf("results line %d: %v", r.line, err)
			continue
		}
		if _, ok := byNumber[number]; !ok {
			warnf("results line %d: district %d is not on the roster", r.line, number)
			continue
		}
		year := r.get("year")
		if year == "" {
			warnf("results line %d: missing year", r.line)
			continue
		}
		v, err := strconv.Atoi(r.get("votes"))
		if err != nil || v < 0 {
			warnf("results line %d: votes %q is not a count", r.line, r.get("votes"))
			continue
		}
		key := cycleKey{district: number, year: year}
		votes[key] = append(votes[key], v)
	}

	history := make(map[int]chamber.History)
	for key, tallies := range votes {
		result, ok := resultFor(tallies)
		if !ok {
			warnf("results: district %d year %s has no votes recorded", key.district, key.year)
			continue
		}
		h := history[key.district]
		if h.Results == nil {
			h.Results = make(map[string]chamber.Result)
		}
		h.Results[key.year] = result
		history[key.district] = h
	}

	for number, h := range history {
		h.Competitiveness = competitivenessFrom(h.Results)
		history[number] = h
	}

	return history
}

// resultFor rolls one cycle's candidate vote totals into a Result.
// ok is false when the cycle recorded no votes at all.
func resultFor(tallies []int) (chamber.Result, bool) {
	sorted := make([]int, len(tallies))
	copy(sorted, tallies)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0
	contenders := 0
	for _, v := range sorted {
		total += v
		if v > 0 {
			contenders++
		}
	}
	if total == 0 {
		return chamber.Result{}, false
	}

	// Walkover margin is 100 when nobody else drew a vote.
	margin := 100.0
	if contenders >= 2 {
		margin = float64(sorted[0]-sorted[1]) / float64(total) * 100
	}

	return chamber.Result{
		TotalVotes: total,
		Margin:     margin,
		Contested:  contenders >= 2,
	}, true
}

// competitivenessFrom derives the 0-100 competitiveness score from past
// margins: 100 minus twice the mean margin, floored at zero. A district
// that averages dead heats scores 100; one averaging 50-point blowouts
// (or walkovers) scores 0.
func competitivenessFrom(results map[string]chamber.Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Margin
	}
	mean := sum / float64(len(results))
	score := 100 - 2*mean
	if score < 0 {
		return 0
	}
	return score
}

// Verify interface satisfaction at compile time.
var _ normalize.Source = (*Source)(nil)
