package scvotes

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/normalize"
)

func mustParseRows(t *testing.T, csv string) []row {
	t.Helper()
	rows, err := parseRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseRows: %v", err)
	}
	return rows
}

func TestParseRows(t *testing.T) {
	rows := mustParseRows(t, "District,Member,Party\n1, J. Smith ,R\n2,A. Jones,D\n")

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Line numbers count the header.
	if rows[0].line != 2 {
		t.Errorf("rows[0].line = %d, want 2", rows[0].line)
	}
	// Headers are lower-cased, cells trimmed.
	if got := rows[0].get("member"); got != "J. Smith" {
		t.Errorf("member = %q, want %q", got, "J. Smith")
	}
	if got := rows[1].get("district"); got != "2" {
		t.Errorf("district = %q, want %q", got, "2")
	}
}

func TestRowDistrict(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{"1", 1, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := row{cells: map[string]string{"district": tt.raw}}
			got, err := r.district()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("district() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("district() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("district() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResultFor(t *testing.T) {
	tests := []struct {
		name          string
		tallies       []int
		wantTotal     int
		wantMargin    float64
		wantContested bool
		wantOK        bool
	}{
		{"two-way race", []int{5200, 4800}, 10000, 4.0, true, true},
		{"unsorted input", []int{2000, 5000, 3000}, 10000, 20.0, true, true},
		{"walkover", []int{7000}, 7000, 100, false, true},
		{"opponent drew no votes", []int{7000, 0}, 7000, 100, false, true},
		{"no votes at all", []int{0, 0}, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resultFor(tt.tallies)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.TotalVotes != tt.wantTotal {
				t.Errorf("TotalVotes = %d, want %d", got.TotalVotes, tt.wantTotal)
			}
			if math.Abs(got.Margin-tt.wantMargin) > 1e-9 {
				t.Errorf("Margin = %v, want %v", got.Margin, tt.wantMargin)
			}
			if got.Contested != tt.wantContested {
				t.Errorf("Contested = %v, want %v", got.Contested, tt.wantContested)
			}
		})
	}
}

func TestCompetitivenessFrom(t *testing.T) {
	tests := []struct {
		name    string
		margins []float64
		want    float64
	}{
		{"no history", nil, 0},
		{"dead heats", []float64{0, 0}, 100},
		{"close races", []float64{4, 6}, 90},
		{"blowouts floor at zero", []float64{100, 80}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make(map[string]chamber.Result, len(tt.margins))
			for i, m := range tt.margins {
				results[string(rune('a'+i))] = chamber.Result{Margin: m}
			}
			if got := competitivenessFrom(results); got != tt.want {
				t.Errorf("competitivenessFrom = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildResult(t *testing.T) {
	roster := mustParseRows(t, `district,member,party
1,J. Smith,Republican
2,A. Jones,Democratic
3,,
x,Bad Row,R
`)
	filings := mustParseRows(t, `district,candidate,party,filed
1,M. Rivera,D,2026-03-21
9,Nobody,D,2026-03-01
2,,D,2026-03-02
`)
	results := mustParseRows(t, `year,district,candidate,party,votes
2024,1,J. Smith,R,5200
2024,1,L. Chen,D,4800
2022,1,J. Smith,R,6000
2022,1,P. Ortiz,D,4000
2024,2,A. Jones,D,7000
2024,3,Nobody Voted,R,0
`)

	req := normalize.Request{Chamber: "SC House", Cycle: "2026"}
	res := buildResult(req, roster, filings, results, time.Now())
	ds := res.Dataset

	if ds.Chamber != "SC House" || ds.Cycle != "2026" || ds.Source != "scvotes" {
		t.Errorf("dataset metadata = %q/%q/%q", ds.Chamber, ds.Cycle, ds.Source)
	}
	if ds.ID == "" {
		t.Error("expected a generated dataset ID")
	}

	if len(ds.Districts) != 3 {
		t.Fatalf("got %d districts, want 3", len(ds.Districts))
	}
	for i, want := range []int{1, 2, 3} {
		if ds.Districts[i].Number != want {
			t.Errorf("district %d in order = %d, want %d", i, ds.Districts[i].Number, want)
		}
	}

	d1 := ds.DistrictByNumber(1)
	if d1.Incumbent == nil || d1.Incumbent.Party != chamber.Rep {
		t.Error("district 1 should have a Republican incumbent")
	}
	if len(d1.Candidates) != 1 || d1.Candidates[0].Name != "M. Rivera" || d1.Candidates[0].Party != chamber.Dem {
		t.Errorf("district 1 candidates = %+v", d1.Candidates)
	}
	if d1.Candidates[0].FiledAt != "2026-03-21" {
		t.Errorf("FiledAt = %q", d1.Candidates[0].FiledAt)
	}
	if !ds.DistrictByNumber(3).Open() {
		t.Error("district 3 with blank member should be open")
	}

	h1 := ds.HistoryFor(1)
	if h1 == nil {
		t.Fatal("district 1 should have history")
	}
	if m, ok := h1.MarginIn("2024"); !ok || math.Abs(m-4.0) > 1e-9 {
		t.Errorf("2024 margin = %v, %v, want 4.0", m, ok)
	}
	if m, ok := h1.MarginIn("2022"); !ok || math.Abs(m-20.0) > 1e-9 {
		t.Errorf("2022 margin = %v, %v, want 20.0", m, ok)
	}
	// 100 - 2*mean(4, 20)
	if math.Abs(h1.Competitiveness-76.0) > 1e-9 {
		t.Errorf("district 1 competitiveness = %v, want 76", h1.Competitiveness)
	}

	h2 := ds.HistoryFor(2)
	if h2 == nil {
		t.Fatal("district 2 should have history")
	}
	if r := h2.Results["2024"]; r.Contested || r.Margin != 100 {
		t.Errorf("district 2 walkover = %+v", r)
	}
	if h2.Competitiveness != 0 {
		t.Errorf("district 2 competitiveness = %v, want 0", h2.Competitiveness)
	}

	// The zero-vote cycle is dropped, not recorded as history.
	if ds.HistoryFor(3) != nil {
		t.Error("district 3 should have no history")
	}

	if len(res.Warnings) != 4 {
		t.Errorf("got %d warnings, want 4: %v", len(res.Warnings), res.Warnings)
	}
	joined := strings.Join(res.Warnings, "\n")
	for _, want := range []string{
		`roster line 5: district "x"`,
		"filings line 3: district 9 is not on the roster",
		"filings line 4: missing candidate name",
		"district 3 year 2024 has no votes recorded",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing warning %q in %v", want, res.Warnings)
		}
	}

	if ds.Stats.DistrictCount != 3 || ds.Stats.OpenSeats != 1 || ds.Stats.CandidateCount != 1 {
		t.Errorf("stats = %+v", ds.Stats)
	}
	if len(ds.Stats.CyclesCovered) != 2 || ds.Stats.CyclesCovered[0] != "2024" {
		t.Errorf("cycles covered = %v", ds.Stats.CyclesCovered)
	}
}
