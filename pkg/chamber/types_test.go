package chamber

import (
	"reflect"
	"testing"
)

func TestPartyHelpers(t *testing.T) {
	if !Dem.Major() || !Rep.Major() {
		t.Error("expected D and R to be major parties")
	}
	if Unknown.Major() || Party("I").Major() {
		t.Error("expected unknown and minor parties to be non-major")
	}
	if Dem.Opponent() != Rep {
		t.Errorf("Dem.Opponent() = %q, want %q", Dem.Opponent(), Rep)
	}
	if Rep.Opponent() != Dem {
		t.Errorf("Rep.Opponent() = %q, want %q", Rep.Opponent(), Dem)
	}
	if Party("I").Opponent() != Unknown {
		t.Errorf("minor party opponent = %q, want unknown", Party("I").Opponent())
	}
}

func TestDistrictHelpers(t *testing.T) {
	tests := []struct {
		name        string
		district    District
		wantOpen    bool
		wantHeldDem bool
		wantControl Party
	}{
		{
			name:        "open seat",
			district:    District{Number: 7},
			wantOpen:    true,
			wantControl: Unknown,
		},
		{
			name: "dem incumbent",
			district: District{
				Number:    12,
				Incumbent: &Incumbent{Name: "J. Smith", Party: Dem},
			},
			wantHeldDem: true,
			wantControl: Dem,
		},
		{
			name: "rep incumbent",
			district: District{
				Number:    33,
				Incumbent: &Incumbent{Name: "A. Jones", Party: Rep},
			},
			wantControl: Rep,
		},
		{
			name: "minor party incumbent has unknown control",
			district: District{
				Number:    41,
				Incumbent: &Incumbent{Name: "C. Ray", Party: Party("I")},
			},
			wantControl: Unknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.district.Open(); got != tc.wantOpen {
				t.Errorf("Open() = %v, want %v", got, tc.wantOpen)
			}
			if got := tc.district.HeldBy(Dem); got != tc.wantHeldDem {
				t.Errorf("HeldBy(Dem) = %v, want %v", got, tc.wantHeldDem)
			}
			if got := tc.district.Control(); got != tc.wantControl {
				t.Errorf("Control() = %q, want %q", got, tc.wantControl)
			}
		})
	}
}

func TestHasCandidateFrom(t *testing.T) {
	d := District{
		Number: 5,
		Candidates: []Candidate{
			{Name: "One", Party: Rep},
			{Name: "Two", Party: Party("I")},
			{Name: "Three"}, // no affiliation listed
		},
	}

	if !d.HasCandidateFrom(Rep) {
		t.Error("expected a Rep candidate")
	}
	if d.HasCandidateFrom(Dem) {
		t.Error("did not expect a Dem candidate")
	}
	if !d.HasCandidateFrom(Unknown) {
		t.Error("expected an unaffiliated candidate to match Unknown")
	}
}

func TestSortYearsDesc(t *testing.T) {
	tests := []struct {
		name  string
		years []string
		want  []string
	}{
		{
			name:  "numeric labels newest first",
			years: []string{"2018", "2024", "2020", "2022"},
			want:  []string{"2024", "2022", "2020", "2018"},
		},
		{
			name:  "non-numeric labels fall back to lexicographic",
			years: []string{"2020-special", "2024", "2020"},
			want:  []string{"2024", "2020-special", "2020"},
		},
		{
			name:  "empty",
			years: []string{},
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			SortYearsDesc(tc.years)
			if !reflect.DeepEqual(tc.years, tc.want) {
				t.Errorf("sorted = %v, want %v", tc.years, tc.want)
			}
		})
	}
}

func TestHistoryAccessors(t *testing.T) {
	h := &History{
		Competitiveness: 62,
		Results: map[string]Result{
			"2024": {TotalVotes: 21000, Margin: 8, Contested: true},
			"2022": {TotalVotes: 18000, Margin: 14, Contested: true},
			"2020": {TotalVotes: 24000, Margin: 22, Contested: true},
			"2018": {TotalVotes: 17000, Margin: 30, Contested: false},
		},
	}

	if got := h.Years(); !reflect.DeepEqual(got, []string{"2024", "2022", "2020", "2018"}) {
		t.Errorf("Years() = %v", got)
	}

	m, ok := h.LatestMargin()
	if !ok || m != 8 {
		t.Errorf("LatestMargin() = %v, %v, want 8, true", m, ok)
	}

	if got := h.RecentMargins(3); !reflect.DeepEqual(got, []float64{8, 14, 22}) {
		t.Errorf("RecentMargins(3) = %v, want [8 14 22]", got)
	}

	cur, prev, ok := h.LastTwoMargins()
	if !ok || cur != 8 || prev != 14 {
		t.Errorf("LastTwoMargins() = %v, %v, %v, want 8, 14, true", cur, prev, ok)
	}

	if _, ok := h.MarginIn("2016"); ok {
		t.Error("expected no margin for 2016")
	}
}

func TestHistoryAccessorsNilSafe(t *testing.T) {
	var h *History

	if got := h.Years(); got != nil {
		t.Errorf("nil history Years() = %v, want nil", got)
	}
	if _, ok := h.LatestMargin(); ok {
		t.Error("nil history should have no latest margin")
	}
	if got := h.RecentMargins(3); len(got) != 0 {
		t.Errorf("nil history RecentMargins = %v, want empty", got)
	}
	if _, _, ok := h.LastTwoMargins(); ok {
		t.Error("nil history should have no margin pair")
	}
}

func TestBaselineControl(t *testing.T) {
	districts := []District{
		{Number: 1, Incumbent: &Incumbent{Name: "A", Party: Rep}},
		{Number: 2, Incumbent: &Incumbent{Name: "B", Party: Dem}},
		{Number: 3}, // open
		{Number: 4, Incumbent: &Incumbent{Name: "D", Party: Party("L")}},
	}

	got := BaselineControl(districts)
	want := map[int]Party{1: Rep, 2: Dem, 3: Unknown, 4: Unknown}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BaselineControl = %v, want %v", got, want)
	}
}

func TestDatasetStatsAndLookups(t *testing.T) {
	ds := &Dataset{
		Chamber: "SC House",
		Cycle:   "2026",
		Districts: []District{
			{Number: 1, Incumbent: &Incumbent{Name: "A", Party: Rep},
				Candidates: []Candidate{{Name: "X", Party: Dem}}},
			{Number: 2, Candidates: []Candidate{{Name: "Y", Party: Rep}, {Name: "Z", Party: Dem}}},
		},
		History: map[int]History{
			1: {Results: map[string]Result{"2024": {Margin: 10}, "2022": {Margin: 12}}},
			2: {Results: map[string]Result{"2024": {Margin: 4}}},
		},
	}

	ds.ComputeStats()

	if ds.Stats.DistrictCount != 2 {
		t.Errorf("DistrictCount = %d, want 2", ds.Stats.DistrictCount)
	}
	if ds.Stats.OpenSeats != 1 {
		t.Errorf("OpenSeats = %d, want 1", ds.Stats.OpenSeats)
	}
	if ds.Stats.CandidateCount != 3 {
		t.Errorf("CandidateCount = %d, want 3", ds.Stats.CandidateCount)
	}
	if !reflect.DeepEqual(ds.Stats.CyclesCovered, []string{"2024", "2022"}) {
		t.Errorf("CyclesCovered = %v, want [2024 2022]", ds.Stats.CyclesCovered)
	}

	if d := ds.DistrictByNumber(2); d == nil || d.Number != 2 {
		t.Errorf("DistrictByNumber(2) = %v", d)
	}
	if d := ds.DistrictByNumber(99); d != nil {
		t.Errorf("DistrictByNumber(99) = %v, want nil", d)
	}
	if h := ds.HistoryFor(1); h == nil || h.Results["2024"].Margin != 10 {
		t.Errorf("HistoryFor(1) = %v", h)
	}
	if h := ds.HistoryFor(99); h != nil {
		t.Errorf("HistoryFor(99) = %v, want nil", h)
	}
}
