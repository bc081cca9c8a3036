package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/config"
)

func TestImportCmdFlags(t *testing.T) {
	cmd := newImportCmd()
	f := cmd.Flags()

	source, _ := f.GetString("source")
	if source != "scvotes" {
		t.Errorf("default source = %q, want scvotes", source)
	}

	for _, flag := range []string{"roster", "filings", "results", "chamber", "cycle", "source", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestScoreCmdFlags(t *testing.T) {
	cmd := newScoreCmd()
	f := cmd.Flags()

	outputFmt, _ := f.GetString("format")
	if outputFmt != "text" {
		t.Errorf("default format = %q, want text", outputFmt)
	}
	district, _ := f.GetInt("district")
	if district != 0 {
		t.Errorf("default district = %d, want 0", district)
	}

	for _, flag := range []string{"dataset", "districts", "history", "chamber", "target", "district", "format"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestTargetsCmdFlags(t *testing.T) {
	cmd := newTargetsCmd()
	f := cmd.Flags()

	for _, flag := range []string{"dataset", "districts", "history", "chamber", "target", "min-score", "limit", "format"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestShiftCmdFlags(t *testing.T) {
	cmd := newShiftCmd()
	f := cmd.Flags()

	for _, flag := range []string{"dataset", "districts", "history", "chamber", "current", "previous", "format"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestScenarioCmdFlags(t *testing.T) {
	cmd := newScenarioCmd()
	f := cmd.Flags()

	for _, flag := range []string{"dataset", "districts", "history", "chamber", "state", "toggle", "save"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()
	f := cmd.Flags()

	port, _ := f.GetString("port")
	if port != "7700" {
		t.Errorf("default port = %q, want 7700", port)
	}

	for _, flag := range []string{"dataset", "districts", "history", "chamber", "target", "port"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestSourceFor(t *testing.T) {
	if _, err := sourceFor("scvotes"); err != nil {
		t.Errorf("sourceFor(scvotes) error: %v", err)
	}
	if _, err := sourceFor("ballotpedia"); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestNewestDataset(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"20250101-000000.json", "20260301-120000.json", "notes.txt"} {
		if err := chamber.SaveDataset(filepath.Join(dir, name), &chamber.Dataset{Chamber: "SC House"}); err != nil {
			t.Fatalf("save dataset: %v", err)
		}
	}

	got, err := newestDataset(dir)
	if err != nil {
		t.Fatalf("newestDataset: %v", err)
	}
	if filepath.Base(got) != "20260301-120000.json" {
		t.Errorf("newest = %q, want 20260301-120000.json", filepath.Base(got))
	}
}

func TestNewestDatasetEmpty(t *testing.T) {
	_, err := newestDataset(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "scmap import") {
		t.Errorf("error = %v, want import hint", err)
	}
}

func TestLoadInputsExplicitDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds.json")
	want := &chamber.Dataset{
		ID:        "ds-42",
		Chamber:   "SC House",
		Districts: []chamber.District{{Number: 7}},
	}
	if err := chamber.SaveDataset(path, want); err != nil {
		t.Fatalf("save dataset: %v", err)
	}

	ds, err := loadInputs(config.DefaultConfig(), inputOpts{dataset: path})
	if err != nil {
		t.Fatalf("loadInputs: %v", err)
	}
	if ds.ID != "ds-42" || len(ds.Districts) != 1 {
		t.Errorf("loaded dataset = %+v", ds)
	}
}

func TestLoadInputsDistrictsAndHistory(t *testing.T) {
	dir := t.TempDir()
	districtsPath := filepath.Join(dir, "districts.json")
	historyPath := filepath.Join(dir, "history.json")

	districts := []chamber.District{
		{Number: 3, Incumbent: &chamber.Incumbent{Name: "J. Orr", Party: chamber.Rep}},
		{Number: 9},
	}
	if err := chamber.SaveDistricts(districtsPath, districts); err != nil {
		t.Fatalf("save districts: %v", err)
	}
	history := map[int]chamber.History{
		3: {Results: map[string]chamber.Result{"2024": {Margin: 5, Contested: true, TotalVotes: 18000}}},
	}
	if err := chamber.SaveHistory(historyPath, history); err != nil {
		t.Fatalf("save history: %v", err)
	}

	ds, err := loadInputs(config.DefaultConfig(), inputOpts{districts: districtsPath, history: historyPath})
	if err != nil {
		t.Fatalf("loadInputs: %v", err)
	}
	if ds.Stats.DistrictCount != 2 || ds.Stats.OpenSeats != 1 {
		t.Errorf("stats = %+v, want 2 districts with 1 open seat", ds.Stats)
	}
	if _, ok := ds.History[3]; !ok {
		t.Error("history was not attached to the dataset")
	}
}

func TestLoadInputsNoImports(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := loadInputs(config.DefaultConfig(), inputOpts{})
	if err == nil || !strings.Contains(err.Error(), "scmap import") {
		t.Errorf("error = %v, want import hint", err)
	}
}

func TestBuildEngine(t *testing.T) {
	cfg := config.DefaultConfig()

	engine, err := buildEngine(cfg, "R")
	if err != nil {
		t.Fatalf("buildEngine: %v", err)
	}
	if engine.Target() != chamber.Rep {
		t.Errorf("target = %q, want R", engine.Target())
	}

	if _, err := buildEngine(cfg, "G"); err == nil {
		t.Error("expected error for minor target party")
	}
}

func TestBuildEngineConfigWeights(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scoring.Weights = map[string]float64{
		"opportunity":    0.25,
		"mobilization":   0.25,
		"donor_capacity": 0.25,
		"trending":       0.25,
	}

	if _, err := buildEngine(cfg, ""); err != nil {
		t.Fatalf("buildEngine with config weights: %v", err)
	}

	cfg.Scoring.Weights["opportunity"] = 0.9
	if _, err := buildEngine(cfg, ""); err == nil {
		t.Error("expected error for weights that do not sum to 1")
	}
}