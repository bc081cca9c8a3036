package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/config"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scenario"
	"github.com/spf13/cobra"
)

func newScenarioCmd() *cobra.Command {
	var (
		datasetPath   string
		districtsPath string
		historyPath   string
		chamberName   string
		state         string
		toggles       []int
		save          bool
	)

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Simulate what-if seat flips over the chamber baseline",
		Long: `Decodes a scenario string (e.g. "d23,r45,t67") against the chamber
baseline, optionally toggles districts, and prints the resulting seat
counts and the canonical encoded form.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(scenarioOpts{
				inputs: inputOpts{
					dataset:   datasetPath,
					districts: districtsPath,
					history:   historyPath,
					chamber:   chamberName,
				},
				state:   state,
				toggles: toggles,
				save:    save,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset file (default: newest import)")
	cmd.Flags().StringVar(&districtsPath, "districts", "", "Path to a districts file (overrides --dataset)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Path to a history file (with --districts)")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&state, "state", "", "Encoded scenario string, e.g. d23,r45,t67")
	cmd.Flags().IntSliceVar(&toggles, "toggle", nil, "District to toggle one step (repeatable)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the scenario to the local cache")

	return cmd
}

type scenarioOpts struct {
	inputs  inputOpts
	state   string
	toggles []int
	save    bool
}

func runScenario(opts scenarioOpts) error {
	cfg := loadConfig()

	ds, err := loadInputs(cfg, opts.inputs)
	if err != nil {
		return err
	}

	baseline := chamber.BaselineControl(ds.Districts)
	sc := scenario.Parse(opts.state, baseline)

	for _, district := range opts.toggles {
		if _, err := sc.Toggle(district); err != nil {
			return err
		}
	}

	if opts.save {
		saveScenario(firstNonEmpty(opts.inputs.chamber, cfg.Chamber), ds, sc)
	}

	printScenario(ds, baseline, sc)
	return nil
}

// saveScenario persists a scenario to the local cache for later review.
func saveScenario(chamberName string, ds *chamber.Dataset, sc *scenario.Scenario) {
	scenarioDir := config.ScenarioDir(chamberName)
	if err := os.MkdirAll(scenarioDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create scenario dir: %v\n", err)
		return
	}

	run := struct {
		DatasetID string              `json:"dataset_id"`
		State     string              `json:"state"`
		Baseline  scenario.SeatCounts `json:"baseline_counts"`
		Counts    scenario.SeatCounts `json:"seat_counts"`
		SavedAt   string              `json:"saved_at"`
	}{
		DatasetID: ds.ID,
		State:     sc.Serialize(),
		Baseline:  sc.BaselineCounts(),
		Counts:    sc.SeatCounts(),
		SavedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal scenario: %v\n", err)
		return
	}

	path := filepath.Join(scenarioDir, time.Now().UTC().Format("20060102-150405")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save scenario: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Scenario saved: %s\n", path)
}

func printScenario(ds *chamber.Dataset, baseline map[int]chamber.Party, sc *scenario.Scenario) {
	base := sc.BaselineCounts()
	counts := sc.SeatCounts()

	fmt.Printf("Scenario: %s (%d districts)\n", ds.Chamber, len(ds.Districts))
	fmt.Printf("  Baseline:  D %d / R %d / Tossup %d\n", base.Dem, base.Rep, base.Tossup)
	fmt.Printf("  Scenario:  D %d / R %d / Tossup %d\n", counts.Dem, counts.Rep, counts.Tossup)
	fmt.Printf("  Overrides: %d\n", sc.OverrideCount())

	if sc.OverrideCount() > 0 {
		overrides := sc.Overrides()
		fmt.Println("\nOverrides:")
		for _, district := range sc.Districts() {
			fmt.Printf("  district %d: %s (baseline %s)\n",
				district, overrides[district], controlLabel(baseline[district]))
		}
	}

	encoded := sc.Serialize()
	if encoded == "" {
		encoded = "(baseline)"
	}
	fmt.Printf("\nEncoded: %s\n", encoded)
}

func controlLabel(p chamber.Party) string {
	if !p.Major() {
		return "open"
	}
	return string(p)
}
