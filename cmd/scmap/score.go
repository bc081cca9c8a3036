package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/config"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/surface"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		datasetPath   string
		districtsPath string
		historyPath   string
		chamberName   string
		target        string
		district      int
		outputFmt     string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score district opportunity for the target party",
		Long: `Scores every district (or one district) against the four-factor
opportunity model and renders the assessment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(scoreOpts{
				inputs: inputOpts{
					dataset:   datasetPath,
					districts: districtsPath,
					history:   historyPath,
					chamber:   chamberName,
				},
				target:    target,
				district:  district,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset file (default: newest import)")
	cmd.Flags().StringVar(&districtsPath, "districts", "", "Path to a districts file (overrides --dataset)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Path to a history file (with --districts)")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&target, "target", "", "Target party: D or R (default: from config)")
	cmd.Flags().IntVar(&district, "district", 0, "Score a single district number")
	cmd.Flags().StringVar(&outputFmt, "format", "text", "Output format: text, json, or markdown")

	return cmd
}

type scoreOpts struct {
	inputs    inputOpts
	target    string
	district  int
	outputFmt string
}

func runScore(opts scoreOpts) error {
	cfg := loadConfig()

	ds, err := loadInputs(cfg, opts.inputs)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, opts.target)
	if err != nil {
		return err
	}

	renderer := surface.ForFormat(opts.outputFmt)

	if opts.district > 0 {
		d := ds.DistrictByNumber(opts.district)
		if d == nil {
			return fmt.Errorf("district %d is not in the dataset", opts.district)
		}
		result, err := engine.Score(d, ds.HistoryFor(opts.district))
		if err != nil {
			return fmt.Errorf("scoring district %d: %w", opts.district, err)
		}
		return renderer.RenderScore(os.Stdout, result)
	}

	fmt.Fprintf(os.Stderr, "Scoring %d districts for %s...\n", len(ds.Districts), string(engine.Target()))
	results, err := engine.ScoreAll(ds.Districts, ds.History)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	saveScoreRun(firstNonEmpty(opts.inputs.chamber, cfg.Chamber), ds, engine.Target(), results)

	return renderer.RenderRun(os.Stdout, results)
}

// saveScoreRun persists a score run to the local cache for later review.
func saveScoreRun(chamberName string, ds *chamber.Dataset, target chamber.Party, results []scoring.ScoreResult) {
	scoreDir := config.ScoreDir(chamberName)
	if err := os.MkdirAll(scoreDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create score dir: %v\n", err)
		return
	}

	run := struct {
		DatasetID string                `json:"dataset_id"`
		Target    chamber.Party         `json:"target_party"`
		ScoredAt  string                `json:"scored_at"`
		Results   []scoring.ScoreResult `json:"results"`
	}{
		DatasetID: ds.ID,
		Target:    target,
		ScoredAt:  time.Now().UTC().Format(time.RFC3339),
		Results:   results,
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal score run: %v\n", err)
		return
	}

	path := filepath.Join(scoreDir, time.Now().UTC().Format("20060102-150405")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save score run: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Score run saved: %s\n", path)
}

// inputOpts names the dataset inputs shared by the analysis commands.
type inputOpts struct {
	dataset   string
	districts string
	history   string
	chamber   string
}

// loadInputs resolves the dataset to analyze: an explicit dataset file,
// a districts file (optionally with history), or the newest import in
// the local cache.
func loadInputs(cfg *config.Config, opts inputOpts) (*chamber.Dataset, error) {
	chamberName := firstNonEmpty(opts.chamber, cfg.Chamber)

	switch {
	case opts.dataset != "":
		return chamber.LoadDataset(opts.dataset)
	case opts.districts != "":
		districts, err := chamber.LoadDistricts(opts.districts)
		if err != nil {
			return nil, err
		}
		ds := &chamber.Dataset{
			Chamber:   chamberName,
			Cycle:     cfg.Cycle,
			Districts: districts,
			History:   map[int]chamber.History{},
		}
		if opts.history != "" {
			history, err := chamber.LoadHistory(opts.history)
			if err != nil {
				return nil, err
			}
			ds.History = history
		}
		ds.ComputeStats()
		return ds, nil
	}

	path, err := newestDataset(config.DatasetDir(chamberName))
	if err != nil {
		return nil, err
	}
	return chamber.LoadDataset(path)
}

// newestDataset picks the most recent import by the stamp in its name.
func newestDataset(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("no datasets in %s; run scmap import first", dir)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no datasets in %s; run scmap import first", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// buildEngine assembles the scoring engine from config plus the --target
// override. Config weights replace the defaults when present.
func buildEngine(cfg *config.Config, targetFlag string) (*scoring.Engine, error) {
	target := chamber.Party(firstNonEmpty(targetFlag, cfg.Target, "D"))
	if !target.Major() {
		return nil, fmt.Errorf("target party %q must be D or R", string(target))
	}

	if len(cfg.Scoring.Weights) > 0 {
		weights, err := scoring.WeightsFromMap(cfg.Scoring.Weights)
		if err != nil {
			return nil, fmt.Errorf("config weights: %w", err)
		}
		return scoring.NewEngineWithWeights(target, weights, scoring.DefaultFactors()...), nil
	}
	return scoring.NewEngine(target, scoring.DefaultFactors()...), nil
}
