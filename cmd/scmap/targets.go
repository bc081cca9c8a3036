package main

import (
	"fmt"
	"os"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/surface"
	"github.com/spf13/cobra"
)

func newTargetsCmd() *cobra.Command {
	var (
		datasetPath   string
		districtsPath string
		historyPath   string
		chamberName   string
		target        string
		minScore      float64
		limit         int
		outputFmt     string
	)

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Rank districts needing a recruited candidate",
		Long: `Ranks the districts the target party could contest but has no
candidate in, strongest opportunity first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTargets(targetsOpts{
				inputs: inputOpts{
					dataset:   datasetPath,
					districts: districtsPath,
					history:   historyPath,
					chamber:   chamberName,
				},
				target:    target,
				minScore:  minScore,
				limit:     limit,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset file (default: newest import)")
	cmd.Flags().StringVar(&districtsPath, "districts", "", "Path to a districts file (overrides --dataset)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Path to a history file (with --districts)")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&target, "target", "", "Target party: D or R (default: from config)")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum composite score (default: from config, then 50)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of targets (default: from config, 0 = all)")
	cmd.Flags().StringVar(&outputFmt, "format", "text", "Output format: text, json, or markdown")

	return cmd
}

type targetsOpts struct {
	inputs    inputOpts
	target    string
	minScore  float64
	limit     int
	outputFmt string
}

func runTargets(opts targetsOpts) error {
	cfg := loadConfig()

	ds, err := loadInputs(cfg, opts.inputs)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg, opts.target)
	if err != nil {
		return err
	}

	rankOpts := recruit.Options{MinScore: opts.minScore, Limit: opts.limit}
	if rankOpts.MinScore == 0 {
		rankOpts.MinScore = cfg.Recruit.MinScore
	}
	if rankOpts.Limit == 0 {
		rankOpts.Limit = cfg.Recruit.Limit
	}

	targets, err := recruit.Rank(engine, ds.Districts, ds.History, rankOpts)
	if err != nil {
		return fmt.Errorf("ranking targets: %w", err)
	}

	return surface.ForFormat(opts.outputFmt).RenderTargets(os.Stdout, targets)
}
