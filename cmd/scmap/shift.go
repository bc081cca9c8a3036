package main

import (
	"fmt"
	"os"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/surface"
	"github.com/spf13/cobra"
)

func newShiftCmd() *cobra.Command {
	var (
		datasetPath   string
		districtsPath string
		historyPath   string
		chamberName   string
		current       string
		previous      string
		outputFmt     string
	)

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Compare district margins between two election cycles",
		Long: `Computes per-district margin movement between two cycles and the
period summary. Defaults to the two most recent cycles with data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(shiftOpts{
				inputs: inputOpts{
					dataset:   datasetPath,
					districts: districtsPath,
					history:   historyPath,
					chamber:   chamberName,
				},
				current:   current,
				previous:  previous,
				outputFmt: outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to a dataset file (default: newest import)")
	cmd.Flags().StringVar(&districtsPath, "districts", "", "Path to a districts file (overrides --dataset)")
	cmd.Flags().StringVar(&historyPath, "history", "", "Path to a history file (with --districts)")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&current, "current", "", "Current cycle label (default: newest in dataset)")
	cmd.Flags().StringVar(&previous, "previous", "", "Previous cycle label (default: second newest)")
	cmd.Flags().StringVar(&outputFmt, "format", "text", "Output format: text, json, or markdown")

	return cmd
}

type shiftOpts struct {
	inputs    inputOpts
	current   string
	previous  string
	outputFmt string
}

func runShift(opts shiftOpts) error {
	cfg := loadConfig()

	ds, err := loadInputs(cfg, opts.inputs)
	if err != nil {
		return err
	}

	current, previous := opts.current, opts.previous
	switch {
	case current == "" && previous == "":
		if len(ds.Stats.CyclesCovered) < 2 {
			return fmt.Errorf("dataset covers fewer than two cycles; pass --current and --previous")
		}
		current = ds.Stats.CyclesCovered[0]
		previous = ds.Stats.CyclesCovered[1]
	case current == "" || previous == "":
		return fmt.Errorf("--current and --previous must be passed together")
	}

	cmp := chamber.CompareCycles(ds.History, current, previous)
	return surface.ForFormat(opts.outputFmt).RenderShift(os.Stdout, cmp)
}
