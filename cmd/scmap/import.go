package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/config"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/normalize"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/normalize/scvotes"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		rosterPath  string
		filingsPath string
		resultsPath string
		chamberName string
		cycle       string
		sourceName  string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize provider exports into a canonical dataset",
		Long: `Reads raw CSV exports (roster, candidate filings, election results),
normalizes them into a canonical dataset, and saves it to the local cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, importOpts{
				rosterPath:  rosterPath,
				filingsPath: filingsPath,
				resultsPath: resultsPath,
				chamberName: chamberName,
				cycle:       cycle,
				sourceName:  sourceName,
				output:      output,
			})
		},
	}

	cmd.Flags().StringVar(&rosterPath, "roster", "", "Path to the seat roster export (required)")
	cmd.Flags().StringVar(&filingsPath, "filings", "", "Path to the candidate filings export")
	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to the election results export")
	cmd.Flags().StringVar(&chamberName, "chamber", "", "Chamber display name (default: from config)")
	cmd.Flags().StringVar(&cycle, "cycle", "", "Upcoming cycle label (default: from config)")
	cmd.Flags().StringVar(&sourceName, "source", "scvotes", "Export provider: scvotes")
	cmd.Flags().StringVar(&output, "output", "", "Output path (default: ~/.cache/scmap/<chamber>/datasets/<stamp>.json)")
	_ = cmd.MarkFlagRequired("roster")

	return cmd
}

type importOpts struct {
	rosterPath  string
	filingsPath string
	resultsPath string
	chamberName string
	cycle       string
	sourceName  string
	output      string
}

func runImport(cmd *cobra.Command, opts importOpts) error {
	cfg := loadConfig()
	chamberName := firstNonEmpty(opts.chamberName, cfg.Chamber)
	cycle := firstNonEmpty(opts.cycle, cfg.Cycle)

	src, err := sourceFor(opts.sourceName)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Importing %s exports for %s (%s)...\n", opts.sourceName, chamberName, cycle)

	result, err := src.Normalize(cmd.Context(), normalize.Request{
		Chamber:     chamberName,
		Cycle:       cycle,
		RosterPath:  opts.rosterPath,
		FilingsPath: opts.filingsPath,
		ResultsPath: opts.resultsPath,
	})
	if err != nil {
		return fmt.Errorf("normalizing exports: %w", err)
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "  Warning: %s\n", w)
	}

	ds := result.Dataset
	outPath := opts.output
	if outPath == "" {
		// Stamp-named files keep the newest import last in sort order.
		name := ds.RetrievedAt.UTC().Format("20060102-150405") + ".json"
		outPath = filepath.Join(config.DatasetDir(chamberName), name)
	}
	if err := chamber.SaveDataset(outPath, ds); err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Dataset saved to %s\n", outPath)
	fmt.Fprintf(os.Stderr, "  Districts:  %d\n", ds.Stats.DistrictCount)
	fmt.Fprintf(os.Stderr, "  Open seats: %d\n", ds.Stats.OpenSeats)
	fmt.Fprintf(os.Stderr, "  Candidates: %d\n", ds.Stats.CandidateCount)
	fmt.Fprintf(os.Stderr, "  Cycles:     %d\n", len(ds.Stats.CyclesCovered))
	fmt.Fprintf(os.Stderr, "  Duration:   %dms\n", result.Duration.Milliseconds())

	return nil
}

// sourceFor maps a --source flag value to its normalizer.
func sourceFor(name string) (normalize.Source, error) {
	switch name {
	case "scvotes":
		return &scvotes.Source{}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (supported: scvotes)", name)
	}
}

func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfgFile := config.FindConfigFile(cwd)
	if cfgFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
