// Package main provides the scmap CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "scmap",
		Short: "District opportunity scoring for the SC election map",
		Long: `Scmap imports election commission exports, scores district-level
opportunity for a target party, ranks recruitment targets, and simulates
what-if seat scenarios.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newImportCmd(),
		newScoreCmd(),
		newTargetsCmd(),
		newShiftCmd(),
		newScenarioCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
