// Package config handles loading and managing scmap configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for scmap.
type Config struct {
	Chamber string        `yaml:"chamber"`      // display name: "SC House"
	Cycle   string        `yaml:"cycle"`        // upcoming cycle label: "2026"
	Target  string        `yaml:"target_party"` // single-letter party the engine scores for
	Scoring ScoringConfig `yaml:"scoring"`
	Recruit RecruitConfig `yaml:"recruit"`
}

// ScoringConfig controls composite weighting.
type ScoringConfig struct {
	Weights map[string]float64 `yaml:"weights"`
}

// RecruitConfig controls the recruitment ranker.
type RecruitConfig struct {
	MinScore float64 `yaml:"min_score"`
	Limit    int     `yaml:"limit"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Chamber: "SC House",
		Cycle:   "2026",
		Target:  "D",
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Recruit: RecruitConfig{
			MinScore: 50,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .scmap/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".scmap", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the local data directory for a chamber.
// Uses ~/.cache/scmap/<chamber-slug>/ so repeated runs reuse imports.
func CacheDir(chamber string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "scmap", chamberSlug(chamber))
}

// DatasetDir returns the imported dataset directory for a chamber.
func DatasetDir(chamber string) string {
	return filepath.Join(CacheDir(chamber), "datasets")
}

// ScoreDir returns the score run storage directory for a chamber.
func ScoreDir(chamber string) string {
	return filepath.Join(CacheDir(chamber), "scores")
}

// ScenarioDir returns the saved scenario directory for a chamber.
func ScenarioDir(chamber string) string {
	return filepath.Join(CacheDir(chamber), "scenarios")
}

// chamberSlug creates a filesystem-safe identifier from a chamber name
// (e.g. "SC House" -> "sc_house").
func chamberSlug(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "chamber"
	}
	return slug
}
