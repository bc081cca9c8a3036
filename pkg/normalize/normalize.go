// Package normalize defines interfaces for converting raw provider
// exports into canonical chamber datasets.
// Implementations handle the specifics of each provider's export format.
package normalize

import (
	"context"
	"strings"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// Source normalizes one provider's raw exports into a canonical dataset.
type Source interface {
	// Normalize produces a dataset for the given request.
	Normalize(ctx context.Context, req Request) (*Result, error)
}

// Request specifies which export files to normalize and the chamber
// they describe.
type Request struct {
	Chamber     string `json:"chamber"`
	Cycle       string `json:"cycle"`
	RosterPath  string `json:"roster_path"`            // current seat holders
	FilingsPath string `json:"filings_path,omitempty"` // candidate filings for the upcoming cycle
	ResultsPath string `json:"results_path,omitempty"` // past election results
}

// Result holds a normalization outcome: the canonical dataset plus
// row-level warnings for export rows the source had to drop.
type Result struct {
	Dataset  *chamber.Dataset `json:"dataset"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration time.Duration    `json:"duration"`
}

// CanonicalParty maps the party spellings providers use to the
// canonical single-letter form. Unrecognized affiliations keep their
// first letter as a minor-party marker; blank and nonpartisan
// spellings map to unknown.
func CanonicalParty(raw string) chamber.Party {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	switch cleaned {
	case "D", "DEM", "DEMOCRAT", "DEMOCRATIC":
		return chamber.Dem
	case "R", "REP", "REPUBLICAN":
		return chamber.Rep
	case "", "NONE", "NP", "NONPARTISAN", "UNAFFILIATED":
		return chamber.Unknown
	default:
		return chamber.Party(cleaned[:1])
	}
}
