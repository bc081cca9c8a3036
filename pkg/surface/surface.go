// Package surface defines output rendering for scmap results.
// Implementations handle different output targets: terminal, JSON,
// markdown briefs.
package surface

import (
	"io"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// Renderer produces formatted output for the dashboard views.
type Renderer interface {
	// RenderScore writes a single district assessment.
	RenderScore(w io.Writer, result *scoring.ScoreResult) error
	// RenderRun writes a full chamber score run with its tier breakdown.
	RenderRun(w io.Writer, results []scoring.ScoreResult) error
	// RenderTargets writes a recruitment target list.
	RenderTargets(w io.Writer, targets []recruit.Target) error
	// RenderShift writes a cycle-over-cycle margin comparison.
	RenderShift(w io.Writer, cmp *chamber.CycleComparison) error
}

// ForFormat returns the renderer for a --format flag value. Unknown
// formats fall back to the terminal renderer.
func ForFormat(format string) Renderer {
	switch format {
	case "json":
		return &JSONRenderer{}
	case "markdown", "md":
		return &MarkdownRenderer{}
	default:
		return &TerminalRenderer{}
	}
}
