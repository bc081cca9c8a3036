package surface

import (
	"encoding/json"
	"io"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// JSONRenderer marshals results to indented JSON.
type JSONRenderer struct{}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *JSONRenderer) RenderScore(w io.Writer, result *scoring.ScoreResult) error {
	return encodeJSON(w, result)
}

func (r *JSONRenderer) RenderRun(w io.Writer, results []scoring.ScoreResult) error {
	return encodeJSON(w, results)
}

func (r *JSONRenderer) RenderTargets(w io.Writer, targets []recruit.Target) error {
	return encodeJSON(w, targets)
}

func (r *JSONRenderer) RenderShift(w io.Writer, cmp *chamber.CycleComparison) error {
	return encodeJSON(w, cmp)
}
