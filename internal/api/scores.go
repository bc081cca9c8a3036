package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scorequery"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

type scoresResponse struct {
	ChamberID string                `json:"chamber_id"`
	DatasetID string                `json:"dataset_id"`
	Results   []scoring.ScoreResult `json:"results"`
	Breakdown *scorequery.Breakdown `json:"breakdown"`
}

// scoreRowToResult rebuilds an engine result from a stored score row.
func scoreRowToResult(sc *catalog.ScoreRow, target chamber.Party) (*scoring.ScoreResult, error) {
	r := &scoring.ScoreResult{
		District:       sc.District,
		Composite:      sc.Composite,
		Tier:           scoring.Tier(sc.Tier),
		NeedsCandidate: sc.NeedsCandidate,
		TargetParty:    target,
		OpenSeat:       sc.OpenSeat,
	}
	if len(sc.Factors) > 0 {
		var col ingestion.FactorsColumn
		if err := json.Unmarshal(sc.Factors, &col); err != nil {
			return nil, fmt.Errorf("decode factors for district %d: %w", sc.District, err)
		}
		r.Factors = col.Factors
		r.Breakdown = col.Breakdown
	}
	return r, nil
}

// filterFromQuery builds a score filter from request query parameters.
// The tier parameter may repeat to select multiple tiers.
func filterFromQuery(q url.Values) (scorequery.Filter, error) {
	var f scorequery.Filter
	for _, t := range q["tier"] {
		f.Tiers = append(f.Tiers, scoring.Tier(t))
	}
	f.NeedsCandidateOnly = q.Get("needs_candidate") == "true"
	f.OpenSeatsOnly = q.Get("open_seats") == "true"
	if v := q.Get("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid min_score %q", v)
		}
		f.MinScore = parsed
	}
	if v := q.Get("max_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid max_score %q", v)
		}
		f.MaxScore = parsed
	}
	return f, nil
}

func (h *Handler) handleListScores(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.catalog.GetLatestDataset(r.Context(), ch.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	rows, err := h.catalog.ListScores(r.Context(), row.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list scores: "+err.Error())
		return
	}

	results := make([]scoring.ScoreResult, 0, len(rows))
	for i := range rows {
		res, err := scoreRowToResult(&rows[i], chamber.Party(ch.TargetParty))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		results = append(results, *res)
	}

	results = scorequery.Apply(results, filter)
	writeJSON(w, http.StatusOK, scoresResponse{
		ChamberID: ch.ID,
		DatasetID: row.ID,
		Results:   results,
		Breakdown: scorequery.TierBreakdown(results),
	})
}

func (h *Handler) handleGetScore(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	district, err := strconv.Atoi(r.PathValue("district"))
	if err != nil || district <= 0 {
		writeError(w, http.StatusBadRequest, "invalid district number")
		return
	}

	row, err := h.catalog.GetLatestDataset(r.Context(), ch.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	sc, err := h.catalog.GetScore(r.Context(), row.ID, district)
	if err != nil {
		writeError(w, http.StatusNotFound, "score not found")
		return
	}

	result, err := scoreRowToResult(sc, chamber.Party(ch.TargetParty))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
