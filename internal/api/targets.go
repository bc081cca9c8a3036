package api

import (
	"net/http"
	"strconv"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/recruit"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

type targetsResponse struct {
	ChamberID string           `json:"chamber_id"`
	DatasetID string           `json:"dataset_id"`
	MinScore  float64          `json:"min_score"`
	Targets   []recruit.Target `json:"targets"`
}

func (h *Handler) handleTargets(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	var opts recruit.Options
	q := r.URL.Query()
	if v := q.Get("min_score"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_score "+strconv.Quote(v))
			return
		}
		opts.MinScore = parsed
	}
	if v := q.Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit "+strconv.Quote(v))
			return
		}
		opts.Limit = parsed
	}

	ds, row, err := h.loadLatestDataset(r.Context(), ch)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	engine := scoring.NewEngine(chamber.Party(ch.TargetParty), scoring.DefaultFactors()...)
	targets, err := recruit.Rank(engine, ds.Districts, ds.History, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to rank targets: "+err.Error())
		return
	}
	if targets == nil {
		targets = []recruit.Target{}
	}

	minScore := opts.MinScore
	if minScore == 0 {
		minScore = recruit.DefaultMinScore
	}
	writeJSON(w, http.StatusOK, targetsResponse{
		ChamberID: ch.ID,
		DatasetID: row.ID,
		MinScore:  minScore,
		Targets:   targets,
	})
}
