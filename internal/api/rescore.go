package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

type rescoreRequest struct {
	ChamberID string `json:"chamber_id"` // optional filter
}

type rescoreResponse struct {
	Chambers  int `json:"chambers"`
	Districts int `json:"districts"`
	Errors    int `json:"errors"`
}

// handleRescore re-runs the scoring engine over each chamber's latest
// dataset and swaps in the fresh score rows. Used after tuning factor
// weights or shipping engine changes, without waiting for the next
// scrape.
func (h *Handler) handleRescore(w http.ResponseWriter, r *http.Request) {
	var req rescoreRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	ctx := r.Context()

	var chambers []catalog.Chamber
	if req.ChamberID != "" {
		ch, err := h.catalog.GetChamber(ctx, req.ChamberID)
		if err != nil {
			writeError(w, http.StatusNotFound, "chamber not found")
			return
		}
		chambers = []catalog.Chamber{*ch}
	} else {
		var err error
		chambers, err = h.catalog.ListChambers(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "list chambers: "+err.Error())
			return
		}
	}

	resp := rescoreResponse{}
	for i := range chambers {
		ch := &chambers[i]

		row, err := h.catalog.GetLatestDataset(ctx, ch.ID)
		if err != nil {
			if strings.Contains(err.Error(), "no rows") {
				continue // nothing ingested yet
			}
			log.Printf("rescore %s: latest dataset: %v", ch.Slug, err)
			resp.Errors++
			continue
		}

		// Load the blob directly; rescoring should not depend on cache
		// contents.
		data, err := h.ingest.Storage().GetDataset(ctx, ch.Slug, row.ID)
		if err != nil {
			log.Printf("rescore %s: load dataset: %v", ch.Slug, err)
			resp.Errors++
			continue
		}
		var ds chamber.Dataset
		if err := json.Unmarshal(data, &ds); err != nil {
			log.Printf("rescore %s: unmarshal dataset: %v", ch.Slug, err)
			resp.Errors++
			continue
		}

		engine := scoring.NewEngine(chamber.Party(ch.TargetParty), scoring.DefaultFactors()...)
		start := time.Now()
		results, err := engine.ScoreAll(ds.Districts, ds.History)
		if err != nil {
			log.Printf("rescore %s: score: %v", ch.Slug, err)
			resp.Errors++
			continue
		}
		h.metrics.ScoringRun(time.Since(start))

		rows, err := ingestion.BuildScoreRows(ch.ID, row.ID, results)
		if err != nil {
			log.Printf("rescore %s: build rows: %v", ch.Slug, err)
			resp.Errors++
			continue
		}
		if err := h.catalog.ReplaceScores(ctx, row.ID, rows); err != nil {
			log.Printf("rescore %s: replace scores: %v", ch.Slug, err)
			resp.Errors++
			continue
		}

		resp.Chambers++
		resp.Districts += len(rows)
	}

	writeJSON(w, http.StatusOK, resp)
}
