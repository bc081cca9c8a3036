package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scenario"
)

type saveScenarioRequest struct {
	State string  `json:"state"`
	Label *string `json:"label,omitempty"`
}

type scenarioResponse struct {
	ID             string                  `json:"id"`
	ChamberID      string                  `json:"chamber_id"`
	Label          *string                 `json:"label,omitempty"`
	State          string                  `json:"state"`
	Overrides      map[int]scenario.Status `json:"overrides"`
	BaselineCounts scenario.SeatCounts     `json:"baseline_counts"`
	SeatCounts     scenario.SeatCounts     `json:"seat_counts"`
	CreatedAt      string                  `json:"created_at"`
}

func scenarioToResponse(row *catalog.ScenarioRow, sc *scenario.Scenario) scenarioResponse {
	return scenarioResponse{
		ID:             row.ID,
		ChamberID:      row.ChamberID,
		Label:          row.Label,
		State:          sc.Serialize(),
		Overrides:      sc.Overrides(),
		BaselineCounts: sc.BaselineCounts(),
		SeatCounts:     sc.SeatCounts(),
		CreatedAt:      row.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	var req saveScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.State == "" {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}

	ds, _, err := h.loadLatestDataset(r.Context(), ch)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	// Parse against the live baseline so invalid tokens are dropped and
	// the stored form is canonical.
	baseline := chamber.BaselineControl(ds.Districts)
	sc := scenario.Parse(req.State, baseline)
	if sc.OverrideCount() == 0 {
		writeError(w, http.StatusBadRequest, "state contains no valid overrides")
		return
	}

	row, err := h.catalog.SaveScenario(r.Context(), ch.ID, sc.Serialize(), req.Label)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save scenario: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, scenarioToResponse(row, sc))
}

func (h *Handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	row, err := h.catalog.GetScenario(r.Context(), r.PathValue("scenarioID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "scenario not found")
		return
	}

	ch, err := h.catalog.GetChamber(r.Context(), row.ChamberID)
	if err != nil {
		writeError(w, http.StatusNotFound, "chamber not found")
		return
	}

	ds, _, err := h.loadLatestDataset(r.Context(), ch)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	// Replay the stored state over the current baseline: seats that
	// changed hands since the save degrade to fewer overrides.
	baseline := chamber.BaselineControl(ds.Districts)
	sc := scenario.Parse(row.Encoded, baseline)

	writeJSON(w, http.StatusOK, scenarioToResponse(row, sc))
}
