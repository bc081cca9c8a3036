package api

import (
	"encoding/json"
	"net/http"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

type updateChamberRequest struct {
	Name        string `json:"name"`
	Cycle       string `json:"cycle"`
	TargetParty string `json:"target_party"`
}

func (h *Handler) handleUpdateChamber(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	var req updateChamberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// PATCH semantics: unset fields keep their current value
	if req.Name == "" {
		req.Name = ch.Name
	}
	if req.Cycle == "" {
		req.Cycle = ch.Cycle
	}
	if req.TargetParty == "" {
		req.TargetParty = ch.TargetParty
	}
	if !chamber.Party(req.TargetParty).Major() {
		writeError(w, http.StatusBadRequest, "target_party must be D or R")
		return
	}

	updated, err := h.catalog.UpdateChamber(r.Context(), ch.ID, req.Name, req.Cycle, req.TargetParty)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update chamber: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chamberToResponse(updated))
}

func (h *Handler) handleDeleteChamber(w http.ResponseWriter, r *http.Request) {
	chamberID := r.PathValue("chamberID")

	if err := h.catalog.DeleteChamber(r.Context(), chamberID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete chamber: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
