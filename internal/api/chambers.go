package api

import (
	"net/http"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
)

type chamberResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Cycle       string `json:"cycle"`
	TargetParty string `json:"target_party"`
	CreatedAt   string `json:"created_at"`
}

func chamberToResponse(c *catalog.Chamber) chamberResponse {
	return chamberResponse{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name,
		Cycle:       c.Cycle,
		TargetParty: c.TargetParty,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) handleListChambers(w http.ResponseWriter, r *http.Request) {
	chambers, err := h.catalog.ListChambers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list chambers: "+err.Error())
		return
	}

	result := make([]chamberResponse, 0, len(chambers))
	for i := range chambers {
		result = append(result, chamberToResponse(&chambers[i]))
	}
	writeJSON(w, http.StatusOK, result)
}
