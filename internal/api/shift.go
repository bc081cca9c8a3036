package api

import (
	"net/http"

	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

func (h *Handler) handleShift(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	ds, _, err := h.loadLatestDataset(r.Context(), ch)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	q := r.URL.Query()
	current := q.Get("current")
	previous := q.Get("previous")
	switch {
	case current == "" && previous == "":
		// Default to the two most recent cycles with data
		if len(ds.Stats.CyclesCovered) < 2 {
			writeError(w, http.StatusBadRequest, "dataset covers fewer than two cycles; pass current and previous")
			return
		}
		current = ds.Stats.CyclesCovered[0]
		previous = ds.Stats.CyclesCovered[1]
	case current == "" || previous == "":
		writeError(w, http.StatusBadRequest, "current and previous must be passed together")
		return
	}

	writeJSON(w, http.StatusOK, chamber.CompareCycles(ds.History, current, previous))
}
