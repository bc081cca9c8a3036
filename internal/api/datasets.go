package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// loadLatestDataset loads a chamber's promoted dataset, checking the
// cache first, then falling back to the catalog row + storage client.
func (h *Handler) loadLatestDataset(ctx context.Context, ch *catalog.Chamber) (*chamber.Dataset, *catalog.DatasetRow, error) {
	row, err := h.catalog.GetLatestDataset(ctx, ch.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("latest dataset: %w", err)
	}

	// Check cache
	if ds := h.cache.Get(row.ID); ds != nil {
		h.metrics.CacheHit()
		return ds, row, nil
	}
	h.metrics.CacheMiss()

	// Load from storage
	data, err := h.ingest.Storage().GetDataset(ctx, ch.Slug, row.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset blob: %w", err)
	}

	var ds chamber.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, nil, fmt.Errorf("unmarshal dataset: %w", err)
	}

	// Cache it
	h.cache.Put(row.ID, &ds)

	return &ds, row, nil
}

type districtsResponse struct {
	ChamberID   string               `json:"chamber_id"`
	DatasetID   string               `json:"dataset_id"`
	Cycle       string               `json:"cycle"`
	RetrievedAt string               `json:"retrieved_at"`
	Stats       chamber.DatasetStats `json:"stats"`
	Districts   []chamber.District   `json:"districts"`
}

func (h *Handler) handleListDistricts(w http.ResponseWriter, r *http.Request) {
	ch := h.getChamber(w, r)
	if ch == nil {
		return
	}

	ds, row, err := h.loadLatestDataset(r.Context(), ch)
	if err != nil {
		writeError(w, http.StatusNotFound, "no dataset ingested for chamber")
		return
	}

	writeJSON(w, http.StatusOK, districtsResponse{
		ChamberID:   ch.ID,
		DatasetID:   row.ID,
		Cycle:       ds.Cycle,
		RetrievedAt: ds.RetrievedAt.UTC().Format(time.RFC3339),
		Stats:       ds.Stats,
		Districts:   ds.Districts,
	})
}
