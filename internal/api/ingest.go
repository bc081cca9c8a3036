package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
)

// ingestRequest is the JSON body for POST /api/v1/ingest.
type ingestRequest struct {
	Chamber     string           `json:"chamber"` // slug, e.g. "sc_house"
	Name        string           `json:"name"`    // display name
	Cycle       string           `json:"cycle"`
	TargetParty string           `json:"target_party"`
	Source      string           `json:"source"`
	Dataset     *chamber.Dataset `json:"dataset"`
}

type ingestResponse struct {
	ChamberID  string `json:"chamber_id"`
	DatasetID  string `json:"dataset_id"`
	StorageRef string `json:"storage_ref"`
	Districts  int    `json:"districts"`
	Scored     int    `json:"scored"`
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	// Support gzip-compressed request bodies
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	var req ingestRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ingReq := ingestion.IngestRequest{
		ChamberSlug: req.Chamber,
		ChamberName: req.Name,
		Cycle:       req.Cycle,
		TargetParty: req.TargetParty,
		Source:      req.Source,
		Dataset:     req.Dataset,
	}
	if err := ingestion.ValidateRequest(ingReq); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.ingest.Ingest(r.Context(), ingReq)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ingest failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		ChamberID:  result.ChamberID,
		DatasetID:  result.DatasetID,
		StorageRef: result.StorageRef,
		Districts:  result.Districts,
		Scored:     result.Scored,
	})
}
