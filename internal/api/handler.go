// Package api implements the hosted election-map REST API.
// It provides intake and read endpoints backed by Postgres and blob storage.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/ingestion"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/observability"
)

// Catalog is the subset of the catalog service the API reads and
// writes. Declared here so handler tests can run against a fake.
type Catalog interface {
	ListChambers(ctx context.Context) ([]catalog.Chamber, error)
	GetChamber(ctx context.Context, id string) (*catalog.Chamber, error)
	UpdateChamber(ctx context.Context, id, name, cycle, targetParty string) (*catalog.Chamber, error)
	DeleteChamber(ctx context.Context, id string) error
	GetLatestDataset(ctx context.Context, chamberID string) (*catalog.DatasetRow, error)
	ListScores(ctx context.Context, datasetID string) ([]catalog.ScoreRow, error)
	GetScore(ctx context.Context, datasetID string, district int) (*catalog.ScoreRow, error)
	ReplaceScores(ctx context.Context, datasetID string, scores []catalog.ScoreRow) error
	SaveScenario(ctx context.Context, chamberID, encoded string, label *string) (*catalog.ScenarioRow, error)
	GetScenario(ctx context.Context, id string) (*catalog.ScenarioRow, error)
}

// Ingestor is the slice of the ingestion service the API drives.
type Ingestor interface {
	Ingest(ctx context.Context, req ingestion.IngestRequest) (*ingestion.IngestResult, error)
	Storage() ingestion.StorageClient
}

// Handler is the top-level API handler for the hosted service.
type Handler struct {
	catalog Catalog
	ingest  Ingestor
	cache   *DatasetCache
	metrics *observability.Metrics
}

// NewHandler creates a new API handler. A nil cache gets sized from the
// environment; a nil metrics records nothing.
func NewHandler(catalogSvc Catalog, ingestSvc Ingestor, cache *DatasetCache, metrics *observability.Metrics) *Handler {
	if cache == nil {
		cache = NewDatasetCacheFromEnv()
	}
	return &Handler{
		catalog: catalogSvc,
		ingest:  ingestSvc,
		cache:   cache,
		metrics: metrics,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	h.route(mux, "POST /api/v1/ingest", "ingest", h.handleIngest)
	h.route(mux, "POST /api/v1/admin/rescore", "rescore", h.handleRescore)
	h.route(mux, "PATCH /api/v1/chambers/{chamberID}", "update_chamber", h.handleUpdateChamber)
	h.route(mux, "DELETE /api/v1/chambers/{chamberID}", "delete_chamber", h.handleDeleteChamber)
	h.route(mux, "POST /api/v1/chambers/{chamberID}/scenarios", "save_scenario", h.handleSaveScenario)

	// Read endpoints
	h.route(mux, "GET /api/v1/chambers", "list_chambers", h.handleListChambers)
	h.route(mux, "GET /api/v1/chambers/{chamberID}/districts", "list_districts", h.handleListDistricts)
	h.route(mux, "GET /api/v1/chambers/{chamberID}/scores", "list_scores", h.handleListScores)
	h.route(mux, "GET /api/v1/chambers/{chamberID}/scores/{district}", "get_score", h.handleGetScore)
	h.route(mux, "GET /api/v1/chambers/{chamberID}/targets", "targets", h.handleTargets)
	h.route(mux, "GET /api/v1/chambers/{chamberID}/shift", "shift", h.handleShift)
	h.route(mux, "GET /api/v1/scenarios/{scenarioID}", "get_scenario", h.handleGetScenario)
}

func (h *Handler) route(mux *http.ServeMux, pattern, name string, fn http.HandlerFunc) {
	mux.Handle(pattern, h.metrics.WrapHandler(name, fn))
}

// getChamber resolves the chamberID path value, writing a 404 on
// failure. Returns nil after writing the response.
func (h *Handler) getChamber(w http.ResponseWriter, r *http.Request) *catalog.Chamber {
	ch, err := h.catalog.GetChamber(r.Context(), r.PathValue("chamberID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "chamber not found")
		return nil
	}
	return ch
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
