package ingestion

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/russellteter/sc-election-map-2026-sub002/internal/catalog"
	"github.com/russellteter/sc-election-map-2026-sub002/internal/observability"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/chamber"
	"github.com/russellteter/sc-election-map-2026-sub002/pkg/scoring"
)

// Job lifecycle statuses.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// IngestRequest describes one dataset intake.
type IngestRequest struct {
	ChamberSlug string
	ChamberName string
	Cycle       string
	TargetParty string
	Source      string
	Dataset     *chamber.Dataset
}

// IngestResult summarizes a completed intake.
type IngestResult struct {
	ChamberID  string
	DatasetID  string
	StorageRef string
	Districts  int
	Scored     int
}

// Scorer abstracts the scoring engine so the ingestion package does not
// depend on a concrete factor set.
type Scorer interface {
	ScoreAll(districts []chamber.District, history map[int]chamber.History) ([]scoring.ScoreResult, error)
}

// ScorerFor builds the scorer for a chamber's target party. Each
// chamber configures its own target, so the engine is constructed per
// intake rather than held on the service.
type ScorerFor func(target chamber.Party) Scorer

// DefaultScorer builds the standard engine with default weights and
// factors.
func DefaultScorer(target chamber.Party) Scorer {
	return scoring.NewEngine(target, scoring.DefaultFactors()...)
}

// Service orchestrates the dataset intake pipeline.
type Service struct {
	db      *sql.DB
	catalog *catalog.Service
	storage StorageClient
	scorer  ScorerFor
	metrics *observability.Metrics
}

// NewService creates a new ingestion Service. A nil scorerFor uses the
// default engine; a nil metrics records nothing.
func NewService(db *sql.DB, cat *catalog.Service, storage StorageClient, scorerFor ScorerFor, metrics *observability.Metrics) *Service {
	if scorerFor == nil {
		scorerFor = DefaultScorer
	}
	return &Service{
		db:      db,
		catalog: cat,
		storage: storage,
		scorer:  scorerFor,
		metrics: metrics,
	}
}

// Storage exposes the blob client so read paths can load dataset
// payloads recorded by the pipeline.
func (s *Service) Storage() StorageClient {
	return s.storage
}

// CreateJob records a new intake job and returns its ID. The trigger
// notes what started the job, e.g. "webhook:filings_updated" or
// "api:upload".
func (s *Service) CreateJob(ctx context.Context, chamberSlug, trigger string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO ingest_jobs (chamber_slug, trigger) VALUES ($1, $2) RETURNING id`,
		chamberSlug, trigger,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create ingest job: %w", err)
	}
	return id, nil
}

// UpdateJobStatus updates a job's status and optional error message.
func (s *Service) UpdateJobStatus(ctx context.Context, id, status string, errMsg *string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE ingest_jobs SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update ingest job status: %w", err)
	}
	return nil
}

// ProcessJob runs the intake pipeline for a previously created job,
// tracking status transitions on the job row.
func (s *Service) ProcessJob(ctx context.Context, jobID string, req IngestRequest) error {
	if err := s.UpdateJobStatus(ctx, jobID, StatusRunning, nil); err != nil {
		return fmt.Errorf("update status to running: %w", err)
	}

	result, err := s.Ingest(ctx, req)

	// On failure, mark the job as failed before returning
	defer func() {
		if err != nil {
			errMsg := err.Error()
			if updateErr := s.UpdateJobStatus(ctx, jobID, StatusFailed, &errMsg); updateErr != nil {
				log.Printf("failed to update ingest job status: %v", updateErr)
			}
		}
	}()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE ingest_jobs SET status = $1, dataset_id = $2, updated_at = now() WHERE id = $3`,
		StatusCompleted, result.DatasetID, jobID,
	)
	if err != nil {
		return fmt.Errorf("finalize ingest job: %w", err)
	}

	log.Printf("ingest job %s completed: chamber=%s dataset=%s districts=%d scored=%d",
		jobID, req.ChamberSlug, result.DatasetID, result.Districts, result.Scored)
	return nil
}

// Ingest runs the full intake pipeline: validate the payload, store the
// dataset blob, record catalog rows, score every district, and promote
// the dataset to latest.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	result, err := s.ingest(ctx, req)
	if err != nil {
		s.metrics.IngestFailed()
		return nil, err
	}
	s.metrics.IngestCompleted()
	return result, nil
}

func (s *Service) ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	// 1. Ensure the chamber row exists
	name := req.ChamberName
	if name == "" {
		name = req.Dataset.Chamber
	}
	target := chamber.Party(req.TargetParty)
	if !target.Major() {
		target = chamber.Dem
	}
	ch, err := s.catalog.EnsureChamber(ctx, req.ChamberSlug, name, req.Cycle, string(target))
	if err != nil {
		return nil, fmt.Errorf("ensure chamber: %w", err)
	}

	// 2. Finalize the dataset payload
	ds := req.Dataset
	if ds.ID == "" {
		ds.ID = uuid.NewString()
	}
	if ds.Source == "" {
		ds.Source = req.Source
	}
	if ds.RetrievedAt.IsZero() {
		ds.RetrievedAt = time.Now().UTC()
	}
	ds.ComputeStats()

	// 3. Store the blob and the catalog row
	data, err := json.Marshal(ds)
	if err != nil {
		return nil, fmt.Errorf("marshal dataset: %w", err)
	}
	if err := s.storage.PutDataset(ctx, ch.Slug, ds.ID, data); err != nil {
		return nil, fmt.Errorf("put dataset blob: %w", err)
	}

	row, err := s.catalog.InsertDataset(ctx, &catalog.DatasetRow{
		ID:             ds.ID,
		ChamberID:      ch.ID,
		Source:         nilIfEmpty(ds.Source),
		StorageRef:     s.storage.Ref(ch.Slug, ds.ID),
		DistrictCount:  ds.Stats.DistrictCount,
		OpenSeats:      ds.Stats.OpenSeats,
		CandidateCount: ds.Stats.CandidateCount,
		RetrievedAt:    ds.RetrievedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert dataset row: %w", err)
	}

	// 4. Score every district
	engine := s.scorer(chamber.Party(ch.TargetParty))
	start := time.Now()
	results, err := engine.ScoreAll(ds.Districts, ds.History)
	if err != nil {
		return nil, fmt.Errorf("score districts: %w", err)
	}
	s.metrics.ScoringRun(time.Since(start))

	scoreRows, err := BuildScoreRows(ch.ID, row.ID, results)
	if err != nil {
		return nil, fmt.Errorf("build score rows: %w", err)
	}
	if err := s.catalog.ReplaceScores(ctx, row.ID, scoreRows); err != nil {
		return nil, fmt.Errorf("replace scores: %w", err)
	}

	// 5. Promote to latest
	if err := s.catalog.SetLatestDataset(ctx, ch.ID, row.ID); err != nil {
		return nil, fmt.Errorf("set latest dataset: %w", err)
	}

	return &IngestResult{
		ChamberID:  ch.ID,
		DatasetID:  row.ID,
		StorageRef: row.StorageRef,
		Districts:  ds.Stats.DistrictCount,
		Scored:     len(scoreRows),
	}, nil
}

// ValidateRequest checks that an intake request carries a usable
// payload before any state is written.
func ValidateRequest(req IngestRequest) error {
	if req.ChamberSlug == "" {
		return fmt.Errorf("chamber slug is required")
	}
	if req.Dataset == nil {
		return fmt.Errorf("dataset payload is required")
	}
	if len(req.Dataset.Districts) == 0 {
		return fmt.Errorf("dataset has no districts")
	}
	seen := make(map[int]bool, len(req.Dataset.Districts))
	for i := range req.Dataset.Districts {
		n := req.Dataset.Districts[i].Number
		if n <= 0 {
			return fmt.Errorf("district number %d out of range", n)
		}
		if seen[n] {
			return fmt.Errorf("duplicate district %d", n)
		}
		seen[n] = true
	}
	for n := range req.Dataset.History {
		if n <= 0 {
			return fmt.Errorf("history references district %d out of range", n)
		}
	}
	return nil
}

// FactorsColumn is the JSON shape stored in the scores table's factors
// column.
type FactorsColumn struct {
	Factors   scoring.FactorSet      `json:"factors"`
	Breakdown []scoring.FactorResult `json:"breakdown"`
}

// BuildScoreRows converts engine output into catalog score rows, with
// the per-factor breakdown serialized into the factors column.
func BuildScoreRows(chamberID, datasetID string, results []scoring.ScoreResult) ([]catalog.ScoreRow, error) {
	rows := make([]catalog.ScoreRow, 0, len(results))
	for i := range results {
		r := &results[i]
		factors, err := json.Marshal(FactorsColumn{Factors: r.Factors, Breakdown: r.Breakdown})
		if err != nil {
			return nil, fmt.Errorf("marshal factors for district %d: %w", r.District, err)
		}
		rows = append(rows, catalog.ScoreRow{
			ChamberID:      chamberID,
			DatasetID:      datasetID,
			District:       r.District,
			Composite:      r.Composite,
			Tier:           string(r.Tier),
			NeedsCandidate: r.NeedsCandidate,
			OpenSeat:       r.OpenSeat,
			Factors:        factors,
		})
	}
	return rows, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
