// Package catalog manages the hosted platform's state: chambers, their
// ingested datasets, per-district score rows, and saved scenarios.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Service provides chamber and dataset management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Chamber is one tracked legislative chamber.
type Chamber struct {
	ID          string
	Slug        string
	Name        string
	Cycle       string
	TargetParty string
	CreatedAt   time.Time
}

// DatasetRow is dataset metadata; the blob itself lives in storage at
// StorageRef.
type DatasetRow struct {
	ID             string
	ChamberID      string
	Source         *string
	StorageRef     string
	DistrictCount  int
	OpenSeats      int
	CandidateCount int
	RetrievedAt    time.Time
	CreatedAt      time.Time
}

// ScoreRow is one district's stored assessment for a dataset.
type ScoreRow struct {
	ID             string
	ChamberID      string
	DatasetID      string
	District       int
	Composite      float64
	Tier           string
	NeedsCandidate bool
	OpenSeat       bool
	Factors        json.RawMessage
	CreatedAt      time.Time
}

// ScenarioRow is a saved what-if scenario, shareable by ID.
type ScenarioRow struct {
	ID        string
	ChamberID string
	Label     *string
	Encoded   string
	CreatedAt time.Time
}

// NewService creates a new catalog Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

const chamberColumns = "id, slug, name, cycle, target_party, created_at"

func scanChamber(row *sql.Row) (*Chamber, error) {
	c := &Chamber{}
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.Cycle, &c.TargetParty, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateChamber registers a new chamber.
func (s *Service) CreateChamber(ctx context.Context, slug, name, cycle, targetParty string) (*Chamber, error) {
	c, err := scanChamber(s.db.QueryRowContext(ctx,
		`INSERT INTO chambers (slug, name, cycle, target_party)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+chamberColumns,
		slug, name, cycle, targetParty,
	))
	if err != nil {
		return nil, fmt.Errorf("create chamber %s: %w", slug, err)
	}
	return c, nil
}

// GetChamber retrieves a chamber by ID.
func (s *Service) GetChamber(ctx context.Context, id string) (*Chamber, error) {
	c, err := scanChamber(s.db.QueryRowContext(ctx,
		`SELECT `+chamberColumns+` FROM chambers WHERE id = $1`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get chamber %s: %w", id, err)
	}
	return c, nil
}

// GetChamberBySlug retrieves a chamber by its slug.
func (s *Service) GetChamberBySlug(ctx context.Context, slug string) (*Chamber, error) {
	c, err := scanChamber(s.db.QueryRowContext(ctx,
		`SELECT `+chamberColumns+` FROM chambers WHERE slug = $1`, slug,
	))
	if err != nil {
		return nil, fmt.Errorf("get chamber by slug %s: %w", slug, err)
	}
	return c, nil
}

// ListChambers returns all chambers ordered by slug.
func (s *Service) ListChambers(ctx context.Context) ([]Chamber, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+chamberColumns+` FROM chambers ORDER BY slug`,
	)
	if err != nil {
		return nil, fmt.Errorf("list chambers: %w", err)
	}
	defer rows.Close()

	var chambers []Chamber
	for rows.Next() {
		var c Chamber
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Cycle, &c.TargetParty, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chamber: %w", err)
		}
		chambers = append(chambers, c)
	}
	return chambers, rows.Err()
}

// UpdateChamber overwrites a chamber's mutable fields.
func (s *Service) UpdateChamber(ctx context.Context, id, name, cycle, targetParty string) (*Chamber, error) {
	c, err := scanChamber(s.db.QueryRowContext(ctx,
		`UPDATE chambers SET name = $2, cycle = $3, target_party = $4
		 WHERE id = $1
		 RETURNING `+chamberColumns,
		id, name, cycle, targetParty,
	))
	if err != nil {
		return nil, fmt.Errorf("update chamber %s: %w", id, err)
	}
	return c, nil
}

// DeleteChamber removes a chamber and, through cascades, its datasets,
// scores, and scenarios.
func (s *Service) DeleteChamber(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chambers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete chamber %s: %w", id, err)
	}
	return nil
}

// EnsureChamber gets or creates a chamber by slug.
func (s *Service) EnsureChamber(ctx context.Context, slug, name, cycle, targetParty string) (*Chamber, error) {
	c, err := s.GetChamberBySlug(ctx, slug)
	if err == nil {
		return c, nil
	}

	c, err = s.CreateChamber(ctx, slug, name, cycle, targetParty)
	if err != nil {
		// Could be a race; try getting again
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			if c, err = s.GetChamberBySlug(ctx, slug); err == nil {
				return c, nil
			}
		}
		return nil, fmt.Errorf("ensure chamber %s: %w", slug, err)
	}
	return c, nil
}

const datasetColumns = `id, chamber_id, source, storage_ref,
	        district_count, open_seats, candidate_count, retrieved_at, created_at`

// InsertDataset records dataset metadata after its blob is stored.
func (s *Service) InsertDataset(ctx context.Context, d *DatasetRow) (*DatasetRow, error) {
	out := &DatasetRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO datasets (id, chamber_id, source, storage_ref,
		        district_count, open_seats, candidate_count, retrieved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+datasetColumns,
		d.ID, d.ChamberID, d.Source, d.StorageRef,
		d.DistrictCount, d.OpenSeats, d.CandidateCount, d.RetrievedAt,
	).Scan(
		&out.ID, &out.ChamberID, &out.Source, &out.StorageRef,
		&out.DistrictCount, &out.OpenSeats, &out.CandidateCount, &out.RetrievedAt, &out.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert dataset: %w", err)
	}
	return out, nil
}

// GetDataset retrieves dataset metadata by ID.
func (s *Service) GetDataset(ctx context.Context, id string) (*DatasetRow, error) {
	d := &DatasetRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets WHERE id = $1`, id,
	).Scan(
		&d.ID, &d.ChamberID, &d.Source, &d.StorageRef,
		&d.DistrictCount, &d.OpenSeats, &d.CandidateCount, &d.RetrievedAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}
	return d, nil
}

// ListDatasets returns a chamber's datasets, newest first.
func (s *Service) ListDatasets(ctx context.Context, chamberID string) ([]DatasetRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets
		 WHERE chamber_id = $1 ORDER BY created_at DESC`,
		chamberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []DatasetRow
	for rows.Next() {
		var d DatasetRow
		if err := rows.Scan(
			&d.ID, &d.ChamberID, &d.Source, &d.StorageRef,
			&d.DistrictCount, &d.OpenSeats, &d.CandidateCount, &d.RetrievedAt, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// SetLatestDataset advances a chamber's latest-dataset pointer.
func (s *Service) SetLatestDataset(ctx context.Context, chamberID, datasetID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO latest_datasets (chamber_id, dataset_id, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (chamber_id) DO UPDATE
		   SET dataset_id = EXCLUDED.dataset_id,
		       updated_at = now()`,
		chamberID, datasetID,
	)
	if err != nil {
		return fmt.Errorf("set latest dataset: %w", err)
	}
	return nil
}

// GetLatestDataset returns the dataset the chamber's pointer names.
func (s *Service) GetLatestDataset(ctx context.Context, chamberID string) (*DatasetRow, error) {
	d := &DatasetRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT d.id, d.chamber_id, d.source, d.storage_ref,
		        d.district_count, d.open_seats, d.candidate_count, d.retrieved_at, d.created_at
		 FROM latest_datasets l
		 JOIN datasets d ON d.id = l.dataset_id
		 WHERE l.chamber_id = $1`,
		chamberID,
	).Scan(
		&d.ID, &d.ChamberID, &d.Source, &d.StorageRef,
		&d.DistrictCount, &d.OpenSeats, &d.CandidateCount, &d.RetrievedAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get latest dataset for chamber %s: %w", chamberID, err)
	}
	return d, nil
}

const scoreColumns = `id, chamber_id, dataset_id, district, composite, tier,
	        needs_candidate, open_seat, factors, created_at`

// ReplaceScores swaps in a dataset's score rows atomically: any rows
// from an earlier scoring run of the same dataset are removed first.
func (s *Service) ReplaceScores(ctx context.Context, datasetID string, scores []ScoreRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace scores: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scores (chamber_id, dataset_id, district, composite, tier,
		        needs_candidate, open_seat, factors)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
	)
	if err != nil {
		return fmt.Errorf("prepare score insert: %w", err)
	}
	defer stmt.Close()

	for _, sc := range scores {
		if _, err := stmt.ExecContext(ctx,
			sc.ChamberID, datasetID, sc.District, sc.Composite, sc.Tier,
			sc.NeedsCandidate, sc.OpenSeat, sc.Factors,
		); err != nil {
			return fmt.Errorf("insert score for district %d: %w", sc.District, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace scores: %w", err)
	}
	return nil
}

// ListScores returns a dataset's score rows ordered by district.
func (s *Service) ListScores(ctx context.Context, datasetID string) ([]ScoreRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scoreColumns+` FROM scores
		 WHERE dataset_id = $1 ORDER BY district`,
		datasetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var sc ScoreRow
		if err := rows.Scan(
			&sc.ID, &sc.ChamberID, &sc.DatasetID, &sc.District, &sc.Composite, &sc.Tier,
			&sc.NeedsCandidate, &sc.OpenSeat, &sc.Factors, &sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// GetScore returns one district's score row for a dataset.
func (s *Service) GetScore(ctx context.Context, datasetID string, district int) (*ScoreRow, error) {
	sc := &ScoreRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+scoreColumns+` FROM scores
		 WHERE dataset_id = $1 AND district = $2`,
		datasetID, district,
	).Scan(
		&sc.ID, &sc.ChamberID, &sc.DatasetID, &sc.District, &sc.Composite, &sc.Tier,
		&sc.NeedsCandidate, &sc.OpenSeat, &sc.Factors, &sc.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get score for district %d: %w", district, err)
	}
	return sc, nil
}

// SaveScenario stores an encoded scenario string for sharing.
func (s *Service) SaveScenario(ctx context.Context, chamberID, encoded string, label *string) (*ScenarioRow, error) {
	sc := &ScenarioRow{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO scenarios (chamber_id, encoded, label)
		 VALUES ($1, $2, $3)
		 RETURNING id, chamber_id, label, encoded, created_at`,
		chamberID, encoded, label,
	).Scan(&sc.ID, &sc.ChamberID, &sc.Label, &sc.Encoded, &sc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save scenario: %w", err)
	}
	return sc, nil
}

// GetScenario retrieves a saved scenario by its share ID.
func (s *Service) GetScenario(ctx context.Context, id string) (*ScenarioRow, error) {
	sc := &ScenarioRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, chamber_id, label, encoded, created_at
		 FROM scenarios WHERE id = $1`,
		id,
	).Scan(&sc.ID, &sc.ChamberID, &sc.Label, &sc.Encoded, &sc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get scenario %s: %w", id, err)
	}
	return sc, nil
}
