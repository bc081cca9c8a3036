// Package ingestion orchestrates the dataset intake pipeline: payload
// validation, blob storage, scoring, and catalog bookkeeping.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for chamber dataset payloads.
type StorageClient interface {
	PutDataset(ctx context.Context, chamberSlug, datasetID string, data []byte) error
	GetDataset(ctx context.Context, chamberSlug, datasetID string) ([]byte, error)
	// Ref returns the storage reference recorded in the catalog for a
	// dataset blob, e.g. "s3://bucket/sc_house/datasets/<id>.json".
	Ref(chamberSlug, datasetID string) string
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(chamberSlug, datasetID string) string {
	return filepath.Join(s.BaseDir, chamberSlug, "datasets", datasetID+".json")
}

// PutDataset stores a dataset blob.
func (s *LocalStorage) PutDataset(ctx context.Context, chamberSlug, datasetID string, data []byte) error {
	path := s.path(chamberSlug, datasetID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetDataset retrieves a dataset blob.
func (s *LocalStorage) GetDataset(ctx context.Context, chamberSlug, datasetID string) ([]byte, error) {
	return os.ReadFile(s.path(chamberSlug, datasetID))
}

// Ref returns the catalog reference for a locally stored blob.
func (s *LocalStorage) Ref(chamberSlug, datasetID string) string {
	return fmt.Sprintf("local://%s/datasets/%s.json", chamberSlug, datasetID)
}
