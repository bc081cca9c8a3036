package ingestion

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage implements StorageClient using Google Cloud Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a GCS-backed StorageClient.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) key(chamberSlug, datasetID string) string {
	return chamberSlug + "/datasets/" + datasetID + ".json"
}

// PutDataset stores a dataset blob.
func (s *GCSStorage) PutDataset(ctx context.Context, chamberSlug, datasetID string, data []byte) error {
	key := s.key(chamberSlug, datasetID)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

// GetDataset retrieves a dataset blob.
func (s *GCSStorage) GetDataset(ctx context.Context, chamberSlug, datasetID string) ([]byte, error) {
	key := s.key(chamberSlug, datasetID)
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

// Ref returns the catalog reference for a GCS-stored blob.
func (s *GCSStorage) Ref(chamberSlug, datasetID string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.key(chamberSlug, datasetID))
}
