package chamber

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveDataset writes a dataset to disk as JSON.
func SaveDataset(path string, ds *Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for dataset: %w", err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	return nil
}

// LoadDataset reads a dataset from disk.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshaling dataset: %w", err)
	}

	return &ds, nil
}

// SaveDistricts writes a district slice to disk as JSON. This is the
// file format the map front end loads directly.
func SaveDistricts(path string, districts []District) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for districts: %w", err)
	}

	data, err := json.MarshalIndent(districts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling districts: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing districts: %w", err)
	}

	return nil
}

// LoadDistricts reads a district slice from disk.
func LoadDistricts(path string) ([]District, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading districts: %w", err)
	}

	var districts []District
	if err := json.Unmarshal(data, &districts); err != nil {
		return nil, fmt.Errorf("unmarshaling districts: %w", err)
	}

	return districts, nil
}

// SaveHistory writes an election history collection to disk as JSON.
func SaveHistory(path string, history map[int]History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for history: %w", err)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	return nil
}

// LoadHistory reads an election history collection from disk.
func LoadHistory(path string) (map[int]History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var history map[int]History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("unmarshaling history: %w", err)
	}

	return history, nil
}
