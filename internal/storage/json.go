package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// jsonAPI keeps the file stable between saves by sorting user IDs.
var jsonAPI = sonic.Config{
	SortMapKeys: true,
}.Froze()

// JSONStore persists the point table as a single JSON object on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the table. A missing or empty file yields an empty table.
func (s *JSONStore) Load(_ context.Context) (Table, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(Table), nil
		}

		return nil, fmt.Errorf("failed to read points file: %w", err)
	}

	table := make(Table)
	if len(data) == 0 {
		return table, nil
	}

	if err := jsonAPI.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse points file: %w", err)
	}

	return table, nil
}

// Save overwrites the file with the given table through a temporary
// file in the same directory.
func (s *JSONStore) Save(_ context.Context, table Table) error {
	if table == nil {
		table = make(Table)
	}

	data, err := jsonAPI.MarshalIndent(table, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode points: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create points directory: %w", err)
	}

	// Replace the file by renaming a temporary one from the same directory
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary points file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write points file: %w", err)
	}

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set points file mode: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write points file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace points file: %w", err)
	}

	return nil
}

// Close is a no-op for the file store.
func (s *JSONStore) Close() error {
	return nil
}
