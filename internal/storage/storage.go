package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownBackend is returned when the configured storage backend does not exist.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend names accepted by New.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// PointRecord holds a user's accumulated points and the level derived from them.
type PointRecord struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

// Table maps a user ID string to that user's point record.
type Table map[string]PointRecord

// Store loads and saves the point table. Save always replaces the whole
// backing store. Implementations assume a single writer.
type Store interface {
	// Load returns the stored table, or an empty table if nothing was saved yet.
	Load(ctx context.Context) (Table, error)
	// Save overwrites the stored table.
	Save(ctx context.Context, table Table) error
	// Close releases any resources held by the store.
	Close() error
}

// New creates the store for the given backend name.
func New(backend, path string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
