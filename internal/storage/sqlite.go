package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const createPointsTable = `
	CREATE TABLE IF NOT EXISTS points (
		user_id TEXT PRIMARY KEY,
		points INTEGER NOT NULL,
		level INTEGER NOT NULL
	)
`

// SQLiteStore persists the point table in a single SQLite table.
// Save replaces the table contents inside one transaction.
type SQLiteStore struct {
	conn *sqlite.Conn
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := sqlitex.ExecuteTransient(conn, createPointsTable, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create points table: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Load reads every row into a table.
func (s *SQLiteStore) Load(ctx context.Context) (Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	table := make(Table)

	err := sqlitex.Execute(s.conn, "SELECT user_id, points, level FROM points", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			table[stmt.ColumnText(0)] = PointRecord{
				Points: stmt.ColumnInt(1),
				Level:  stmt.ColumnInt(2),
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}

	return table, nil
}

// Save replaces all rows with the given table.
func (s *SQLiteStore) Save(ctx context.Context, table Table) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetInterrupt(ctx.Done())
	defer s.conn.SetInterrupt(nil)

	if err := sqlitex.Execute(s.conn, "BEGIN TRANSACTION", nil); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = sqlitex.Execute(s.conn, "ROLLBACK", nil)
		}
	}()

	if err := sqlitex.Execute(s.conn, "DELETE FROM points", nil); err != nil {
		return fmt.Errorf("failed to clear points: %w", err)
	}

	for userID, record := range table {
		err := sqlitex.Execute(s.conn,
			"INSERT INTO points (user_id, points, level) VALUES (?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []any{userID, record.Points, record.Level},
			})
		if err != nil {
			return fmt.Errorf("failed to insert points for %s: %w", userID, err)
		}
	}

	if err := sqlitex.Execute(s.conn, "COMMIT", nil); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.Close()
}
