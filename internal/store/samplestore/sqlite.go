// internal/store/samplestore/sqlite.go
package samplestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tamzrod/companion-sync/internal/snapshot"
)

// SQLiteStore holds historical metric samples and implements the
// snapshot.ReadingAccessor contract.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens the sample database.
// Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("samplestore: open %s: %w", path, err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("samplestore: initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		value REAL NOT NULL,
		timestamp REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_samples_timestamp ON samples(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Insert records one sample.
func (s *SQLiteStore) Insert(ctx context.Context, value float64, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO samples (value, timestamp) VALUES (?, ?)",
		value, float64(at.Unix()),
	)
	if err != nil {
		return fmt.Errorf("samplestore: insert sample: %w", err)
	}
	return nil
}

// Latest returns up to limit samples newer than since, newest-first.
func (s *SQLiteStore) Latest(ctx context.Context, limit int, since time.Time) ([]snapshot.Sample, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT value, timestamp FROM samples WHERE timestamp >= ? ORDER BY timestamp DESC LIMIT ?",
		float64(since.Unix()), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("samplestore: query samples: %w", err)
	}
	defer rows.Close()

	var samples []snapshot.Sample
	for rows.Next() {
		var sm snapshot.Sample
		if err := rows.Scan(&sm.Value, &sm.Timestamp); err != nil {
			return nil, fmt.Errorf("samplestore: scan sample: %w", err)
		}
		samples = append(samples, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("samplestore: iterate samples: %w", err)
	}

	return samples, nil
}

// Prune deletes samples older than before. Returns the number removed.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM samples WHERE timestamp < ?",
		float64(before.Unix()),
	)
	if err != nil {
		return 0, fmt.Errorf("samplestore: prune samples: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("samplestore: prune rows affected: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
