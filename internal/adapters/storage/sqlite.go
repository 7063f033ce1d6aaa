package storage

// The portfolio is stored as a single JSON blob in one row: the engine's
// contract is load/save of an opaque state value, not per-entity queries.
// Missing fields in an older blob fall back to the default-portfolio shape
// because unmarshalling starts from domain.NewPortfolio().

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolio (
    id         INTEGER PRIMARY KEY CHECK (id = 1),
    state      TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`

// SQLiteStore implements ports.PortfolioStore on SQLite (pure Go, no CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at the given path and
// applies the schema. ":memory:" is accepted for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the persisted portfolio, or the default one when the store
// is empty. Fields absent from the stored blob keep their default values.
func (s *SQLiteStore) Load(ctx context.Context) (domain.PortfolioState, error) {
	state := domain.NewPortfolio()

	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM portfolio WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("storage.Load: %w", err)
	}

	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return domain.NewPortfolio(), fmt.Errorf("storage.Load: parse state: %w", err)
	}
	if state.Positions == nil {
		state.Positions = map[string]domain.Position{}
	}
	return state, nil
}

// Save upserts the portfolio blob.
func (s *SQLiteStore) Save(ctx context.Context, state domain.PortfolioState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage.Save: marshal state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO portfolio (id, state, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		string(blob), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storage.Save: %w", err)
	}
	return nil
}

// Close closes the database connection cleanly.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
