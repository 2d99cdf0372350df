package scenario

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RaxHax/fratak/internal/calculations"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	config TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore persists scenarios in a sqlite database. The configuration is
// stored as its JSON document, so schema changes in LoanConfig do not need
// migrations.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scenarios table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sc Scenario) error {
	raw, err := json.Marshal(sc.Config)
	if err != nil {
		return fmt.Errorf("marshal scenario config: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, config, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, config = excluded.config, updated_at = excluded.updated_at`,
		sc.ID, sc.Name, string(raw),
		sc.CreatedAt.UTC().Format(time.RFC3339Nano),
		sc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save scenario: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, config, created_at, updated_at FROM scenarios WHERE id = ?", id)
	return scanScenario(row)
}

func (s *SQLiteStore) List(ctx context.Context) ([]Scenario, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, config, created_at, updated_at FROM scenarios ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete scenario: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScenario(row scanner) (Scenario, error) {
	var sc Scenario
	var rawConfig, createdAt, updatedAt string
	if err := row.Scan(&sc.ID, &sc.Name, &rawConfig, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Scenario{}, ErrNotFound
		}
		return Scenario{}, fmt.Errorf("scan scenario: %w", err)
	}
	var cfg calculations.LoanConfig
	if err := json.Unmarshal([]byte(rawConfig), &cfg); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal scenario config: %w", err)
	}
	sc.Config = cfg
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		sc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		sc.UpdatedAt = t
	}
	return sc, nil
}
