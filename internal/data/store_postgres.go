package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PostgresStore keeps collections as jsonb rows of a single key/value table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the collections table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmt := `
		CREATE TABLE IF NOT EXISTS collections (
			key        text PRIMARY KEY,
			value      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, key string, dest any) error {
	stmt := `
		SELECT value
		FROM collections
		WHERE key = $1`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc []byte
	err := s.db.QueryRowContext(ctx, stmt, key).Scan(&doc)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrNoCollection
		default:
			return err
		}
	}

	return json.Unmarshal(doc, dest)
}

func (s *PostgresStore) Save(ctx context.Context, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}

	stmt := `
		INSERT INTO collections (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, stmt, key, doc)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
