package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoSnapshot is returned when no snapshot has ever been saved.
var ErrNoSnapshot = errors.New("no snapshot available")

// PostgresStore persists snapshot blobs in a single Postgres table,
// newest-wins.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore over a pgx pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the snapshots table if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id       UUID PRIMARY KEY,
			taken_at TIMESTAMPTZ NOT NULL,
			state    JSONB NOT NULL
		)`,
	)
	if err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// Save writes one snapshot blob.
func (s *PostgresStore) Save(ctx context.Context, state []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO snapshots (id, taken_at, state) VALUES ($1, $2, $3)`,
		uuid.New().String(), time.Now().UTC(), state,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LoadLatest returns the most recently saved snapshot blob, or
// ErrNoSnapshot if none exists.
func (s *PostgresStore) LoadLatest(ctx context.Context) ([]byte, error) {
	var state []byte
	err := s.db.QueryRow(ctx,
		`SELECT state FROM snapshots ORDER BY taken_at DESC LIMIT 1`,
	).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return state, nil
}
