package dedup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool is the subset of pgxpool.Pool used by the store; tests substitute a
// mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore is a database-backed local dedup tier for deployments that
// already run PostgreSQL.
type PostgresStore struct {
	pool   pgxPool
	logger *slog.Logger
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	store := &PostgresStore{pool: pool, logger: logger}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS processed_events (
            event_id TEXT PRIMARY KEY,
            payload TEXT,
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// IsProcessed reports whether eventID exists in the processed set.
func (s *PostgresStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id=$1)`
	var processed bool
	if err := s.pool.QueryRow(ctx, query, eventID).Scan(&processed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return processed, nil
}

// MarkProcessed inserts eventID; concurrent marks for the same id collapse.
func (s *PostgresStore) MarkProcessed(ctx context.Context, eventID string, rawEvent []byte) error {
	const query = `INSERT INTO processed_events (event_id, payload) VALUES ($1, $2)
        ON CONFLICT (event_id) DO NOTHING`
	_, err := s.pool.Exec(ctx, query, eventID, string(rawEvent))
	return err
}
