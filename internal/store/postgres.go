package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRowID is the fixed primary key of the single snapshot row.
const snapshotRowID = 1

// PostgresBackend persists the snapshot as a single JSONB row, upserted
// in one statement so readers see either the old or the new snapshot.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects to the database and ensures the snapshot
// table exists.
func NewPostgresBackend(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS tracker_snapshots (
			id smallint PRIMARY KEY,
			data jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &PostgresBackend{pool: pool}, nil
}

// Read returns the snapshot bytes, or (nil, nil) when no snapshot exists yet.
func (b *PostgresBackend) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.pool.QueryRow(ctx,
		`SELECT data FROM tracker_snapshots WHERE id = $1`, snapshotRowID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot row: %w", err)
	}
	return data, nil
}

// Write replaces the snapshot row.
func (b *PostgresBackend) Write(ctx context.Context, data []byte) error {
	_, err := b.pool.Exec(ctx,
		`INSERT INTO tracker_snapshots (id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		snapshotRowID, data,
	)
	if err != nil {
		return fmt.Errorf("write snapshot row: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (b *PostgresBackend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
