// Package db provides PostgreSQL persistence for identity mappings.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the identity_mappings table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS identity_mappings (
		     external_id TEXT PRIMARY KEY,
		     principal   TEXT NOT NULL,
		     created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Lookup returns the cached principal for an external id.
// Implements identity.MappingStore.
func (db *DB) Lookup(ctx context.Context, externalID string) (string, bool, error) {
	var principal string
	err := db.pool.QueryRow(ctx,
		`SELECT principal FROM identity_mappings WHERE external_id = $1`,
		externalID,
	).Scan(&principal)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up identity mapping: %w", err)
	}
	return principal, true, nil
}

// Save stores an external-id to principal mapping. Mappings are append-only
// and input-determined, so a concurrent insert of the same key is a no-op.
func (db *DB) Save(ctx context.Context, externalID, principal string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO identity_mappings (external_id, principal)
		 VALUES ($1, $2)
		 ON CONFLICT (external_id) DO NOTHING`,
		externalID, principal,
	)
	if err != nil {
		return fmt.Errorf("failed to save identity mapping: %w", err)
	}
	return nil
}
