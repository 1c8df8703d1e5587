package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv_store (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// KVStore implements domain.KeyValueStore using PostgreSQL
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore creates a new KVStore and makes sure its table exists
func NewKVStore(pool *pgxpool.Pool) (*KVStore, error) {
	ctx := context.Background()
	if _, err := pool.Exec(ctx, createKVTable); err != nil {
		return nil, fmt.Errorf("create kv_store table: %w", err)
	}
	return &KVStore{pool: pool}, nil
}

// Get retrieves the record stored under key
func (r *KVStore) Get(key string) ([]byte, error) {
	ctx := context.Background()
	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set upserts the record stored under key
func (r *KVStore) Set(key string, value []byte) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the record; absent keys are ignored
func (r *KVStore) Delete(key string) error {
	ctx := context.Background()
	if _, err := r.pool.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the pool
func (r *KVStore) Close() error {
	r.pool.Close()
	return nil
}

var _ domain.KeyValueStore = (*KVStore)(nil)
