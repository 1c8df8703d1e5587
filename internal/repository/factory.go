package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/economize/economize-backend/internal/config"
	"github.com/dafibh/economize/economize-backend/internal/domain"
	"github.com/dafibh/economize/economize-backend/internal/repository/file"
	"github.com/dafibh/economize/economize-backend/internal/repository/memory"
	"github.com/dafibh/economize/economize-backend/internal/repository/postgres"
	"github.com/dafibh/economize/economize-backend/internal/repository/sqlite"
	"github.com/dafibh/economize/economize-backend/internal/repository/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Open builds the persistence area selected by cfg.StoreBackend
func Open(ctx context.Context, cfg *config.Config) (domain.KeyValueStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return memory.NewKVStore(), nil

	case config.StoreFile:
		store, err := file.NewKVStore(cfg.StoreDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		log.Info().Str("dir", cfg.StoreDir).Msg("Using file store")
		return store, nil

	case config.StoreSQLite:
		store, err := sqlite.NewKVStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		return store, nil

	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store, err := postgres.NewKVStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("Connected to database")
		return store, nil

	case config.StoreS3:
		store, err := storage.NewS3KVStore(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 store: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Str("prefix", cfg.S3.Prefix).Msg("Using S3 store")
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}
}
