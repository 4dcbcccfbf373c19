package main

import (
	"context"
	"fmt"

	"movie-wallet/config"
	fileStorage "movie-wallet/internal/adapter/storage/file"
	memoryStorage "movie-wallet/internal/adapter/storage/memory"
	pgStorage "movie-wallet/internal/adapter/storage/postgres"
	redisStorage "movie-wallet/internal/adapter/storage/redis"
	"movie-wallet/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// backend is the configured document store plus the connections it owns.
type backend struct {
	store   ports.DocumentStore
	health  []ports.HealthChecker
	rdb     *goredis.Client
	closers []func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memoryStorage.NewStore()
		b.store = store
		b.health = append(b.health, store)

	case config.StoreDriverFile:
		store := fileStorage.NewStore(afero.NewOsFs(), cfg.Store.Path)
		b.store = store
		b.health = append(b.health, store)
		log.Info().Str("path", cfg.Store.Path).Msg("File document store ready")

	case config.StoreDriverRedis:
		rdb, err := b.redisClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.store = redisStorage.NewDocumentStore(rdb, cfg.Store.Key)
		b.health = append(b.health, redisStorage.NewDocumentHealthCheck(rdb, cfg.Store.Key))
		log.Info().Str("key", cfg.Store.Key).Msg("Redis document store ready")

	case config.StoreDriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.closers = append(b.closers, pool.Close)

		store := pgStorage.NewDocumentStore(pool, cfg.Store.DocumentID)
		if err := store.EnsureSchema(ctx); err != nil {
			b.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		b.store = store
		b.health = append(b.health, pgStorage.NewHealthCheck(pool))
		log.Info().Str("document_id", cfg.Store.DocumentID).Msg("PostgreSQL document store ready")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return b, nil
}

// redisClient returns the shared Redis client, connecting on first use.
func (b *backend) redisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	if b.rdb != nil {
		return b.rdb, nil
	}
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	b.rdb = rdb
	b.closers = append(b.closers, func() { _ = rdb.Close() })
	return rdb, nil
}

// Close releases connections in reverse order of opening.
func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}
