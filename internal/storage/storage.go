// Package storage opens the configured stores for the binaries.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/astrolabe/internal/config"
	"github.com/KirkDiggler/astrolabe/internal/database"
	catalogRepo "github.com/KirkDiggler/astrolabe/internal/repositories/catalog"
)

const pingTimeout = 5 * time.Second

// Stores are the open connections and the catalog built on them
type Stores struct {
	Redis   *redis.Client
	Pool    *pgxpool.Pool
	Catalog catalogRepo.Repository
}

// Open connects to Redis and, for the postgres backend, PostgreSQL, and
// builds the catalog repository for the configured backend
func Open(ctx context.Context, cfg *config.StoreConfig, logger *slog.Logger) (*Stores, error) {
	if cfg == nil {
		return nil, errors.New("store config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	stores := &Stores{
		Redis: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := stores.Redis.Ping(pingCtx).Err(); err != nil {
		stores.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, &database.Config{DSN: cfg.PostgresDSN, Logger: logger})
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.Pool = pool

		repo, err := catalogRepo.NewPostgres(&catalogRepo.PostgresConfig{Pool: pool})
		if err != nil {
			stores.Close()
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			stores.Close()
			return nil, err
		}
		stores.Catalog = repo
	default:
		repo, err := catalogRepo.NewRedis(&catalogRepo.Config{RedisClient: stores.Redis})
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.Catalog = repo
	}

	logger.Info("stores ready", "catalog_backend", cfg.Backend, "redis_addr", cfg.RedisAddr)
	return stores, nil
}

// Close releases every connection
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}
