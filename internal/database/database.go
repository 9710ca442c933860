// Package database opens the PostgreSQL pool used by the catalog.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultAttempts   = 5
	defaultRetryDelay = 2 * time.Second
)

// Config holds connection settings
type Config struct {
	DSN string

	// Attempts and RetryDelay cover a database that is still starting up
	Attempts   int
	RetryDelay time.Duration

	Logger *slog.Logger
}

// NewPool creates and pings a pgx pool, retrying while the server comes up
func NewPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.DSN == "" {
		return nil, errors.New("DSN cannot be empty")
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	for attempt := 1; ; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		if attempt >= attempts {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Warn("postgres connect failed, retrying", "attempt", attempt, "of", attempts, "err", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}
