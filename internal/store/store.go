// Package store opens the record store selected by STORE_DRIVER.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/sheetimport/internal/config"
	"github.com/JonMunkholm/sheetimport/internal/core"
	"github.com/JonMunkholm/sheetimport/internal/store/memory"
	"github.com/JonMunkholm/sheetimport/internal/store/postgres"
)

// Opened is a ready store plus its lifecycle hooks.
type Opened struct {
	Store core.Store

	// Ping checks connectivity; nil for backends without a connection.
	Ping func(ctx context.Context) error

	close func()
}

// Close releases the backend's resources.
func (o *Opened) Close() {
	if o.close != nil {
		o.close()
	}
}

// Open connects to the configured backend. The postgres backend is pinged
// and migrated before it is returned.
func Open(ctx context.Context, cfg *config.Config) (*Opened, error) {
	switch strings.ToLower(cfg.Store.Driver) {
	case config.DriverMemory:
		slog.Warn("using in-memory record store; data is lost on exit")
		return &Opened{Store: memory.New()}, nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Opened, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	pg := postgres.New(pool)
	if err := pg.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Opened{Store: pg, Ping: pool.Ping, close: pool.Close}, nil
}
