// Package storage opens the blob medium selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/database"
	"github.com/MrJamesThe3rd/ledger/internal/kv"
	"github.com/MrJamesThe3rd/ledger/internal/kv/file"
	"github.com/MrJamesThe3rd/ledger/internal/kv/postgres"
	"github.com/MrJamesThe3rd/ledger/internal/kv/redis"
)

// Open returns the configured medium and a function releasing it.
func Open(ctx context.Context, cfg *config.Config) (kv.Medium, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory storage, data is lost on exit")
		return kv.NewMemory(), noop, nil

	case config.DriverFile:
		s, err := file.New(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file storage: %w", err)
		}

		slog.Info("using file storage", "dir", cfg.Storage.Dir)

		return s, noop, nil

	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}

		s := postgres.New(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		slog.Info("using postgres storage", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return s, db.Close, nil

	case config.DriverRedis:
		s, err := redis.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("using redis storage", "addr", cfg.Redis.Addr)

		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
