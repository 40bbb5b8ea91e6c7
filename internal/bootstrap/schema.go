package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/config"
)

// Execer runs DDL statements.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Execer = (*pgxpool.Pool)(nil)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
	id             BIGINT PRIMARY KEY,
	name           TEXT   NOT NULL,
	allowed_scopes TEXT[] NOT NULL DEFAULT '{}',
	redirect_uris  TEXT[] NOT NULL DEFAULT '{}',
	secret         TEXT   NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS users (
	id         BIGINT PRIMARY KEY,
	email      TEXT        NOT NULL UNIQUE,
	password   TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

// EnsureSchema creates the clients and users tables on start when AUTO_MIGRATE is set.
func EnsureSchema(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, logger *zap.Logger) {
	if !cfg.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := ensureSchema(ctx, pool); err != nil {
				return err
			}
			logger.Info("database schema ensured")
			return nil
		},
	})
}

func ensureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}
