package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cacheadapter "github.com/smallbiznis/codegrant/internal/adapter/cache"
	"github.com/smallbiznis/codegrant/internal/bootstrap"
	"github.com/smallbiznis/codegrant/internal/client"
	"github.com/smallbiznis/codegrant/internal/config"
	httptransport "github.com/smallbiznis/codegrant/internal/http"
	"github.com/smallbiznis/codegrant/internal/http/handler"
	"github.com/smallbiznis/codegrant/internal/jwt"
	"github.com/smallbiznis/codegrant/internal/pages"
	"github.com/smallbiznis/codegrant/internal/repository"
	"github.com/smallbiznis/codegrant/internal/server"
	"github.com/smallbiznis/codegrant/internal/service"
	"github.com/smallbiznis/codegrant/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newSnowflake,
			newPGXPool,
			newRedisClient,
			newKeyspace,
			newClientRepository,
			newUserRepository,
			newClientCache,
			newPendingStore,
			newCodeStore,
			newClientDirectory,
			newTokenGenerator,
			service.NewAuthService,
			pages.NewRenderer,
			handler.NewAuthHandler,
			newHealthHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.EnsureSchema, bootstrap.EnsureAdmin, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newRedisClient(lc fx.Lifecycle, cfg config.Config) (redis.UniversalClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return rdb, nil
}

func newKeyspace(cfg config.Config) cacheadapter.Keyspace {
	return cacheadapter.NewKeyspace(cfg.CachePrefix)
}

func newClientRepository(pool *pgxpool.Pool) repository.ClientRepository {
	return repository.NewPostgresClientRepo(pool)
}

func newUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return repository.NewPostgresUserRepo(pool)
}

func newClientCache(rdb redis.UniversalClient, keys cacheadapter.Keyspace, cfg config.Config) repository.ClientCache {
	return cacheadapter.NewRedisClientCache(rdb, keys, cfg.ClientCacheTTL)
}

func newPendingStore(rdb redis.UniversalClient, keys cacheadapter.Keyspace, cfg config.Config) repository.PendingAuthorizationStore {
	return cacheadapter.NewRedisPendingStore(rdb, keys, cfg.PendingRequestTTL)
}

func newCodeStore(rdb redis.UniversalClient, keys cacheadapter.Keyspace, cfg config.Config) repository.AuthorizationCodeStore {
	return cacheadapter.NewRedisCodeStore(rdb, keys, cfg.AuthCodeTTL)
}

func newClientDirectory(repo repository.ClientRepository, cache repository.ClientCache, cfg config.Config, logger *zap.Logger) service.ClientDirectory {
	return client.NewDirectory(repo, cache, cfg.StoreTimeout, logger)
}

func newTokenGenerator(cfg config.Config) *jwt.Generator {
	return jwt.NewGenerator(jwt.NewSigningKey(cfg.JWTSecret), cfg.AccessTokenTTL)
}

func newHealthHandler(rdb redis.UniversalClient, pool *pgxpool.Pool, cfg config.Config) *handler.HealthHandler {
	return handler.NewHealthHandler(map[string]handler.Check{
		"redis": func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
		"postgres": pool.Ping,
	}, cfg.StoreTimeout)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
