package main

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/simplehttp/core/logger"
	"github.com/dmitrymomot/simplehttp/core/session"
	"github.com/dmitrymomot/simplehttp/core/session/pgstore"
	"github.com/dmitrymomot/simplehttp/core/session/redisstore"
	"github.com/dmitrymomot/simplehttp/integration/database/pg"
	"github.com/dmitrymomot/simplehttp/integration/database/redis"
)

// sessionBackend is the configured session store plus the readiness checks and
// cleanup of the connection behind it.
type sessionBackend struct {
	store  session.Store
	checks []func(context.Context) error
	close  func()
}

func openSessionBackend(ctx context.Context, g *errgroup.Group, cfg appConfig, log *slog.Logger) (*sessionBackend, error) {
	switch cfg.Session.Store {
	case session.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "session store ready", logger.Component("redis"))
		return &sessionBackend{
			store:  redisstore.NewFromConfig(client, cfg.Session, redisstore.WithLogger(log)),
			checks: []func(context.Context) error{redis.Healthcheck(client)},
			close:  func() { _ = client.Close() },
		}, nil

	case session.BackendPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg.Postgres, log, pgstore.Migrations()); err != nil {
			pool.Close()
			return nil, err
		}

		store := pgstore.NewFromConfig(pool, cfg.Session, pgstore.WithLogger(log))
		if cfg.Session.TTL > 0 && cfg.Session.CleanupInterval > 0 {
			g.Go(sweep(ctx, cfg.Session.CleanupInterval, log, func(ctx context.Context) (int64, error) {
				return store.DeleteExpired(ctx)
			}))
		}

		log.InfoContext(ctx, "session store ready", logger.Component("postgres"))
		return &sessionBackend{
			store:  store,
			checks: []func(context.Context) error{pg.Healthcheck(pool)},
			close:  pool.Close,
		}, nil

	default:
		store := session.NewMemoryStoreFromConfig(cfg.Session, session.WithLogger(log))
		if cfg.Session.TTL > 0 {
			g.Go(store.Run(ctx))
		}
		return &sessionBackend{store: store, close: func() {}}, nil
	}
}

// sweep calls fn every interval until ctx is cancelled.
func sweep(ctx context.Context, interval time.Duration, log *slog.Logger, fn func(context.Context) (int64, error)) func() error {
	return func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				n, err := fn(ctx)
				if err != nil {
					log.WarnContext(ctx, "session sweep failed", logger.Error(err))
					continue
				}
				if n > 0 {
					log.DebugContext(ctx, "expired sessions deleted", logger.Count("removed", int(n)))
				}
			}
		}
	}
}
