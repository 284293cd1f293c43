// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles the ledger server from its configuration: storage,
// quota store, services, transports and background workers.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/kirana-ledger/internal/adapter"
	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/handler"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/ratelimit"
	"github.com/MKhiriev/kirana-ledger/internal/server"
	"github.com/MKhiriev/kirana-ledger/internal/service"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/internal/workers"
	"github.com/MKhiriev/kirana-ledger/models"
)

// Run wires every component and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, log *logger.Logger) error {
	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	redisClient, err := newRedisClient(ctx, cfg.QuotaStore)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	limiter, err := newLimiter(cfg.QuotaStore, newQuotaStore(redisClient))
	if err != nil {
		return err
	}

	var rateCache store.RateCache
	if redisClient != nil {
		rateCache = store.NewRedisRateCache(redisClient)
	}
	repositories := store.NewRepositories(db, rateCache, log)

	ratesProvider, err := adapter.NewHTTPRatesProvider(cfg.Adapter, log)
	if err != nil {
		return err
	}

	services, err := service.NewServices(repositories, ratesProvider, limiter, buildInfo, *cfg, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return err
	}

	healthWorker := workers.NewHealthWorker(handlers, cfg.Workers.HealthInterval, log.GetChildLogger(),
		workers.Check{Name: "database", Ping: db.PingContext},
		workers.Check{Name: "quota-store", Ping: limiter.Ping},
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.RunServer(gCtx) })
	g.Go(func() error { return workers.NewWorkers(healthWorker).Run(gCtx) })

	return g.Wait()
}

// newRedisClient returns nil when the quota store is kept in memory.
func newRedisClient(ctx context.Context, cfg config.QuotaStore) (*redis.Client, error) {
	if cfg.Backend != config.QuotaBackendRedis {
		return nil, nil
	}
	return ratelimit.NewRedisClient(ctx, cfg.Address, cfg.Password, cfg.DB)
}

func newQuotaStore(client *redis.Client) ratelimit.QuotaStore {
	if client == nil {
		return ratelimit.NewMemoryStore(nil)
	}
	return ratelimit.NewRedisStore(client)
}

func newLimiter(cfg config.QuotaStore, quotaStore ratelimit.QuotaStore) (*ratelimit.Limiter, error) {
	policy := ratelimit.FailClosed
	if cfg.FailOpen {
		policy = ratelimit.FailOpen
	}

	return ratelimit.NewLimiter(quotaStore,
		ratelimit.BucketConfig{
			Capacity:       cfg.Capacity,
			RefillRate:     cfg.RefillRate,
			RefillInterval: cfg.RefillInterval,
		},
		ratelimit.WithTimeout(cfg.Timeout),
		ratelimit.WithFailPolicy(policy),
	)
}
