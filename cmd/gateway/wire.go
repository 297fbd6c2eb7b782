package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vin-gateway/internal/config"
	"vin-gateway/vehicle"
	"vin-gateway/vehicle/application"
	"vin-gateway/vehicle/domain"
	"vin-gateway/vehicle/infra"
)

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// app é o grafo montado a partir da Config.
type app struct {
	gateway  *application.Gateway
	orgs     *infra.MemoryOrgStore
	stats    vehicle.StatsReader
	memCache *infra.MemoryDecodeCache
	closers  []func() error
}

func (a *app) Close() {
	for _, c := range a.closers {
		_ = c()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{}

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, rdb.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
	}

	var cache domain.DecodeCache
	switch cfg.CacheBackend {
	case config.BackendRedis:
		cache = infra.NewRedisDecodeCache(rdb,
			infra.WithRedisCachePrefix(cfg.CachePrefix),
			infra.WithRedisCacheTTL(cfg.CacheTTL),
		)
	default:
		a.memCache = infra.NewMemoryDecodeCache(
			infra.WithCacheTTL(cfg.CacheTTL),
			infra.WithCacheCapacity(cfg.CacheMaxEntries),
		)
		cache = a.memCache
	}

	var limiter domain.Limiter
	switch cfg.RateAlgorithm {
	case config.RateTokenBucket:
		limiter = infra.NewTokenBucketLimiter(cfg.RateMaxCalls, cfg.RateWindow)
	default:
		limiter = infra.NewFixedWindowLimiter(cfg.RateMaxCalls, cfg.RateWindow, time.Time{})
	}

	clientOpts := []infra.ClientOption{
		infra.WithTimeout(cfg.UpstreamTimeout),
		infra.WithRetry(cfg.UpstreamRetries, cfg.UpstreamRetryBase),
		infra.WithClientLogger(logger),
	}
	if cfg.UpstreamMaxInflight > 0 {
		clientOpts = append(clientOpts, infra.WithSlots(infra.NewChanPool(cfg.UpstreamMaxInflight), cfg.UpstreamAcquireTimeout))
	}
	client := infra.NewNHTSAClient(cfg.UpstreamURL, clientOpts...)

	var stats domain.StatsStore
	if cfg.StatsEnabled {
		switch cfg.StatsBackend {
		case config.BackendRedis:
			stats = infra.NewRedisStatsStore(rdb,
				infra.WithStatsPrefix(cfg.StatsPrefix),
				infra.WithStatsTTL(cfg.StatsTTL),
			)
		default:
			mem := infra.NewMemoryStatsStore()
			stats = mem
			a.stats = mem
		}
	}

	var seedVehicles []domain.VehicleRecord
	var seedOrgs []domain.Organization
	if cfg.SeedData {
		seedVehicles = infra.SampleVehicles()
		seedOrgs = infra.SampleOrgs()
	}
	a.orgs = infra.NewMemoryOrgStore(seedOrgs...)

	gw, err := application.NewGateway(application.GatewayDeps{
		Cache:    cache,
		Limiter:  limiter,
		Client:   client,
		Registry: infra.NewMemoryRegistry(seedVehicles...),
		Orgs:     infra.NewStaticOrgSet(cfg.KnownOrgs...),
		Stats:    stats,
		Logger:   logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.gateway = gw
	return a, nil
}
