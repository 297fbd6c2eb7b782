package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vin-gateway/internal/config"
	"vin-gateway/vehicle"
	"vin-gateway/vehicle/infra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe o servidor HTTP do gateway",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("listen-addr", "", "endereço HTTP (LISTEN_ADDR)")
	_ = v.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen-addr"))
}

func serve(parent context.Context, cfg *config.Config) error {
	logger := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.memCache != nil {
		a.memCache.StartJanitor(ctx)
	}

	h := vehicle.NewHandler(vehicle.HandlerOptions{
		Gateway:    a.gateway,
		Orgs:       a.orgs,
		Stats:      a.stats,
		RetryAfter: cfg.RetryAfter,
		Logger:     logger,
	}).Routes()

	h = vehicle.ConcurrencyMiddleware(vehicle.ConcurrencyOptions{
		Max:            cfg.ConcurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.ConcurrencyTimeout,
	})(h)
	if cfg.ClientRateEnabled {
		store := infra.NewClientLimiterStore(cfg.ClientRateRPS, cfg.ClientRateBurst)
		store.StartJanitor(ctx)
		h = vehicle.ThrottleMiddleware(vehicle.ThrottleOptions{
			Store:              store,
			KeyHeader:          cfg.ClientKeyHeader,
			TrustXForwardedFor: cfg.TrustXFF,
			KeyByOrg:           cfg.ClientKeyByOrg,
			RejectStatus:       http.StatusTooManyRequests,
			RetryAfter:         cfg.RetryAfter,
		})(h)
	}
	h = vehicle.AccessLogMiddleware(logger)(h)
	h = vehicle.RequestIDMiddleware(h)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("gateway listening",
		"addr", cfg.ListenAddr,
		"upstream", cfg.UpstreamURL,
		"upstream_retries", cfg.UpstreamRetries,
		"upstream_max_inflight", cfg.UpstreamMaxInflight,
	)
	logger.Info("rate limit",
		"algorithm", cfg.RateAlgorithm,
		"max_calls", cfg.RateMaxCalls,
		"window", cfg.RateWindow,
	)
	logger.Info("cache",
		"backend", cfg.CacheBackend,
		"ttl", cfg.CacheTTL,
		"max_entries", cfg.CacheMaxEntries,
	)
	logger.Info("client throttle",
		"enabled", cfg.ClientRateEnabled,
		"rps", cfg.ClientRateRPS,
		"burst", cfg.ClientRateBurst,
		"key_header", cfg.ClientKeyHeader,
		"key_by_org", cfg.ClientKeyByOrg,
		"trust_xff", cfg.TrustXFF,
	)
	logger.Info("concurrency", "max", cfg.ConcurrencyMax, "acquire_timeout", cfg.ConcurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("gateway stopped")
	return nil
}
