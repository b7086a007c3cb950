package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/sportomic-backend/api/routes"
	"github.com/angelmondragon/sportomic-backend/internal/dashboard"
	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/internal/records"
	"github.com/angelmondragon/sportomic-backend/pkg/config"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/env"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
	"github.com/angelmondragon/sportomic-backend/pkg/metrics"
	"github.com/angelmondragon/sportomic-backend/pkg/migrate"
	"github.com/angelmondragon/sportomic-backend/pkg/redis"
	"github.com/angelmondragon/sportomic-backend/pkg/telemetry"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	tel, err := telemetry.Init(ctx, cfg.Telemetry, cfg.App.Env)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(logg, cfg, tel)

	// The pool opens on first use so the server can start while the
	// database is still coming up.
	provider := db.NewProvider(cfg.DB, logg)
	defer func() {
		if err := provider.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate {
		client, err := provider.Client(ctx)
		if err != nil {
			return err
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return err
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Info(ctx, "redis not configured, idempotent import replay disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dashboardService, err := dashboard.NewService(dashboard.NewRepository(provider), dashboard.ServiceConfig{
		Parallelism: cfg.Dashboard.Parallelism,
		Logger:      logg,
		Metrics:     metrics.NewDashboardMetrics(registry),
		Tracer:      tel.Tracer(),
	})
	if err != nil {
		return err
	}

	recordsService, err := records.NewService(records.NewRepository(provider))
	if err != nil {
		return err
	}

	engine := ingest.NewEngine(ingest.NewStore(provider), ingest.EngineConfig{
		Concurrency: cfg.Ingest.Concurrency,
		Logger:      logg,
		Metrics:     metrics.NewIngestMetrics(registry),
		Tracer:      tel.Tracer(),
	})
	ingestService, err := ingest.NewService(engine, logg)
	if err != nil {
		return err
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, provider, redisClient, routes.Services{
			Dashboard: dashboardService,
			Records:   recordsService,
			Ingest:    ingestService,
		}, routes.Observability{
			HTTP:     metrics.NewHTTPMetrics(registry),
			Gatherer: registry,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func shutdownTelemetry(logg *logger.Logger, cfg *config.Config, tel *telemetry.Telemetry) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		logg.Error(ctx, "error flushing traces", err)
	}
}
