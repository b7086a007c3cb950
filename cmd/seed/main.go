package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/sportomic-backend/internal/ingest"
	"github.com/angelmondragon/sportomic-backend/pkg/config"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/logger"
)

const defaultSeedFile = "seed-data.json"

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	path := defaultSeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithField(ctx, "file", path)

	batch, err := loadBatch(path)
	if err != nil {
		logg.Error(ctx, "failed to read seed file", err)
		os.Exit(1)
	}

	provider := db.NewProvider(cfg.DB, logg)
	defer provider.Close()

	engine := ingest.NewEngine(ingest.NewStore(provider), ingest.EngineConfig{
		Concurrency: cfg.Ingest.Concurrency,
		Logger:      logg,
	})
	svc, err := ingest.NewService(engine, logg)
	if err != nil {
		logg.Error(ctx, "failed to build ingest service", err)
		os.Exit(1)
	}

	summary, err := svc.Import(ctx, batch)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	printSummary(os.Stdout, summary)
}
