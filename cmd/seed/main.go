package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-api/internal/config"
	"github.com/spec-kit/helpdesk-api/internal/observability"
	"github.com/spec-kit/helpdesk-api/internal/persistence"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/seed"
	"github.com/spec-kit/helpdesk-api/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	file := flag.String("file", cfg.Seed.UsersFile, "YAML file with the users to seed")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	seeder := seed.NewSeeder(repository.NewUserRepository(pg.PoolHandle()), cfg.Auth.BcryptCost, logger)
	res, err := seeder.SeedFromFile(ctx, *file)
	if err != nil {
		logger.Fatal("seeding failed", zap.String("file", *file), zap.Error(err))
	}
	logger.Info("seeding complete", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
}
