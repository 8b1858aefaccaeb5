package main

import (
	"context"
	"log/slog"
	"os"

	"bookshelf/database"
	"bookshelf/internal/config"
	"bookshelf/internal/microservices/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("sample data loaded",
		"books", len(database.SampleBooks),
		"users", len(database.SampleUsers),
		"assignments", len(database.SampleAssignments),
	)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db.Gorm, logger); err != nil {
		return err
	}

	hasher, err := service.NewPasswordHasher(cfg.PasswordHashing, cfg.BcryptCost)
	if err != nil {
		return err
	}
	return database.Seed(ctx, db.Gorm, hasher)
}
