package database

import (
	"context"
	"fmt"
	"log/slog"

	"bookshelf/internal/config"
	"bookshelf/internal/microservices/http-api/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB bundles the pgx pool and the gorm handle built on top of it.
type DB struct {
	Pool *pgxpool.Pool
	Gorm *gorm.DB
}

// Connect opens the pool, verifies it and hands it to gorm with error
// translation enabled so repositories can match gorm's sentinel errors.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.DBMaxConns)
	poolCfg.MinConns = int32(cfg.DBMinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	logger.Info("connected to the database",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)
	return &DB{Pool: pool, Gorm: gdb}, nil
}

// Ping reports whether the pool can reach the server.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

func (d *DB) Close() {
	if sqlDB, err := d.Gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	d.Pool.Close()
}

// Migrate creates or updates the books, users and users_books tables.
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(&models.Book{}, &models.User{}, &models.UserBook{}); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("database migrations applied successfully")
	return nil
}
