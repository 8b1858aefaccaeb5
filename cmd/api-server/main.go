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

	"bookshelf/database"
	"bookshelf/internal/config"
	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/middleware"
	"bookshelf/internal/microservices/http-api/repository"
	"bookshelf/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(db.Gorm, logger); err != nil {
			return err
		}
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	hasher, err := service.NewPasswordHasher(cfg.PasswordHashing, cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	books := repository.NewBookRepository(db.Gorm)
	users := repository.NewUserRepository(db.Gorm)
	assignments := repository.NewUserBookRepository(db.Gorm)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(handler.RouterOptions{
		Logger:         logger,
		Tokens:         tokens,
		Limiter:        limiter,
		RequestTimeout: cfg.RequestTimeout,
	}, []handler.Routes{
		handler.NewAuthHandler(users, hasher, tokens),
		handler.NewHealthHandler(db, logger),
	}, []handler.Routes{
		handler.NewBookHandler(books),
		handler.NewUserHandler(users, hasher),
		handler.NewUserBookHandler(assignments),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

// newLimiter picks the shared redis limiter when REDIS_URL is set and the
// in-process one otherwise. A disabled limiter is nil.
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (middleware.Limiter, func(), error) {
	noop := func() {}
	if !cfg.RateLimitOn {
		return nil, noop, nil
	}
	if cfg.RedisURL == "" {
		return middleware.NewMemoryLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		// requests still flow, RateLimit fails open on redis errors
		logger.Warn("redis unreachable, rate limiting degraded", "error", err)
	}
	logger.Info("using redis rate limiter", "addr", opts.Addr)
	return middleware.NewRedisLimiter(rdb, cfg.RateLimitBurst, time.Second), func() { _ = rdb.Close() }, nil
}
