package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPHost        string        `env:"HTTP_HOST" default:"0.0.0.0"`
	HTTPPort        int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" default:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"` // built from the POSTGRES_* variables when empty
	DBMaxConns  int    `env:"DB_MAX_CONNS" default:"10"`
	DBMinConns  int    `env:"DB_MIN_CONNS" default:"2"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" default:"true"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" default:"7h"`
	PasswordHashing string        `env:"PASSWORD_HASHING" default:"plain"` // plain | bcrypt
	BcryptCost      int           `env:"BCRYPT_COST" default:"10"`

	// Redis backed rate limiting, empty URL keeps the limiter in process
	RedisURL       string `env:"REDIS_URL"`
	RateLimitOn    bool   `env:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRPS   int    `env:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int    `env:"RATE_LIMIT_BURST" default:"20"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, the process environment still applies
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	config := &Config{}

	loadEnvString(&config.GoEnv, "GO_ENV", "development")

	// HTTP
	loadEnvString(&config.HTTPHost, "HTTP_HOST", "0.0.0.0")
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Database
	dbPort := 5433
	if err := loadEnvInt(&dbPort, "POSTGRES_DB_PORT", 5433); err != nil {
		return nil, err
	}
	loadEnvString(&config.DatabaseURL, "DATABASE_URL", postgresURL(
		envOr("POSTGRES_HOST", "127.0.0.1"),
		dbPort,
		envOr("POSTGRES_USER", "user"),
		envOr("POSTGRES_PASSWORD", "12345678"),
		envOr("POSTGRES_DB", "books_store"),
	))
	if err := loadEnvInt(&config.DBMaxConns, "DB_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMinConns, "DB_MIN_CONNS", 2); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.AutoMigrate, "AUTO_MIGRATE", true); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.TokenTTL, "TOKEN_TTL", 7*time.Hour); err != nil {
		return nil, err
	}
	loadEnvString(&config.PasswordHashing, "PASSWORD_HASHING", "plain")
	if err := loadEnvInt(&config.BcryptCost, "BCRYPT_COST", 10); err != nil {
		return nil, err
	}

	// Rate limiting
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	if err := loadEnvBool(&config.RateLimitOn, "RATE_LIMIT_ENABLED", true); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitRPS, "RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}

	// Logging
	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")

	return config, nil
}

func postgresURL(host string, port int, user, password, name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	*target = envOr(key, defaultValue)
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	validHashing := []string{"plain", "bcrypt"}
	if !contains(validHashing, c.PasswordHashing) {
		errors = append(errors, fmt.Sprintf("PASSWORD_HASHING must be one of: %s", strings.Join(validHashing, ", ")))
	}

	if c.DBMinConns < 0 || c.DBMaxConns < 1 || c.DBMinConns > c.DBMaxConns {
		errors = append(errors, "DB_MIN_CONNS must be between 0 and DB_MAX_CONNS, DB_MAX_CONNS at least 1")
	}

	if c.TokenTTL <= 0 {
		errors = append(errors, "TOKEN_TTL must be positive")
	}

	if c.RateLimitOn && (c.RateLimitRPS < 1 || c.RateLimitBurst < 1) {
		errors = append(errors, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must be at least 1")
	}

	// Short secrets are tolerated locally only
	if !c.IsDevelopment() && len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addr returns the host:port the HTTP server binds to
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
