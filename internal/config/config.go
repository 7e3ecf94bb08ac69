package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Runtime environment: development, production or test
	Env string `env:"ENV" envDefault:"development"`

	// Server
	Port string `env:"PORT" envDefault:"8080"`

	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"fintrack"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"fintrack"`
	DBName     string `env:"DB_NAME" envDefault:"fintrack"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Directory holding the golang-migrate SQL files
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET" envDefault:"fallback-secret-key-for-dev-only"`
	JWTExpirationDur time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`
}

var (
	appConfig *Config
	mu        sync.Mutex
)

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.JWTExpirationDur <= 0 {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", cfg.JWTExpirationDur)
		cfg.JWTExpirationDur = 24 * time.Hour
	}

	mu.Lock()
	appConfig = cfg
	mu.Unlock()
	return cfg, nil
}

// Get returns the application configuration
func Get() *Config {
	mu.Lock()
	cfg := appConfig
	mu.Unlock()
	if cfg != nil {
		return cfg
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// DSN returns the PostgreSQL keyword/value connection string used by GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrationURL returns the postgres:// URL expected by golang-migrate.
func (c *Config) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
