package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Transcript storage backends.
const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendSurreal = "surreal"
)

const devSessionSecret = "parley-development-session-secret"

// Config holds all configuration for the application.
type Config struct {
	Addr          string
	LogFormat     string
	LogLevel      string
	SessionSecret string

	Backend            string
	TranscriptCapacity int
	PageSize           int
	RateLimitPerSecond float64

	SQLitePath string
	SeedPath   string

	DBUrl  string
	DBNs   string
	DBDb   string
	DBUser string
	DBPass string
}

// New loads configuration from a .env file (if present) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:          getenv("APP_ADDR", ":8080"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		SessionSecret: getenv("SESSION_SECRET", devSessionSecret),
		Backend:       getenv("TRANSCRIPT_BACKEND", BackendMemory),
		SQLitePath:    getenv("SQLITE_PATH", "data/parley.db"),
		SeedPath:      os.Getenv("TRANSCRIPT_SEED"),
		DBUrl:         os.Getenv("SURREAL_URL"),
		DBNs:          os.Getenv("SURREAL_NS"),
		DBDb:          os.Getenv("SURREAL_DB"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
	}

	var err error
	if cfg.TranscriptCapacity, err = getint("TRANSCRIPT_CAPACITY", 500); err != nil {
		return nil, err
	}
	if cfg.PageSize, err = getint("TRANSCRIPT_PAGE_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerSecond, err = getfloat("RATE_LIMIT_PER_SECOND", 10); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	case BackendSurreal:
		if c.DBUrl == "" || c.DBNs == "" || c.DBDb == "" {
			errs = append(errs, errors.New("SURREAL_URL, SURREAL_NS and SURREAL_DB are required for the surreal backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TRANSCRIPT_BACKEND %q", c.Backend))
	}
	if c.TranscriptCapacity <= 0 {
		errs = append(errs, errors.New("TRANSCRIPT_CAPACITY must be positive"))
	}
	if c.PageSize <= 0 {
		errs = append(errs, errors.New("TRANSCRIPT_PAGE_SIZE must be positive"))
	}
	if c.RateLimitPerSecond <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_SECOND must be positive"))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getfloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
