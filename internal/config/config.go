package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/minimalpairs/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	DataDir            string
	DataURL            string
	LogLevel           string
	LoadWorkers        int
	StorageKey         string
	RandomSeed         uint64
	HTTPTimeoutSeconds int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:minimalpairs.db"),
		DataDir:            envOr("DATA_DIR", "data"),
		DataURL:            envOr("DATA_URL", ""),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		LoadWorkers:        envIntOr("LOAD_WORKERS", 4),
		StorageKey:         envOr("STORAGE_KEY", "minimalPairs_v1"),
		RandomSeed:         envUintOr("RANDOM_SEED", 0),
		HTTPTimeoutSeconds: envIntOr("HTTP_TIMEOUT_SECONDS", 15),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if c.DataDir == "" && c.DataURL == "" {
		errs = append(errs, errors.New("one of DATA_DIR or DATA_URL must be set"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.LoadWorkers < 1 || c.LoadWorkers > 32 {
		errs = append(errs, fmt.Errorf("LOAD_WORKERS must be between 1 and 32, got %d", c.LoadWorkers))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("STORAGE_KEY cannot be empty"))
	}
	if c.HTTPTimeoutSeconds < 1 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envUintOr(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
