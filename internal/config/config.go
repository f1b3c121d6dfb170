// Package config loads and validates application configuration from
// environment variables, with optional .env file support.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all configuration values for the fleet admin CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// SeedFile is an optional path to a YAML seed file. When empty, the
	// built-in sample records are used.
	SeedFile string

	// DefaultVendorID is used by console commands that omit a vendor.
	// Defaults to "vendor-1", the vendor of the built-in samples.
	DefaultVendorID string

	// TableLimit caps the number of rows rendered per table.
	// Defaults to 50.
	TableLimit int
}

// Load reads configuration from the environment and returns a Config.
// A .env file in the working directory is loaded first if present; real
// environment variables take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		LogLevel:        cast.ToString(getEnv("LOG_LEVEL", "info")),
		SeedFile:        cast.ToString(getEnv("SEED_FILE", "")),
		DefaultVendorID: cast.ToString(getEnv("DEFAULT_VENDOR_ID", "vendor-1")),
		TableLimit:      cast.ToInt(getEnv("TABLE_LIMIT", 50)),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config.Load: invalid LOG_LEVEL %q", cfg.LogLevel)
	}

	if cfg.TableLimit < 1 {
		return Config{}, fmt.Errorf("config.Load: TABLE_LIMIT must be positive, got %d", cfg.TableLimit)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key string, fallback interface{}) interface{} {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
