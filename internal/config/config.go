// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings for the inventory CLI.
// A Config value is built once in main and handed to each component.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `envconfig:"DB_NAME" default:"inventory.db"`

	// LogFile is the append-only log destination.
	LogFile string `envconfig:"LOG_FILE" default:"app.log"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogConsole mirrors log records to stderr when set.
	LogConsole bool `envconfig:"LOG_CONSOLE" default:"false"`

	// AdminPassword seeds the default admin account on first run.
	// When empty a random password is generated and printed once.
	AdminPassword string `envconfig:"INVENTORY_ADMIN_PASSWORD"`

	// MetricsFile, if set, receives a Prometheus text exposition on exit.
	MetricsFile string `envconfig:"METRICS_FILE"`
}

// Load reads an optional .env file from the working directory and then
// fills a Config from the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win over it.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv fills a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

// String returns a representation of the config with secrets masked.
func (c *Config) String() string {
	admin := "<generated>"
	if c.AdminPassword != "" {
		admin = "***"
	}
	return fmt.Sprintf("Config{DB: %s, Log: %s (%s), AdminPassword: %s, Metrics: %q}",
		c.DBPath, c.LogFile, c.LogLevel, admin, c.MetricsFile)
}
