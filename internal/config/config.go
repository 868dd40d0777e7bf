// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Every field can be set through a
// SCHEDULER_-prefixed environment variable.
type Config struct {
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Postgres DSN for snapshot persistence. Empty disables snapshots.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Redis address for cascade announcements. Empty disables delivery.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// RestoreOnStart loads the latest snapshot before serving.
	RestoreOnStart bool `envconfig:"RESTORE_ON_START" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("scheduler", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
