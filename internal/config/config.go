// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Values come from environment variables
// with the TRIPLEDGER prefix, e.g. TRIPLEDGER_ADDR.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	DBPath       string        `envconfig:"DB_PATH" default:"./data/tripledger.db"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("tripledger", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
