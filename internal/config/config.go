package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New()

// RoutePreload is a static route inserted into the table at startup
type RoutePreload struct {
	Network string `toml:"network" validate:"required"`
	Gateway string `toml:"gateway" validate:"required"`
	Metric  int    `toml:"metric" validate:"gte=0"`
}

// Config represents the configuration for the router simulator
type Config struct {
	LogLevel         string         `toml:"log_level" validate:"oneof=debug info warn error"`
	ActivityLog      string         `toml:"activity_log" validate:"required"`
	ConcurrencyLimit int            `toml:"concurrency_limit" validate:"gte=1"`
	Routes           []RoutePreload `toml:"route"`
}

// NewDefaultConfig creates a config with default values
func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		ActivityLog:      "router.log",
		ConcurrencyLimit: 8,
	}
}

// Load reads and validates a TOML config file. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(content, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file at line %d, column %d: %s", row, col, derr.Error())
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, including each preloaded route
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for i, route := range c.Routes {
		if err := validate.Struct(route); err != nil {
			return fmt.Errorf("invalid route entry %d (%s): %w", i, route.Network, err)
		}
	}
	return nil
}
