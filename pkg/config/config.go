package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout"`
		// BulkPageSize is the documented ceiling for the full-catalog
		// snapshot fetch. One named knob instead of magic literals at
		// call sites.
		BulkPageSize int `yaml:"bulk_page_size"`
		MaxRetries   int `yaml:"max_retries"`
	} `yaml:"backend"`
	Cache struct {
		Mode        string        `yaml:"mode"` // memory, redis, layered
		SnapshotTTL time.Duration `yaml:"snapshot_ttl"`
		HistoryTTL  time.Duration `yaml:"history_ttl"`
		// RefreshInterval drives the background snapshot re-warm; zero
		// disables the refresher.
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		Redis           struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Chart struct {
		Width       float64 `yaml:"width"`
		Height      float64 `yaml:"height"`
		OriginX     float64 `yaml:"origin_x"`
		OriginY     float64 `yaml:"origin_y"`
		PaddingFrac float64 `yaml:"padding_frac"`
	} `yaml:"chart"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. A .env file in the working directory is sourced first if
// present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("BACKEND_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.BulkPageSize <= 0 {
		c.Backend.BulkPageSize = 1000
	}
	switch c.Cache.Mode {
	case "", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.mode must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Mode)
	}
	if c.Cache.Mode == "redis" || c.Cache.Mode == "layered" {
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for cache.mode '%s'", c.Cache.Mode)
		}
	}
	if c.Chart.PaddingFrac < 0 || c.Chart.PaddingFrac >= 0.5 {
		return fmt.Errorf("chart.padding_frac must be in [0, 0.5), got %v", c.Chart.PaddingFrac)
	}
	return nil
}
