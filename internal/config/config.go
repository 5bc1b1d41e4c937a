package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"SpotWatch/internal/feed"
	"SpotWatch/internal/zone"
)

// Config holds all application configuration.
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"token"`
	} `yaml:"api"`
	Fetch struct {
		Zones []string `yaml:"zones"`
		Hours int      `yaml:"hours"`
		Cron  string   `yaml:"cron"`
	} `yaml:"fetch"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Display struct {
		Timezone string `yaml:"timezone"`
		Hours    int    `yaml:"hours"`
	} `yaml:"display"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ENTSOE_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("ENTSOE_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_CRON"); v != "" {
		cfg.Fetch.Cron = v
	}
	if v := os.Getenv("FETCH_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Hours = hours
		}
	}
	if v := os.Getenv("DISPLAY_TIMEZONE"); v != "" {
		cfg.Display.Timezone = v
	}

	// Defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = feed.DefaultBaseURL
	}
	if cfg.Fetch.Hours == 0 {
		cfg.Fetch.Hours = 24
	}
	if cfg.Fetch.Cron == "" {
		// Day-ahead prices publish around 13:00 CET; fetch shortly after.
		cfg.Fetch.Cron = "0 15 13 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/prices.db"
	}
	if cfg.Display.Timezone == "" {
		cfg.Display.Timezone = "UTC"
	}
	if cfg.Display.Hours == 0 {
		cfg.Display.Hours = 24
	}

	return cfg, nil
}

// Validate checks the fields the fetch path depends on. Read-only commands
// (export, graph) need only the database path and skip this.
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return fmt.Errorf("api.token is required (or set ENTSOE_API_TOKEN)")
	}
	if c.Fetch.Hours <= 0 {
		return fmt.Errorf("fetch.hours must be positive")
	}
	for _, code := range c.Fetch.Zones {
		if _, ok := zone.FromCode(code); !ok {
			return fmt.Errorf("fetch.zones: unknown bidding zone %q", code)
		}
	}
	return nil
}

// FetchZones resolves the configured zone codes; an empty list means every
// supported zone.
func (c *Config) FetchZones() ([]zone.Zone, error) {
	if len(c.Fetch.Zones) == 0 {
		return zone.All(), nil
	}
	zones := make([]zone.Zone, 0, len(c.Fetch.Zones))
	for _, code := range c.Fetch.Zones {
		z, ok := zone.FromCode(code)
		if !ok {
			return nil, fmt.Errorf("unknown bidding zone %q", code)
		}
		zones = append(zones, z)
	}
	return zones, nil
}
