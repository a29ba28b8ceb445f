package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	Port      string `envconfig:"PORT" default:"4000"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	Season    SeasonConfig
	Live      LiveConfig
	Snapshots SnapshotConfig
	Scraper   ScraperConfig
	Notify    NotifyConfig
	Metrics   MetricsConfig
}

// Load reads configuration from environment variables. Out-of-range values fall back to defaults;
// values that cannot be parsed at all are reported as errors.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.Live.normalize()
	c.Snapshots.normalize()
	c.Scraper.normalize()
	c.Notify.normalize()
}
