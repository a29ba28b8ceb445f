package config

import "time"

// ScraperConfig controls the scheduled HTML scraper that writes summary snapshots.
type ScraperConfig struct {
	Enabled          bool          `envconfig:"SCRAPER_ENABLED" default:"false"`
	Schedule         string        `envconfig:"SCRAPER_SCHEDULE" default:"*/30 * * * *"`
	Team             string        `envconfig:"SCRAPER_TEAM"`
	BaseballURL      string        `envconfig:"SCRAPER_BASEBALL_URL"`
	VolleyballURL    string        `envconfig:"SCRAPER_VOLLEYBALL_URL"`
	InternationalURL string        `envconfig:"SCRAPER_INTERNATIONAL_URL"`
	Timeout          time.Duration `envconfig:"SCRAPER_TIMEOUT" default:"15s"`
	UserAgent        string        `envconfig:"SCRAPER_USER_AGENT"`
	CloudflareBypass bool          `envconfig:"SCRAPER_CLOUDFLARE_BYPASS" default:"false"`
}

// Pages returns the configured page URL per activity name.
func (c ScraperConfig) Pages() map[string]string {
	pages := make(map[string]string, 3)
	if c.BaseballURL != "" {
		pages["baseball"] = c.BaseballURL
	}
	if c.VolleyballURL != "" {
		pages["volleyball"] = c.VolleyballURL
	}
	if c.InternationalURL != "" {
		pages["international"] = c.InternationalURL
	}
	return pages
}

func (c *ScraperConfig) normalize() {
	c.Schedule = scheduleOr(c.Schedule, defaultScraperSchedule)
	c.Timeout = positiveOr(c.Timeout, defaultScraperTimeout)
	if c.UserAgent == "" {
		c.UserAgent = defaultScraperUserAgent
	}
}
