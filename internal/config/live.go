package config

import "time"

// LiveConfig controls the live data endpoint. The live path is only used when BaseURL is set.
type LiveConfig struct {
	BaseURL      string        `envconfig:"LIVE_BASE_URL"`
	APIKey       string        `envconfig:"LIVE_API_KEY"`
	Timeout      time.Duration `envconfig:"LIVE_TIMEOUT" default:"5s"`
	PreferLive   bool          `envconfig:"LIVE_DEFAULT" default:"false"`
	MinInterval  time.Duration `envconfig:"LIVE_MIN_INTERVAL" default:"1s"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"2m"`
}

// Enabled reports whether a live endpoint is configured.
func (c LiveConfig) Enabled() bool {
	return c.BaseURL != ""
}

func (c *LiveConfig) normalize() {
	c.Timeout = positiveOr(c.Timeout, defaultLiveTimeout)
	c.MinInterval = positiveOr(c.MinInterval, defaultLiveMinInterval)
	c.PollInterval = positiveOr(c.PollInterval, defaultPollInterval)
}
