package server

import (
	"log/slog"

	"github.com/preston-bernstein/season-dashboard-service/internal/config"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers/portal"
)

// providerFactory assembles the live provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build returns nil when no live endpoint is configured. The returned func stops the rate
// limiter's ticker.
func (f providerFactory) build(cfg config.Config) (providers.RecordProvider, func()) {
	if !cfg.Live.Enabled() {
		return nil, func() {}
	}
	client := portal.NewClient(portal.Config{
		BaseURL: cfg.Live.BaseURL,
		APIKey:  cfg.Live.APIKey,
		Timeout: cfg.Live.Timeout,
	})
	limited := providers.NewRateLimitedProvider(client, cfg.Live.MinInterval, f.logger)
	stop := func() {}
	if c, ok := limited.(interface{ Close() }); ok {
		stop = c.Close
	}
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, liveProviderName, 0, 0), stop
}

// wrap applies the retry wrapper to an injected provider.
func (f providerFactory) wrap(p providers.RecordProvider) providers.RecordProvider {
	return providers.NewRetryingProvider(p, f.logger, f.metrics, normalizeProviderName("", p), 0, 0)
}
