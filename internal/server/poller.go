package server

import (
	"context"

	"github.com/preston-bernstein/season-dashboard-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// jobScheduler runs the cron jobs (scrape, notify).
type jobScheduler interface {
	Start(ctx context.Context)
	Stop() error
	Jobs() []string
}
