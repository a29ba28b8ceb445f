package testutil

import (
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/app/activities"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/teststubs"
)

// NewActivityService builds an orchestrator over the default season table with stubbed
// snapshots. live may be nil.
func NewActivityService(live providers.RecordProvider, snaps map[activity.Activity]records.Record) *activities.Service {
	return activities.NewService(activities.Options{
		Resolver:    season.NewResolver(season.DefaultConfig(time.UTC)),
		Live:        live,
		Snapshots:   &teststubs.StubSnapshotStore{Records: snaps},
		LiveTimeout: time.Second,
	})
}
