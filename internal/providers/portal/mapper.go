package portal

import (
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// mapRecord treats the live payload as untrusted: the activity tag comes from the request,
// a blank name gets the display name, and collections are never nil.
func mapRecord(a activity.Activity, rec records.Record, now time.Time) records.Record {
	rec.Activity = a
	if rec.Name == "" {
		rec.Name = a.DisplayName()
	}
	if rec.UpdatedAt == "" {
		rec.UpdatedAt = now.UTC().Format(time.RFC3339)
	}
	rec.Normalize()
	return rec
}
