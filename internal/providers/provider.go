package providers

import (
	"context"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// RecordProvider fetches a normalized activity record from an upstream source.
// Implementations must return records whose collections are non-nil.
type RecordProvider interface {
	FetchRecord(ctx context.Context, a activity.Activity) (records.Record, error)
}

// RecordProviderFunc adapts a function to RecordProvider.
type RecordProviderFunc func(ctx context.Context, a activity.Activity) (records.Record, error)

// FetchRecord calls f.
func (f RecordProviderFunc) FetchRecord(ctx context.Context, a activity.Activity) (records.Record, error) {
	return f(ctx, a)
}
