package activities

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/snapshots"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

const defaultLiveTimeout = 5 * time.Second

// Options wires the orchestrator's collaborators. Live may be nil when no live endpoint exists.
type Options struct {
	Resolver    season.Resolver
	Live        providers.RecordProvider
	Snapshots   snapshots.Store
	Fallback    func(activity.Activity) records.Record
	LiveTimeout time.Duration
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
}

// Result is one orchestrated fetch.
type Result struct {
	Record         records.Record `json:"record"`
	Source         records.Source `json:"source"`
	DaysUntilStart *int           `json:"daysUntilStart,omitempty"`
}

// Service produces activity records from the best available source and stamps each with the
// current season status.
type Service struct {
	resolver    season.Resolver
	live        providers.RecordProvider
	snapshots   snapshots.Store
	fallback    func(activity.Activity) records.Record
	liveTimeout time.Duration
	logger      *slog.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

// NewService constructs a Service. A missing fallback defaults to the fixture records.
func NewService(opts Options) *Service {
	if opts.Fallback == nil {
		opts.Fallback = fixture.Record
	}
	if opts.LiveTimeout <= 0 {
		opts.LiveTimeout = defaultLiveTimeout
	}
	return &Service{
		resolver:    opts.Resolver,
		live:        opts.Live,
		snapshots:   opts.Snapshots,
		fallback:    opts.Fallback,
		liveTimeout: opts.LiveTimeout,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		now:         time.Now,
	}
}

// Resolver exposes the season resolver the service stamps records with.
func (s *Service) Resolver() season.Resolver {
	return s.resolver
}

// LiveEnabled reports whether a live source is wired.
func (s *Service) LiveEnabled() bool {
	return s.live != nil
}

// Fetch returns the record for a. Only an unknown activity is an error; every data-path failure
// degrades to the next source.
func (s *Service) Fetch(ctx context.Context, a activity.Activity, preferLive bool) (Result, error) {
	if !a.Valid() {
		return Result{}, fmt.Errorf("%q: %w", a, activity.ErrUnknownActivity)
	}

	var live, snapshot Loader[records.Record]
	if preferLive && s.live != nil {
		live = func(ctx context.Context) (records.Record, error) {
			liveCtx, cancel := context.WithTimeout(ctx, s.liveTimeout)
			defer cancel()
			return s.live.FetchRecord(liveCtx, a)
		}
	}
	if s.snapshots != nil {
		snapshot = func(ctx context.Context) (records.Record, error) {
			if err := ctx.Err(); err != nil {
				return records.Record{}, err
			}
			return s.snapshots.Load(a)
		}
	}

	out := FetchWithFallback(ctx, live, snapshot, func() records.Record {
		rec := s.fallback(a)
		if rec.SeasonStartDate == "" {
			rec.SeasonStartDate = timeutil.FormatDate(s.resolver.Config().Window(a).Start)
		}
		return rec
	})

	logger := logging.FromContext(ctx, s.logger)
	for _, f := range out.Failures {
		logging.Warn(logger, "activity source failed, falling back",
			slog.String(logging.FieldActivity, a.String()),
			slog.String(logging.FieldStage, string(f.Source)),
			slog.Any("error", f.Err),
		)
	}

	now := s.now()
	rec := out.Value
	rec.Activity = a
	rec.Normalize()
	rec.SeasonStatus = s.resolver.Status(a, now)

	s.metrics.RecordResolution(a.String(), string(out.Source))
	logging.Info(logger, "activity resolved",
		slog.String(logging.FieldActivity, a.String()),
		slog.String(logging.FieldSource, string(out.Source)),
		slog.String(logging.FieldSeason, rec.SeasonStatus.String()),
	)

	res := Result{Record: rec, Source: out.Source}
	if days, ok := s.resolver.DaysUntilStart(a, now); ok {
		res.DaysUntilStart = &days
	}
	return res, nil
}

// FetchAll fetches every activity concurrently. Results follow activity.All() order.
func (s *Service) FetchAll(ctx context.Context, preferLive bool) []Result {
	all := activity.All()
	results := make([]Result, len(all))
	var g errgroup.Group
	for i, a := range all {
		g.Go(func() error {
			res, err := s.Fetch(ctx, a, preferLive)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	// activity.All() only yields valid activities, so Fetch cannot fail here.
	_ = g.Wait()
	return results
}
