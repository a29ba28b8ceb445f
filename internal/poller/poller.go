package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
)

const defaultInterval = 2 * time.Minute

// SnapshotWriter persists activity snapshots to disk.
type SnapshotWriter interface {
	Write(a activity.Activity, rec records.Record) error
}

// Poller pulls every activity from the live provider on an interval and writes snapshots.
type Poller struct {
	provider   providers.RecordProvider
	writer     SnapshotWriter
	logger     *slog.Logger
	metrics    *metrics.Recorder
	interval   time.Duration
	activities []activity.Activity
	now        func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.RecordProvider, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider:   provider,
		writer:     writer,
		logger:     logger,
		metrics:    recorder,
		interval:   interval,
		activities: activity.All(),
		now:        time.Now,
		done:       make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh fetches one activity from the live provider and writes its snapshot.
func (p *Poller) Refresh(ctx context.Context, a activity.Activity) (records.Record, error) {
	if p.provider == nil {
		return records.Record{}, providers.ErrProviderUnavailable
	}
	rec, err := p.provider.FetchRecord(ctx, a)
	if err != nil {
		return records.Record{}, fmt.Errorf("%s: %w", a, err)
	}
	if p.writer != nil {
		if writeErr := p.writer.Write(a, rec); writeErr != nil {
			logging.Error(p.logger, "poller snapshot write failed", writeErr, slog.String(logging.FieldActivity, a.String()))
		}
	}
	return rec, nil
}

// fetchOnce refreshes every activity. The cycle counts as a success when at least one activity
// refreshed.
func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	var (
		errs      []error
		refreshed int
	)
	for _, a := range p.activities {
		if _, err := p.Refresh(ctx, a); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}

	err := errors.Join(errs...)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if refreshed == 0 {
		if err == nil {
			err = errors.New("no activities polled")
		}
		logging.Error(p.logger, "poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}
	if err != nil {
		logging.Warn(p.logger, "poller refreshed partially", slog.Any("error", err))
	}

	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed activities",
		logging.FieldCount, refreshed,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.RecordProvider {
	return p.provider
}
