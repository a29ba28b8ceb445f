package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"

	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
)

// Job is a named cron task. Run receives the scheduler's context.
type Job struct {
	Name      string
	Cron      string
	Immediate bool
	Run       func(ctx context.Context) error
}

// Scheduler runs background jobs (scrapes, notifications) on cron schedules.
type Scheduler struct {
	s      gocron.Scheduler
	logger *slog.Logger

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler evaluating cron expressions in loc.
func New(loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{
		s:      s,
		logger: logger,
		ctx:    context.Background(),
		cancel: func() {},
	}, nil
}

// Add registers job. Overlapping runs of the same job are skipped.
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return errors.New("scheduler: job has no task")
	}
	if _, err := cron.ParseStandard(job.Cron); err != nil {
		return fmt.Errorf("scheduler: %s: invalid cron %q: %w", job.Name, job.Cron, err)
	}

	opts := []gocron.JobOption{
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if job.Immediate {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	_, err := s.s.NewJob(
		gocron.CronJob(job.Cron, false),
		gocron.NewTask(func() { s.run(job) }),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", job.Name, err)
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	s.mu.RLock()
	ctx := s.ctx
	s.mu.RUnlock()

	start := time.Now()
	err := job.Run(ctx)
	attrs := []any{
		slog.String("job", job.Name),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	}
	if err != nil {
		logging.Error(s.logger, "scheduled job failed", err, attrs...)
		return
	}
	logging.Info(s.logger, "scheduled job finished", attrs...)
}

// Jobs lists registered job names.
func (s *Scheduler) Jobs() []string {
	jobs := s.s.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

// Start begins executing jobs. Job contexts are cancelled when ctx ends or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()
	s.s.Start()
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	s.mu.RLock()
	cancel := s.cancel
	s.mu.RUnlock()
	cancel()
	return s.s.Shutdown()
}
