package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/season-dashboard-service/internal/app/activities"
	"github.com/preston-bernstein/season-dashboard-service/internal/config"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/notify"
	"github.com/preston-bernstein/season-dashboard-service/internal/scheduler"
	"github.com/preston-bernstein/season-dashboard-service/internal/scraper"
	"github.com/preston-bernstein/season-dashboard-service/internal/snapshots"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

// NewScraper builds a scraper that writes summary snapshots under cfg.Snapshots.Dir. It returns
// nil when no page is configured.
func NewScraper(cfg config.Config, logger *slog.Logger) *scraper.Scraper {
	cfg.Scraper.Enabled = true
	return buildScraper(cfg, snapshots.NewWriter(cfg.Snapshots.Dir), logger, nil)
}

// buildScraper returns nil when scraping is disabled or no page is configured.
func buildScraper(cfg config.Config, writer scraper.SummaryWriter, logger *slog.Logger, recorder *metrics.Recorder) *scraper.Scraper {
	if !cfg.Scraper.Enabled {
		return nil
	}
	pages := make(map[activity.Activity]string)
	for name, url := range cfg.Scraper.Pages() {
		a, err := activity.Parse(name)
		if err != nil {
			continue
		}
		pages[a] = url
	}
	if len(pages) == 0 {
		logging.Warn(logger, "scraper enabled without pages, skipping")
		return nil
	}
	return scraper.New(scraper.Config{
		Pages:            pages,
		Team:             cfg.Scraper.Team,
		Timeout:          cfg.Scraper.Timeout,
		UserAgent:        cfg.Scraper.UserAgent,
		CloudflareBypass: cfg.Scraper.CloudflareBypass,
	}, writer, logger, recorder)
}

// buildNotifier opens the marker store and whichever sinks are configured. The returned
// closer releases the marker store. Any setup failure disables notifications.
func buildNotifier(ctx context.Context, cfg config.Config, svc *activities.Service, logger *slog.Logger, recorder *metrics.Recorder) (*notify.Notifier, func() error) {
	noop := func() error { return nil }
	if !cfg.Notify.Enabled {
		return nil, noop
	}

	var sinks []notify.Sink
	if cfg.Notify.TelegramEnabled() {
		tg, err := notify.NewTelegramSink(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, "")
		if err != nil {
			logging.Warn(logger, "telegram sink disabled", slog.Any("err", err))
		} else {
			sinks = append(sinks, tg)
		}
	}
	if cfg.Notify.EmailEnabled() {
		mail, err := notify.NewEmailSink(notify.EmailConfig{
			Host:     cfg.Notify.SMTPHost,
			Port:     cfg.Notify.SMTPPort,
			Username: cfg.Notify.SMTPUser,
			Password: cfg.Notify.SMTPPassword,
			From:     cfg.Notify.EmailFrom,
			To:       cfg.Notify.EmailTo,
		})
		if err != nil {
			logging.Warn(logger, "email sink disabled", slog.Any("err", err))
		} else {
			sinks = append(sinks, mail)
		}
	}
	if len(sinks) == 0 {
		logging.Warn(logger, "notifications enabled without a usable channel, skipping")
		return nil, noop
	}

	markers, err := notify.OpenSQLStore(ctx, cfg.Notify.MarkerDB)
	if err != nil {
		logging.Error(logger, "notification marker store unavailable", err)
		return nil, noop
	}

	preferLive := cfg.Live.PreferLive
	source := func(ctx context.Context, a activity.Activity) (records.Record, error) {
		res, err := svc.Fetch(ctx, a, preferLive)
		return res.Record, err
	}
	return notify.New(source, markers, sinks, logger, recorder), markers.Close
}

// buildScheduler registers the scrape and notify jobs. It returns nil when neither is enabled.
func buildScheduler(cfg config.Config, sc *scraper.Scraper, n *notify.Notifier, logger *slog.Logger) *scheduler.Scheduler {
	var jobs []scheduler.Job
	if sc != nil {
		jobs = append(jobs, scheduler.Job{
			Name:      "scrape",
			Cron:      cfg.Scraper.Schedule,
			Immediate: true,
			Run:       sc.ScrapeAll,
		})
	}
	if n != nil {
		jobs = append(jobs, scheduler.Job{
			Name: "notify",
			Cron: cfg.Notify.Schedule,
			Run: func(ctx context.Context) error {
				_, err := n.Check(ctx)
				return err
			},
		})
	}
	if len(jobs) == 0 {
		return nil
	}

	s, err := scheduler.New(timeutil.ResolveLocation(cfg.Season.Timezone), logger)
	if err != nil {
		logging.Error(logger, "scheduler unavailable", err)
		return nil
	}
	for _, job := range jobs {
		if err := s.Add(job); err != nil {
			logging.Error(logger, "failed to schedule job", err, slog.String("job", job.Name))
		}
	}
	return s
}
