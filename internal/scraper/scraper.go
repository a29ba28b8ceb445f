package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
)

const defaultTimeout = 15 * time.Second

// ErrNoPage is returned when no page URL is configured for an activity.
var ErrNoPage = errors.New("no page configured")

// SummaryWriter persists the scraped summary document.
type SummaryWriter interface {
	WriteSummary(a activity.Activity, rec records.Record) error
}

// Config controls which pages are scraped and how.
type Config struct {
	Pages            map[activity.Activity]string
	Team             string
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
}

// Scraper pulls standings, recent results and upcoming fixtures from activity pages and writes
// them as summary snapshots.
type Scraper struct {
	client  *resty.Client
	pages   map[activity.Activity]string
	team    string
	writer  SummaryWriter
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// New constructs a Scraper. writer may be nil to scrape without persisting.
func New(cfg Config, writer SummaryWriter, logger *slog.Logger, recorder *metrics.Recorder) *Scraper {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().SetTimeout(timeout)
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}
	if cfg.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	pages := make(map[activity.Activity]string, len(cfg.Pages))
	for a, url := range cfg.Pages {
		if url != "" {
			pages[a] = strings.TrimSuffix(url, "/")
		}
	}
	return &Scraper{
		client:  client,
		pages:   pages,
		team:    cfg.Team,
		writer:  writer,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Activities lists the activities that have a page configured, in display order.
func (s *Scraper) Activities() []activity.Activity {
	var out []activity.Activity
	for _, a := range activity.All() {
		if _, ok := s.pages[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Scrape fetches every facet of a concurrently. A failing facet leaves its collection empty;
// the call fails only when every facet failed. On success the summary snapshot is written.
func (s *Scraper) Scrape(ctx context.Context, a activity.Activity) (records.Record, error) {
	start := time.Now()
	rec, err := s.scrape(ctx, a)
	s.metrics.RecordScrape(a.String(), time.Since(start), err)
	if err != nil {
		logging.Error(s.logger, "scrape failed", err, slog.String(logging.FieldActivity, a.String()))
		return records.Record{}, err
	}

	if s.writer != nil {
		if err := s.writer.WriteSummary(a, rec); err != nil {
			return records.Record{}, fmt.Errorf("write summary: %w", err)
		}
	}
	logging.Info(s.logger, "scrape complete",
		slog.String(logging.FieldActivity, a.String()),
		slog.Int(logging.FieldCount, len(rec.Standings)+len(rec.RecentMatches)+len(rec.UpcomingMatches)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return rec, nil
}

// ScrapeAll scrapes every configured activity in turn.
func (s *Scraper) ScrapeAll(ctx context.Context) error {
	var errs []error
	for _, a := range s.Activities() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.Scrape(ctx, a); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scraper) scrape(ctx context.Context, a activity.Activity) (records.Record, error) {
	base, ok := s.pages[a]
	if !ok {
		return records.Record{}, fmt.Errorf("%s: %w", a, ErrNoPage)
	}

	rec := records.New(a)
	facetErrs := make([]error, len(facets))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range facets {
		g.Go(func() error {
			doc, err := s.document(gctx, base+"/"+f.path)
			if err != nil {
				facetErrs[i] = err
				return nil
			}
			facetErrs[i] = f.parse(doc, &rec)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range facetErrs {
		if err == nil {
			continue
		}
		failed++
		logging.Warn(s.logger, "scrape facet failed",
			slog.String(logging.FieldActivity, a.String()),
			slog.String(logging.FieldStage, facets[i].name),
			slog.Any("error", err),
		)
	}
	if failed == len(facets) {
		return records.Record{}, errors.Join(facetErrs...)
	}

	if name, ok := matchTeam(s.team, rec.Standings); ok {
		rec.Name = name
	}
	rec.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	rec.Normalize()
	return rec, nil
}

func (s *Scraper) document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, res.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}
