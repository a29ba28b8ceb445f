package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/titanous/json5"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
)

const defaultFetchTimeout = 5 * time.Second

// rawWindow is the on-disk shape of one activity entry.
type rawWindow struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	PreSeasonDays int    `json:"preSeasonDays"`
}

// Store loads the season table from an external resource (file path or http(s) URL).
// The zero value is usable and serves the compiled-in defaults.
type Store struct {
	logger   *slog.Logger
	location *time.Location
	client   *resty.Client
	current  atomic.Pointer[Config]
}

// NewStore constructs a Store interpreting dates in loc.
func NewStore(logger *slog.Logger, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{
		logger:   logger,
		location: loc,
		client:   resty.New().SetTimeout(defaultFetchTimeout),
	}
}

// Load reads and parses the resource. Any failure is logged and the default table is used
// instead, so the returned Config is always fully populated. The loaded Config replaces the
// previous one wholesale.
func (s *Store) Load(ctx context.Context, resource string) Config {
	cfg, err := s.read(ctx, resource)
	if err != nil {
		logging.Warn(s.logger, "season config unavailable, using defaults",
			slog.String("resource", resource),
			slog.Any("error", err),
		)
		cfg = DefaultConfig(s.loc())
	} else {
		logging.Info(s.logger, "season config loaded", slog.String("resource", resource))
	}
	s.current.Store(&cfg)
	return cfg
}

// Get returns the window for a, falling back to the default table when Load was never called.
func (s *Store) Get(a activity.Activity) Window {
	return s.Config().Window(a)
}

// Config returns the active table.
func (s *Store) Config() Config {
	if s == nil {
		return DefaultConfig(nil)
	}
	if cfg := s.current.Load(); cfg != nil {
		return *cfg
	}
	return DefaultConfig(s.loc())
}

func (s *Store) loc() *time.Location {
	if s == nil || s.location == nil {
		return time.UTC
	}
	return s.location
}

func (s *Store) read(ctx context.Context, resource string) (Config, error) {
	if s == nil {
		return Config{}, errors.New("season store not configured")
	}
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return Config{}, errors.New("season config resource not set")
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://") {
		data, err = s.fetch(ctx, resource)
	} else {
		data, err = os.ReadFile(resource)
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(data, s.loc())
}

func (s *Store) fetch(ctx context.Context, url string) ([]byte, error) {
	client := s.client
	if client == nil {
		client = resty.New().SetTimeout(defaultFetchTimeout)
	}
	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("season config: unexpected status %d", res.StatusCode())
	}
	return res.Body(), nil
}

// Parse decodes a JSON5 season document. Every tracked activity must be present with valid dates.
func Parse(data []byte, loc *time.Location) (Config, error) {
	var raw map[string]rawWindow
	if err := json5.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("season config: %w", err)
	}

	windows := make(map[activity.Activity]Window, len(raw))
	for _, a := range activity.All() {
		entry, ok := raw[string(a)]
		if !ok {
			return Config{}, fmt.Errorf("season config: missing %s", a)
		}
		w, err := parseWindow(entry.Start, entry.End, entry.PreSeasonDays, loc)
		if err != nil {
			return Config{}, fmt.Errorf("season config: %s: %w", a, err)
		}
		windows[a] = w
	}
	if loc == nil {
		loc = time.UTC
	}
	return Config{windows: windows, location: loc}, nil
}
