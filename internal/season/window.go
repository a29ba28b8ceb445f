package season

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

// DefaultPreSeasonDays is the length of the pre-season window when a config entry does not set one.
const DefaultPreSeasonDays = 7

const day = 24 * time.Hour

// Window is the [Start, End] season interval of one activity. Start and End are midnight of
// their calendar dates; End covers its whole day.
type Window struct {
	Start         time.Time
	End           time.Time
	PreSeasonDays int
}

// PreWindowStart is the first instant classified as pre-season.
func (w Window) PreWindowStart() time.Time {
	days := w.PreSeasonDays
	if days <= 0 {
		days = DefaultPreSeasonDays
	}
	return w.Start.AddDate(0, 0, -days)
}

// EndBound is the last instant classified as in-season: the end of End's calendar day, since
// a season ending on a date still has its games on that date.
func (w Window) EndBound() time.Time {
	return w.End.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// Config maps every tracked activity to its season window. A Config is never mutated after
// construction; reloading builds a new one.
type Config struct {
	windows  map[activity.Activity]Window
	location *time.Location
}

// Window returns the season window for a. Activities missing from the config resolve to the
// compiled-in default.
func (c Config) Window(a activity.Activity) Window {
	if w, ok := c.windows[a]; ok {
		return w
	}
	return DefaultConfig(c.Location()).windows[a]
}

// Location is the zone season dates are interpreted in.
func (c Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

type defaultDates struct {
	start, end string
}

var defaults = map[activity.Activity]defaultDates{
	activity.Baseball:      {start: "2026-03-23", end: "2026-10-31"},
	activity.Volleyball:    {start: "2025-10-18", end: "2026-04-10"},
	activity.International: {start: "2026-09-19", end: "2026-10-04"},
}

// DefaultConfig returns the compiled-in season table.
func DefaultConfig(loc *time.Location) Config {
	if loc == nil {
		loc = time.UTC
	}
	windows := make(map[activity.Activity]Window, len(defaults))
	for a, d := range defaults {
		w, err := parseWindow(d.start, d.end, 0, loc)
		if err != nil {
			panic(fmt.Sprintf("season: invalid default for %s: %v", a, err))
		}
		windows[a] = w
	}
	return Config{windows: windows, location: loc}
}

// NewConfig builds a Config from explicit windows; activities left out use defaults.
func NewConfig(loc *time.Location, windows map[activity.Activity]Window) Config {
	cfg := DefaultConfig(loc)
	for a, w := range windows {
		if w.PreSeasonDays <= 0 {
			w.PreSeasonDays = DefaultPreSeasonDays
		}
		cfg.windows[a] = w
	}
	return cfg
}

func parseWindow(start, end string, preDays int, loc *time.Location) (Window, error) {
	s, err := timeutil.ParseDateIn(start, loc)
	if err != nil {
		return Window{}, fmt.Errorf("start: %w", err)
	}
	e, err := timeutil.ParseDateIn(end, loc)
	if err != nil {
		return Window{}, fmt.Errorf("end: %w", err)
	}
	if e.Before(s) {
		return Window{}, fmt.Errorf("end %s before start %s", end, start)
	}
	if preDays <= 0 {
		preDays = DefaultPreSeasonDays
	}
	return Window{Start: s, End: e, PreSeasonDays: preDays}, nil
}
