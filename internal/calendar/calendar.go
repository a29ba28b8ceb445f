package calendar

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

const (
	productID = "-//season-dashboard//EN"
	feedName  = "Season Dashboard"
	uidDomain = "season-dashboard"
)

// Build renders season windows and the upcoming fixtures of recs as an iCalendar feed.
// Entries without a parseable date are left out.
func Build(cfg season.Config, recs []records.Record, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(feedName)
	cal.SetXWRTimezone(cfg.Location().String())

	for _, a := range activity.All() {
		w := cfg.Window(a)
		ev := cal.AddEvent(uid(a, "season", timeutil.FormatDate(w.Start)))
		ev.SetDtStampTime(now)
		ev.SetSummary(fmt.Sprintf("%s season", a.DisplayName()))
		ev.SetAllDayStartAt(w.Start)
		ev.SetAllDayEndAt(w.End.AddDate(0, 0, 1))
	}

	for _, rec := range recs {
		loc := cfg.Location()
		for _, m := range upcoming(rec) {
			day, err := timeutil.ParseDateIn(dateOnly(m.Date), loc)
			if err != nil {
				continue
			}
			ev := cal.AddEvent(uid(rec.Activity, "match", m.Key()))
			ev.SetDtStampTime(now)
			ev.SetSummary(matchSummary(rec.Name, m))
			if m.Venue != "" {
				ev.SetLocation(m.Venue)
			}
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
		for _, e := range upcomingEvents(rec) {
			day, err := timeutil.ParseDateIn(dateOnly(e.Date), loc)
			if err != nil {
				continue
			}
			ev := cal.AddEvent(uid(rec.Activity, "event", e.Key()))
			ev.SetDtStampTime(now)
			ev.SetSummary(e.Name)
			if e.Sport != "" {
				ev.SetDescription(e.Sport)
			}
			if e.Venue != "" {
				ev.SetLocation(e.Venue)
			}
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		}
	}
	return cal
}

// Render serializes the feed.
func Render(cfg season.Config, recs []records.Record, now time.Time) string {
	return Build(cfg, recs, now).Serialize()
}

// upcoming merges the fixture list with unplayed volleyball matches, one entry per match key.
func upcoming(rec records.Record) []records.Match {
	out := make([]records.Match, 0, len(rec.UpcomingMatches)+len(rec.Matches))
	seen := make(map[string]bool)
	for _, m := range append(append([]records.Match{}, rec.UpcomingMatches...), rec.Matches...) {
		key := m.Key()
		if m.Result != "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func upcomingEvents(rec records.Record) []records.Event {
	out := make([]records.Event, 0, len(rec.Events))
	seen := make(map[string]bool)
	for _, e := range rec.Events {
		key := e.Key()
		if e.Result != "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

func matchSummary(team string, m records.Match) string {
	if m.Home {
		return fmt.Sprintf("%s vs %s", team, m.Opponent)
	}
	return fmt.Sprintf("%s @ %s", team, m.Opponent)
}

func dateOnly(value string) string {
	if len(value) > len(timeutil.DateLayout) {
		return value[:len(timeutil.DateLayout)]
	}
	return value
}

func uid(a activity.Activity, kind, id string) string {
	return fmt.Sprintf("%s-%s-%s@%s", a, kind, id, uidDomain)
}
