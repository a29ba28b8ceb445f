package calendar

import (
	"sort"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
)

func summaries(t *testing.T, body string) []string {
	t.Helper()
	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	var out []string
	for _, ev := range cal.Events() {
		out = append(out, ev.GetProperty(ics.ComponentPropertySummary).Value)
	}
	sort.Strings(out)
	return out
}

func TestRenderIncludesSeasonsAndFixtures(t *testing.T) {
	baseball := records.New(activity.Baseball)
	baseball.Name = "Hanwha Eagles"
	baseball.UpcomingMatches = []records.Match{
		{ID: "g1", Date: "2026-05-02", Opponent: "LG Twins", Home: true, Venue: "Daejeon"},
		{ID: "g2", Date: "sometime", Opponent: "KT Wiz"},
	}
	baseball.RecentMatches = []records.Match{{ID: "g0", Date: "2026-05-01", Opponent: "KIA Tigers", Result: "W"}}

	volleyball := records.New(activity.Volleyball)
	volleyball.Name = "Bluefangs"
	volleyball.Matches = []records.Match{
		{ID: "v1", Date: "2026-11-03", Opponent: "Korean Air Jumbos"},
		{ID: "v0", Date: "2026-10-30", Opponent: "OK Savings", Result: "L"},
	}

	intl := records.New(activity.International)
	intl.Events = []records.Event{
		{ID: "e1", Name: "Baseball final", Sport: "baseball", Date: "2026-10-03"},
		{ID: "e0", Name: "Opening Ceremony", Date: "2026-09-19", Result: "done"},
	}

	body := Render(season.DefaultConfig(time.UTC), []records.Record{baseball, volleyball, intl}, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))

	want := []string{
		"Baseball final",
		"Baseball season",
		"Bluefangs @ Korean Air Jumbos",
		"Hanwha Eagles vs LG Twins",
		"International Events season",
		"Volleyball season",
	}
	if diff := cmp.Diff(want, summaries(t, body)); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	if !strings.Contains(body, "DTSTART;VALUE=DATE:20260502") {
		t.Fatalf("expected all-day fixture start, got:\n%s", body)
	}
}

func TestRenderWithoutRecordsStillListsSeasons(t *testing.T) {
	got := summaries(t, Render(season.DefaultConfig(nil), nil, time.Now()))
	if len(got) != len(activity.All()) {
		t.Fatalf("expected one season event per activity, got %v", got)
	}
}

func TestRenderKeepsFixturesWithoutIDs(t *testing.T) {
	volleyball := records.New(activity.Volleyball)
	volleyball.Name = "Bluefangs"
	volleyball.UpcomingMatches = []records.Match{
		{Date: "2026-11-03", Opponent: "Korean Air Jumbos"},
		{Date: "2026-11-07", Opponent: "OK Savings"},
		{Date: "2026-11-11", Opponent: "Woori Card"},
	}
	// the same fixture also appears in the full match list
	volleyball.Matches = []records.Match{{Date: "2026-11-03", Opponent: "Korean Air Jumbos"}}

	intl := records.New(activity.International)
	intl.Events = []records.Event{
		{Name: "Volleyball semi-final", Date: "2026-10-01"},
		{Name: "Baseball final", Date: "2026-10-03"},
	}

	body := Render(season.DefaultConfig(time.UTC), []records.Record{volleyball, intl}, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}

	uids := map[string]bool{}
	var fixtures, events int
	for _, ev := range cal.Events() {
		id := ev.Id()
		if uids[id] {
			t.Fatalf("duplicate UID %q", id)
		}
		uids[id] = true
		switch {
		case strings.HasPrefix(id, "volleyball-match-"):
			fixtures++
		case strings.HasPrefix(id, "international-event-"):
			events++
		}
	}
	if fixtures != 3 || events != 2 {
		t.Fatalf("expected 3 fixtures and 2 events, got %d and %d", fixtures, events)
	}
	if !uids["volleyball-match-2026-11-07-ok-savings@season-dashboard"] {
		t.Fatalf("expected derived UID, got %v", uids)
	}
}
