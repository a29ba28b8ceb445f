package activities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers"
	"github.com/preston-bernstein/season-dashboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
	"github.com/preston-bernstein/season-dashboard-service/internal/snapshots"
	"github.com/preston-bernstein/season-dashboard-service/internal/teststubs"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testResolver() season.Resolver {
	return season.NewResolver(season.NewConfig(time.UTC, map[activity.Activity]season.Window{
		activity.Baseball: {Start: date(2026, 3, 23), End: date(2026, 10, 31)},
	}))
}

func newTestService(live providers.RecordProvider, store snapshots.Store, rec *metrics.Recorder) *Service {
	svc := NewService(Options{
		Resolver:  testResolver(),
		Live:      live,
		Snapshots: store,
		Metrics:   rec,
	})
	svc.now = func() time.Time { return date(2026, 3, 20) }
	return svc
}

func liveRecord() records.Record {
	rec := records.New(activity.Baseball)
	rec.Name = "Live Eagles"
	rec.SeasonStatus = season.OffSeason
	return rec
}

func TestFetchPrefersLive(t *testing.T) {
	live := &teststubs.StubProvider{Records: map[activity.Activity]records.Record{activity.Baseball: liveRecord()}}
	store := &teststubs.StubSnapshotStore{}
	rec := metrics.NewRecorder()
	svc := newTestService(live, store, rec)

	res, err := svc.Fetch(context.Background(), activity.Baseball, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != records.SourceLive || res.Record.Name != "Live Eagles" {
		t.Fatalf("expected live record, got %+v", res)
	}
	if res.Record.SeasonStatus != season.PreSeason {
		t.Fatalf("expected resolver status to override source status, got %s", res.Record.SeasonStatus)
	}
	if res.DaysUntilStart == nil || *res.DaysUntilStart != 3 {
		t.Fatalf("expected countdown of 3, got %v", res.DaysUntilStart)
	}
	if rec.Resolutions("baseball", "live") != 1 {
		t.Fatalf("expected live resolution recorded")
	}
}

func TestFetchLiveDisabledSkipsLive(t *testing.T) {
	live := &teststubs.StubProvider{Records: map[activity.Activity]records.Record{activity.Baseball: liveRecord()}}
	snap := records.New(activity.Baseball)
	snap.Name = "Snapshot Eagles"
	store := &teststubs.StubSnapshotStore{Records: map[activity.Activity]records.Record{activity.Baseball: snap}}
	svc := newTestService(live, store, nil)

	res, err := svc.Fetch(context.Background(), activity.Baseball, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != records.SourceSnapshot || live.Calls.Load() != 0 {
		t.Fatalf("expected snapshot without live call, got %s (calls=%d)", res.Source, live.Calls.Load())
	}
}

func TestFetchLiveFailureFallsBackToSnapshot(t *testing.T) {
	live := &teststubs.StubProvider{Err: errors.New("upstream down")}
	snap := records.New(activity.Baseball)
	snap.Name = "Snapshot Eagles"
	store := &teststubs.StubSnapshotStore{Records: map[activity.Activity]records.Record{activity.Baseball: snap}}
	svc := newTestService(live, store, nil)

	res, err := svc.Fetch(context.Background(), activity.Baseball, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != records.SourceSnapshot || res.Record.Name != "Snapshot Eagles" {
		t.Fatalf("expected snapshot fallback, got %+v", res)
	}
}

func TestFetchLiveTimeoutIsBounded(t *testing.T) {
	slow := providers.RecordProviderFunc(func(ctx context.Context, a activity.Activity) (records.Record, error) {
		<-ctx.Done()
		return records.Record{}, ctx.Err()
	})
	svc := NewService(Options{Resolver: testResolver(), Live: slow, LiveTimeout: 10 * time.Millisecond})

	start := time.Now()
	res, err := svc.Fetch(context.Background(), activity.Volleyball, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("expected live call to be bounded by its timeout")
	}
	if res.Source != records.SourceDefault {
		t.Fatalf("expected default after timeout with no snapshots, got %s", res.Source)
	}
}

func TestFetchSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := snapshots.NewWriter(dir)

	summary := records.Record{
		Name:          "Eagles",
		Standings:     []records.Standing{{Rank: 2, Team: "Eagles", Wins: 40, Losses: 30}},
		RecentMatches: []records.Match{{ID: "m1", Date: "2026-03-19", Opponent: "Twins", Result: "W", Score: "5-3"}},
	}
	detail := records.Record{
		Pitchers: []records.PlayerStat{{Name: "Ryu", Stats: map[string]string{"ERA": "2.10"}}},
	}
	if err := w.WriteSummary(activity.Baseball, summary); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if err := w.WriteDetail(activity.Baseball, detail); err != nil {
		t.Fatalf("write detail: %v", err)
	}

	svc := newTestService(nil, snapshots.NewFSStore(dir), nil)
	res, err := svc.Fetch(context.Background(), activity.Baseball, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := records.New(activity.Baseball)
	want.Name = summary.Name
	want.Standings = summary.Standings
	want.RecentMatches = summary.RecentMatches
	want.Pitchers = detail.Pitchers
	want.SeasonStatus = season.PreSeason

	if res.Source != records.SourceSnapshot {
		t.Fatalf("expected snapshot source, got %s", res.Source)
	}
	if diff := cmp.Diff(want, res.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchTerminalFallback(t *testing.T) {
	store := &teststubs.StubSnapshotStore{LoadErr: snapshots.ErrSnapshotNotFound}
	live := &teststubs.StubProvider{Err: errors.New("down")}
	rec := metrics.NewRecorder()
	svc := newTestService(live, store, rec)

	for _, a := range activity.All() {
		res, err := svc.Fetch(context.Background(), a, true)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", a, err)
		}
		want := fixture.Record(a)
		if res.Source != records.SourceDefault || res.Record.Name != want.Name {
			t.Fatalf("expected default record for %s, got %+v", a, res)
		}
		if res.Record.SeasonStatus != svc.Resolver().Status(a, date(2026, 3, 20)) {
			t.Fatalf("expected computed status for %s, got %s", a, res.Record.SeasonStatus)
		}
		if res.Record.SeasonStartDate == "" {
			t.Fatalf("expected season start date on default record for %s", a)
		}
		if rec.Resolutions(a.String(), "default") != 1 {
			t.Fatalf("expected default resolution recorded for %s", a)
		}
	}
}

func TestFetchUnknownActivity(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	if _, err := svc.Fetch(context.Background(), activity.Activity("curling"), false); !errors.Is(err, activity.ErrUnknownActivity) {
		t.Fatalf("expected ErrUnknownActivity, got %v", err)
	}
}

func TestFetchAllReturnsEveryActivityInOrder(t *testing.T) {
	live := &teststubs.StubProvider{Records: map[activity.Activity]records.Record{activity.Baseball: liveRecord()}}
	svc := newTestService(live, nil, nil)

	results := svc.FetchAll(context.Background(), true)
	if len(results) != len(activity.All()) {
		t.Fatalf("expected %d results, got %d", len(activity.All()), len(results))
	}
	for i, a := range activity.All() {
		if results[i].Record.Activity != a {
			t.Fatalf("expected %s at %d, got %s", a, i, results[i].Record.Activity)
		}
	}
	if results[0].Source != records.SourceLive || results[1].Source != records.SourceDefault {
		t.Fatalf("expected independent sources, got %s/%s", results[0].Source, results[1].Source)
	}
	if !svc.LiveEnabled() {
		t.Fatal("expected live enabled")
	}
}
