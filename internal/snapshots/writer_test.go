package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
)

func TestWriterWritesSnapshotsAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	fixed := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	rec := records.New(activity.Baseball)
	rec.Name = "Eagles"
	rec.SeasonStatus = season.InSeason
	rec.Standings = []records.Standing{{Rank: 1, Team: "Eagles"}}
	rec.Batters = []records.PlayerStat{{Name: "Noh"}}

	if err := w.Write(activity.Baseball, rec); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	requireSnapshotExists(t, w, activity.Baseball, kindSummary)
	requireSnapshotExists(t, w, activity.Baseball, kindDetail)

	m, err := w.Manifest()
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	meta := m.Activities["baseball"]
	if !meta.LastRefreshed.Equal(fixed) || !meta.SummaryRefreshed.Equal(fixed) || !meta.DetailRefreshed.Equal(fixed) {
		t.Fatalf("unexpected manifest entry %+v", meta)
	}

	got, err := NewFSStore(dir).Load(activity.Baseball)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	rec.SeasonStatus = ""
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("written snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	rec := records.New(activity.Volleyball)

	if err := w.WriteSummary(activity.Volleyball, rec); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	path := SummaryPath(dir, activity.Volleyball)
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if err := w.WriteSummary(activity.Volleyball, rec); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatalf("expected identical content not to be rewritten")
	}
}

func TestWriterRejectsInvalidInput(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteDetail(activity.Baseball, records.Record{}); err == nil {
		t.Fatal("expected error for nil writer")
	}
	if err := NewWriter(t.TempDir()).WriteSummary(activity.Activity("curling"), records.Record{}); err == nil {
		t.Fatal("expected error for unknown activity")
	}
}
