package server

import (
	"testing"

	"github.com/preston-bernstein/season-dashboard-service/internal/config"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/testutil"
)

func TestBuildSnapshotsSharesDirectory(t *testing.T) {
	dir := t.TempDir()
	components := buildSnapshots(config.Config{Snapshots: config.SnapshotConfig{Dir: dir}})
	if components.store.BasePath() != dir || components.writer.BasePath() != dir {
		t.Fatalf("expected store and writer rooted at %s", dir)
	}

	testutil.WriteRecord(t, components.writer, testutil.SampleRecord(activity.Volleyball))
	rec, err := components.store.Load(activity.Volleyball)
	if err != nil {
		t.Fatalf("expected written snapshot to load: %v", err)
	}
	if rec.Name != "Sample Volleyball" {
		t.Fatalf("unexpected record %+v", rec)
	}
}
