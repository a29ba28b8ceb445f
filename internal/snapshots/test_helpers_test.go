package snapshots

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
)

func writeRaw(t *testing.T, base string, a activity.Activity, kind snapshotKind, body string) {
	t.Helper()
	path := snapshotPath(base, a, kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s snapshot: %v", kind, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, a activity.Activity, kind snapshotKind) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil when asserting snapshot for %s", a)
	}
	if _, err := os.Stat(snapshotPath(w.BasePath(), a, kind)); err != nil {
		t.Fatalf("expected %s snapshot for %s to be written: %v", kind, a, err)
	}
}
