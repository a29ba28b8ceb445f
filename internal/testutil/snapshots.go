package testutil

import (
	"testing"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/snapshots"
)

// WriteRecord writes rec's summary and detail documents.
func WriteRecord(t *testing.T, w *snapshots.Writer, rec records.Record) {
	t.Helper()
	if err := w.Write(rec.Activity, rec); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", rec.Activity, err)
	}
}
