package snapshots

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// Writer persists activity snapshots and the manifest. Writes are atomic per file.
type Writer struct {
	basePath string
	mu       sync.Mutex
	now      func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{
		basePath: basePath,
		now:      time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// Write persists rec as its summary and detail documents.
func (w *Writer) Write(a activity.Activity, rec records.Record) error {
	if err := w.WriteSummary(a, rec); err != nil {
		return err
	}
	return w.WriteDetail(a, rec)
}

// WriteSummary persists the summary keys of rec only. The scraper owns this document.
func (w *Writer) WriteSummary(a activity.Activity, rec records.Record) error {
	return w.writeSnapshot(a, kindSummary, rec)
}

// WriteDetail persists the detail keys of rec only.
func (w *Writer) WriteDetail(a activity.Activity, rec records.Record) error {
	return w.writeSnapshot(a, kindDetail, rec)
}

// Manifest returns the current manifest.
func (w *Writer) Manifest() (Manifest, error) {
	if w == nil {
		return defaultManifest(), fmt.Errorf("snapshot writer not configured")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return ReadManifest(w.basePath)
}

func (w *Writer) writeSnapshot(a activity.Activity, kind snapshotKind, rec records.Record) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if !a.Valid() {
		return activity.ErrUnknownActivity
	}
	rec.Activity = a
	rec.Normalize()

	target := snapshotPath(w.basePath, a, kind)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := project(rec, kind)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(a, kind)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}
	return w.updateManifest(a, kind)
}

// updateManifest must be called with w.mu held.
func (w *Writer) updateManifest(a activity.Activity, kind snapshotKind) error {
	m, _ := readManifest(manifestPath(w.basePath))
	now := w.now().UTC()

	meta := m.Activities[a.String()]
	switch kind {
	case kindSummary:
		meta.SummaryRefreshed = now
	case kindDetail:
		meta.DetailRefreshed = now
	}
	meta.LastRefreshed = now
	m.Activities[a.String()] = meta

	return writeManifest(w.basePath, m)
}
