package snapshots

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// ErrSnapshotNotFound is returned when neither snapshot document exists for an activity.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store defines how merged activity snapshots are loaded.
type Store interface {
	Load(a activity.Activity) (records.Record, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// Load reads {basePath}/{activity}/summary.json and detail.json and merges them, every key
// present in the detail document winning. One readable document is enough; the error is
// returned only when both are missing or unparsable.
func (s *FSStore) Load(a activity.Activity) (records.Record, error) {
	summary, sumErr := s.document(a, kindSummary)
	detail, detErr := s.document(a, kindDetail)

	switch {
	case sumErr != nil && detErr != nil:
		if errors.Is(sumErr, ErrSnapshotNotFound) && errors.Is(detErr, ErrSnapshotNotFound) {
			return records.Record{}, ErrSnapshotNotFound
		}
		return records.Record{}, errors.Join(sumErr, detErr)
	case sumErr != nil:
		summary = document{}
	case detErr != nil:
		detail = document{}
	}

	merged, err := Merge(summary, detail)
	if err != nil {
		return records.Record{}, fmt.Errorf("%s: %w", a, err)
	}
	return tag(a, merged), nil
}

// LoadSummary reads only the summary document.
func (s *FSStore) LoadSummary(a activity.Activity) (records.Record, error) {
	return s.load(a, kindSummary)
}

// LoadDetail reads only the detail document.
func (s *FSStore) LoadDetail(a activity.Activity) (records.Record, error) {
	return s.load(a, kindDetail)
}

// BasePath exposes the store root.
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FSStore) load(a activity.Activity, kind snapshotKind) (records.Record, error) {
	doc, err := s.document(a, kind)
	if err != nil {
		return records.Record{}, err
	}
	rec, err := doc.record()
	if err != nil {
		return records.Record{}, fmt.Errorf("%s %s: %w", a, kind, err)
	}
	return tag(a, rec), nil
}

func (s *FSStore) document(a activity.Activity, kind snapshotKind) (document, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	if !a.Valid() {
		return nil, activity.ErrUnknownActivity
	}
	data, err := os.ReadFile(snapshotPath(s.basePath, a, kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %s: %w", a, kind, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("%s %s: %w", a, kind, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", a, kind, err)
	}
	return doc, nil
}

func tag(a activity.Activity, rec records.Record) records.Record {
	rec.Activity = a
	rec.Normalize()
	return rec
}
