package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// StubProvider is a test double for providers.RecordProvider.
type StubProvider struct {
	Records map[activity.Activity]records.Record
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
}

// FetchRecord returns the configured record and error while tracking calls.
func (s *StubProvider) FetchRecord(ctx context.Context, a activity.Activity) (records.Record, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.Err != nil {
		return records.Record{}, s.Err
	}
	rec, ok := s.Records[a]
	if !ok {
		return records.Record{}, errors.New("no stub record")
	}
	return rec, nil
}

// StubSnapshotStore is a test double for the orchestrator's snapshot reader.
type StubSnapshotStore struct {
	Records map[activity.Activity]records.Record
	LoadErr error
}

// Load returns the stored record for a if present.
func (s *StubSnapshotStore) Load(a activity.Activity) (records.Record, error) {
	if s.LoadErr != nil {
		return records.Record{}, s.LoadErr
	}
	rec, ok := s.Records[a]
	if !ok {
		return records.Record{}, errors.New("snapshot not found")
	}
	return rec, nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[activity.Activity]records.Record
	Err     error
}

// Write stores the record in memory unless Err is set.
func (s *StubSnapshotWriter) Write(a activity.Activity, rec records.Record) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Written == nil {
		s.Written = make(map[activity.Activity]records.Record)
	}
	s.Written[a] = rec
	return nil
}

// Get returns a written record.
func (s *StubSnapshotWriter) Get(a activity.Activity) (records.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.Written[a]
	return rec, ok
}
