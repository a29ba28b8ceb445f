package activities

import (
	"context"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// Loader fetches one candidate value. A nil Loader is skipped.
type Loader[T any] func(ctx context.Context) (T, error)

// StageError records why a stage was skipped over.
type StageError struct {
	Source records.Source
	Err    error
}

// Outcome is the value produced by FetchWithFallback and the stage that produced it.
type Outcome[T any] struct {
	Value    T
	Source   records.Source
	Failures []StageError
}

// FetchWithFallback tries live, then snapshot, then fallback. Failures of the first two stages are
// collected, never returned; fallback must always succeed, so an Outcome is always produced.
func FetchWithFallback[T any](ctx context.Context, live, snapshot Loader[T], fallback func() T) Outcome[T] {
	var out Outcome[T]
	stages := []struct {
		source records.Source
		load   Loader[T]
	}{
		{records.SourceLive, live},
		{records.SourceSnapshot, snapshot},
	}
	for _, stage := range stages {
		if stage.load == nil {
			continue
		}
		value, err := stage.load(ctx)
		if err == nil {
			out.Value = value
			out.Source = stage.source
			return out
		}
		out.Failures = append(out.Failures, StageError{Source: stage.source, Err: err})
	}
	out.Value = fallback()
	out.Source = records.SourceDefault
	return out
}
