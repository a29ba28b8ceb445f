package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
	"github.com/preston-bernstein/season-dashboard-service/internal/logging"
	"github.com/preston-bernstein/season-dashboard-service/internal/metrics"
)

// RecordSource yields the current record for an activity.
type RecordSource func(ctx context.Context, a activity.Activity) (records.Record, error)

// Notifier announces a new latest match result once per result.
type Notifier struct {
	source  RecordSource
	markers MarkerStore
	sinks   []Sink
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Notifier. With no sinks Check only logs.
func New(source RecordSource, markers MarkerStore, sinks []Sink, logger *slog.Logger, recorder *metrics.Recorder) *Notifier {
	return &Notifier{
		source:  source,
		markers: markers,
		sinks:   sinks,
		logger:  logger,
		metrics: recorder,
	}
}

// Check looks at every activity and announces results that differ from the stored marker.
// It returns how many announcements went out.
func (n *Notifier) Check(ctx context.Context) (int, error) {
	var (
		sent int
		errs []error
	)
	for _, a := range activity.All() {
		ok, err := n.CheckActivity(ctx, a)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
		}
		if ok {
			sent++
		}
	}
	return sent, errors.Join(errs...)
}

// CheckActivity announces a's latest result if it was not announced before. The marker only
// moves after at least one sink delivered the message.
func (n *Notifier) CheckActivity(ctx context.Context, a activity.Activity) (bool, error) {
	rec, err := n.source(ctx, a)
	if err != nil {
		return false, err
	}
	match, ok := rec.LatestResult()
	if !ok {
		return false, nil
	}

	key := MarkerKey(match)
	last, found, err := n.markers.Last(ctx, a)
	if err != nil {
		return false, fmt.Errorf("read marker: %w", err)
	}
	if found && last == key {
		return false, nil
	}

	msg := FormatResult(rec, match)
	delivered := 0
	var errs []error
	for _, sink := range n.sinks {
		sendErr := sink.Send(ctx, msg)
		n.metrics.RecordNotification(sink.Name(), sendErr)
		if sendErr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), sendErr))
			logging.Error(n.logger, "notification failed", sendErr,
				slog.String(logging.FieldActivity, a.String()),
				slog.String("channel", sink.Name()),
			)
			continue
		}
		delivered++
	}
	if len(n.sinks) > 0 && delivered == 0 {
		return false, errors.Join(errs...)
	}

	if err := n.markers.Save(ctx, a, key); err != nil {
		return delivered > 0, fmt.Errorf("save marker: %w", err)
	}
	logging.Info(n.logger, "result announced",
		slog.String(logging.FieldActivity, a.String()),
		slog.String("marker", key),
		slog.Int(logging.FieldCount, delivered),
	)
	return delivered > 0, errors.Join(errs...)
}

// MarkerKey identifies a finished match; a changed score or result yields a new key.
func MarkerKey(m records.Match) string {
	return strings.Join([]string{m.Key(), m.Result, m.Score}, "|")
}

// FormatResult renders the announcement text.
func FormatResult(rec records.Record, m records.Match) Message {
	side := "vs"
	if !m.Home {
		side = "@"
	}
	text := fmt.Sprintf("%s %s %s %s", rec.Name, side, m.Opponent, m.Date)
	if m.Result != "" {
		text += " " + m.Result
	}
	if m.Score != "" {
		text += " " + m.Score
	}
	return Message{
		Subject: fmt.Sprintf("%s result", rec.Name),
		Text:    text,
	}
}
