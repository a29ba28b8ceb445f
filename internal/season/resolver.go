package season

import (
	"time"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/timeutil"
)

// Resolver classifies timestamps against a season Config.
type Resolver struct {
	cfg Config
}

// NewResolver binds a resolver to cfg.
func NewResolver(cfg Config) Resolver {
	return Resolver{cfg: cfg}
}

// Config exposes the table the resolver was built with.
func (r Resolver) Config() Config {
	return r.cfg
}

// Status classifies now against the activity's window. The three branches partition the timeline.
func (r Resolver) Status(a activity.Activity, now time.Time) Status {
	return StatusFor(r.cfg.Window(a), now)
}

// StatusFor classifies now against w.
func StatusFor(w Window, now time.Time) Status {
	switch {
	case now.Before(w.PreWindowStart()) || now.After(w.EndBound()):
		return OffSeason
	case now.Before(w.Start):
		return PreSeason
	default:
		return InSeason
	}
}

// DaysUntilStart returns the whole-day countdown to the season start, rounded up. The bool is
// false once the season has started.
func (r Resolver) DaysUntilStart(a activity.Activity, now time.Time) (int, bool) {
	remaining := r.cfg.Window(a).Start.Sub(now)
	if remaining <= 0 {
		return 0, false
	}
	return int((remaining + day - 1) / day), true
}

// PickPrimary selects the activity whose card is foregrounded: the international event when
// active, else the first active league activity, else activity.Default.
func (r Resolver) PickPrimary(now time.Time) activity.Activity {
	if r.Status(activity.International, now).Active() {
		return activity.International
	}
	for _, a := range activity.Ordered() {
		if r.Status(a, now).Active() {
			return a
		}
	}
	return activity.Default
}

// ActivityStatus is one row of an Overview.
type ActivityStatus struct {
	Activity       activity.Activity `json:"activity"`
	Status         Status            `json:"status"`
	Start          string            `json:"start"`
	End            string            `json:"end"`
	DaysUntilStart *int              `json:"daysUntilStart,omitempty"`
}

// Overview is the season state of every activity at one instant.
type Overview struct {
	Now        time.Time         `json:"now"`
	Primary    activity.Activity `json:"primary"`
	Activities []ActivityStatus  `json:"activities"`
}

// Describe returns the status row for a single activity.
func (r Resolver) Describe(a activity.Activity, now time.Time) ActivityStatus {
	w := r.cfg.Window(a)
	row := ActivityStatus{
		Activity: a,
		Status:   StatusFor(w, now),
		Start:    timeutil.FormatDate(w.Start),
		End:      timeutil.FormatDate(w.End),
	}
	if days, ok := r.DaysUntilStart(a, now); ok {
		row.DaysUntilStart = &days
	}
	return row
}

// Overview reports every activity plus the primary selection.
func (r Resolver) Overview(now time.Time) Overview {
	out := Overview{
		Now:        now,
		Primary:    r.PickPrimary(now),
		Activities: make([]ActivityStatus, 0, len(activity.All())),
	}
	for _, a := range activity.All() {
		out.Activities = append(out.Activities, r.Describe(a, now))
	}
	return out
}
