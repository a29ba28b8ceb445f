package season

// Status is the lifecycle state of an activity relative to its season window.
// It is always derived from a Window and a timestamp, never persisted.
type Status string

const (
	OffSeason Status = "off-season"
	PreSeason Status = "pre-season"
	InSeason  Status = "in-season"
)

// Active reports whether the status should foreground the activity (pre or in season).
func (s Status) Active() bool {
	return s == PreSeason || s == InSeason
}

func (s Status) String() string {
	return string(s)
}
