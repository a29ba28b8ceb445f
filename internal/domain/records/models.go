package records

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/season"
)

// Source names the path that produced a record.
type Source string

const (
	SourceLive     Source = "live"
	SourceSnapshot Source = "snapshot"
	SourceDefault  Source = "default"
)

// Standing is one row of a league table.
type Standing struct {
	Rank        int     `json:"rank"`
	Team        string  `json:"team"`
	Played      int     `json:"played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Draws       int     `json:"draws"`
	WinRate     float64 `json:"winRate"`
	GamesBehind string  `json:"gamesBehind,omitempty"`
	Points      int     `json:"points,omitempty"`
}

// SetScore is the score of a single volleyball set.
type SetScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is a played or scheduled fixture for the tracked team.
type Match struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Opponent string     `json:"opponent"`
	Venue    string     `json:"venue,omitempty"`
	Home     bool       `json:"home"`
	Result   string     `json:"result,omitempty"`
	Score    string     `json:"score,omitempty"`
	Sets     []SetScore `json:"sets,omitempty"`
}

// PlayerStat carries a player's headline numbers keyed by stat column (ERA, AVG, HR, ...).
type PlayerStat struct {
	Name     string            `json:"name"`
	Number   string            `json:"number,omitempty"`
	Position string            `json:"position,omitempty"`
	Stats    map[string]string `json:"stats,omitempty"`
}

// MedalCount is one nation's row on a medal table.
type MedalCount struct {
	Rank    int    `json:"rank"`
	Country string `json:"country"`
	Gold    int    `json:"gold"`
	Silver  int    `json:"silver"`
	Bronze  int    `json:"bronze"`
	Total   int    `json:"total"`
}

// Event is a scheduled or finished international competition entry.
type Event struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Sport  string `json:"sport"`
	Date   string `json:"date"`
	Venue  string `json:"venue,omitempty"`
	Result string `json:"result,omitempty"`
}

// Record is the normalized per-activity payload consumed by the dashboard.
// Activity tags which of the activity-specific collections are meaningful;
// every collection is non-nil once decoded or normalized.
type Record struct {
	Activity        activity.Activity `json:"activity"`
	Name            string            `json:"name"`
	SeasonStatus    season.Status     `json:"seasonStatus"`
	SeasonStartDate string            `json:"seasonStartDate,omitempty"`
	UpdatedAt       string            `json:"updatedAt,omitempty"`
	Standings       []Standing        `json:"standings"`
	RecentMatches   []Match           `json:"recentMatches"`
	UpcomingMatches []Match           `json:"upcomingMatches"`

	// baseball
	Pitchers []PlayerStat `json:"pitchers"`
	Batters  []PlayerStat `json:"batters"`

	// volleyball
	Matches []Match `json:"matches"`

	// international
	Medals []MedalCount `json:"medals"`
	Events []Event      `json:"events"`
}

// UnmarshalJSON decodes a record and resolves every missing collection to an empty one.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = Record(decoded)
	r.Normalize()
	return nil
}

// Normalize replaces nil collections with empty ones.
func (r *Record) Normalize() {
	if r.Standings == nil {
		r.Standings = []Standing{}
	}
	if r.RecentMatches == nil {
		r.RecentMatches = []Match{}
	}
	if r.UpcomingMatches == nil {
		r.UpcomingMatches = []Match{}
	}
	if r.Pitchers == nil {
		r.Pitchers = []PlayerStat{}
	}
	if r.Batters == nil {
		r.Batters = []PlayerStat{}
	}
	if r.Matches == nil {
		r.Matches = []Match{}
	}
	if r.Medals == nil {
		r.Medals = []MedalCount{}
	}
	if r.Events == nil {
		r.Events = []Event{}
	}
}

// New returns an empty, normalized record for the activity.
func New(a activity.Activity) Record {
	r := Record{Activity: a, Name: a.DisplayName()}
	r.Normalize()
	return r
}

// LatestResult returns the most recent finished match, if any.
func (r Record) LatestResult() (Match, bool) {
	var finished []Match
	for _, m := range r.RecentMatches {
		if m.Result != "" {
			finished = append(finished, m)
		}
	}
	if len(finished) == 0 {
		return Match{}, false
	}
	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].Date > finished[j].Date
	})
	return finished[0], true
}

// Key identifies the match: its ID, or the date plus an opponent slug when the source gave none.
func (m Match) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.Date + "-" + slug(m.Opponent)
}

// Key identifies the event: its ID, or the date plus a name slug when the source gave none.
func (e Event) Key() string {
	if e.ID != "" {
		return e.ID
	}
	return e.Date + "-" + slug(e.Name)
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
