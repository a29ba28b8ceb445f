package testutil

import (
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// SampleMatch returns a finished match against a fixed opponent.
func SampleMatch(id, date, result string) records.Match {
	return records.Match{
		ID:       id,
		Date:     date,
		Opponent: "Opponent",
		Home:     true,
		Result:   result,
		Score:    "3-1",
	}
}

// SampleRecord builds a normalized record with one standing row and one recent match.
func SampleRecord(a activity.Activity) records.Record {
	rec := records.New(a)
	rec.Name = "Sample " + a.DisplayName()
	rec.UpdatedAt = "2026-05-01T00:00:00Z"
	rec.Standings = []records.Standing{{Rank: 1, Team: rec.Name, Wins: 10, Losses: 2}}
	rec.RecentMatches = []records.Match{SampleMatch(a.String()+"-1", "2026-04-30", "W")}
	return rec
}
