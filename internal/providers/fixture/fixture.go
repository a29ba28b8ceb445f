package fixture

import (
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

// Record builds the hardcoded placeholder record served when neither a live fetch nor a
// snapshot is available. Each call returns a fresh record; callers may mutate it freely.
func Record(a activity.Activity) records.Record {
	rec := records.New(a)
	switch a {
	case activity.Baseball:
		rec.Name = "Hanwha Eagles"
		rec.Standings = []records.Standing{
			{Rank: 1, Team: "Hanwha Eagles"},
			{Rank: 2, Team: "LG Twins"},
			{Rank: 3, Team: "KIA Tigers"},
		}
		rec.Pitchers = []records.PlayerStat{
			{Name: "Ryu Hyun-jin", Number: "99", Position: "SP", Stats: map[string]string{"ERA": "-", "W": "0", "L": "0"}},
		}
		rec.Batters = []records.PlayerStat{
			{Name: "Noh Si-hwan", Number: "8", Position: "3B", Stats: map[string]string{"AVG": "-", "HR": "0"}},
		}
	case activity.Volleyball:
		rec.Name = "Daejeon Samsung Bluefangs"
		rec.Standings = []records.Standing{
			{Rank: 1, Team: "Daejeon Samsung Bluefangs"},
			{Rank: 2, Team: "Korean Air Jumbos"},
		}
		rec.Matches = []records.Match{
			{ID: "placeholder-1", Opponent: "TBD", Home: true},
		}
	case activity.International:
		rec.Name = "Asian Games"
		rec.Medals = []records.MedalCount{
			{Rank: 1, Country: "Korea"},
		}
		rec.Events = []records.Event{
			{ID: "placeholder-1", Name: "Opening Ceremony", Sport: "ceremony"},
		}
	}
	return rec
}
