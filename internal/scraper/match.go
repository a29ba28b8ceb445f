package scraper

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

const minTeamSimilarity = 0.85

// matchTeam finds the standings row whose team name is closest to the configured team, so
// pages that spell the name slightly differently still resolve.
func matchTeam(team string, standings []records.Standing) (string, bool) {
	team = strings.TrimSpace(team)
	if team == "" {
		return "", false
	}
	var (
		best      string
		bestScore float64
	)
	for _, row := range standings {
		score := matchr.JaroWinkler(strings.ToLower(team), strings.ToLower(row.Team), false)
		if score > bestScore {
			bestScore = score
			best = row.Team
		}
	}
	if bestScore < minTeamSimilarity {
		return "", false
	}
	return best, true
}
