package scraper

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

var errNoRows = errors.New("no rows found")

// facet writes only its own field of the record, so facets may run concurrently on one record.
type facet struct {
	name  string
	path  string
	parse func(doc *goquery.Document, rec *records.Record) error
}

var facets = []facet{
	{name: "standings", path: "standings", parse: parseStandings},
	{name: "recent", path: "results", parse: parseRecent},
	{name: "upcoming", path: "fixtures", parse: parseUpcoming},
}

// parseStandings reads table.standings rows: rank, team, played, wins, losses, draws, win rate,
// games behind, points.
func parseStandings(doc *goquery.Document, rec *records.Record) error {
	var rows []records.Standing
	doc.Find("table.standings tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) < 5 {
			return
		}
		rows = append(rows, records.Standing{
			Rank:        atoi(cells[0]),
			Team:        cells[1],
			Played:      atoi(cells[2]),
			Wins:        atoi(cells[3]),
			Losses:      atoi(cells[4]),
			Draws:       atoi(cellAt(cells, 5)),
			WinRate:     atof(cellAt(cells, 6)),
			GamesBehind: cellAt(cells, 7),
			Points:      atoi(cellAt(cells, 8)),
		})
	})
	if len(rows) == 0 {
		return errNoRows
	}
	rec.Standings = rows
	return nil
}

func parseRecent(doc *goquery.Document, rec *records.Record) error {
	matches := parseMatches(doc, "table.results tbody tr")
	if len(matches) == 0 {
		return errNoRows
	}
	rec.RecentMatches = matches
	return nil
}

func parseUpcoming(doc *goquery.Document, rec *records.Record) error {
	matches := parseMatches(doc, "table.fixtures tbody tr")
	if len(matches) == 0 {
		return errNoRows
	}
	rec.UpcomingMatches = matches
	return nil
}

// parseMatches reads rows of: date, opponent, H/A, venue, score, result. Set scores may be
// given as "25-20 23-25 ..." in the score cell.
func parseMatches(doc *goquery.Document, selector string) []records.Match {
	var out []records.Match
	doc.Find(selector).Each(func(_ int, tr *goquery.Selection) {
		cells := cellTexts(tr)
		if len(cells) < 2 || cells[0] == "" {
			return
		}
		m := records.Match{
			Date:     cells[0],
			Opponent: cells[1],
			Home:     strings.EqualFold(cellAt(cells, 2), "H"),
			Venue:    cellAt(cells, 3),
			Score:    cellAt(cells, 4),
			Result:   cellAt(cells, 5),
		}
		m.ID = tr.AttrOr("data-id", m.Key())
		m.Sets = parseSets(tr.AttrOr("data-sets", ""))
		out = append(out, m)
	})
	return out
}

func parseSets(raw string) []records.SetScore {
	var sets []records.SetScore
	for _, part := range strings.Fields(raw) {
		home, away, ok := strings.Cut(part, "-")
		if !ok {
			continue
		}
		sets = append(sets, records.SetScore{Home: atoi(home), Away: atoi(away)})
	}
	return sets
}

func cellTexts(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(td.Text()))
	})
	return cells
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
