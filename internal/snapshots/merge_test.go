package snapshots

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
	"github.com/preston-bernstein/season-dashboard-service/internal/domain/records"
)

func mustDocument(t *testing.T, body string) document {
	t.Helper()
	doc, err := decodeDocument([]byte(body))
	if err != nil {
		t.Fatalf("failed to decode %q: %v", body, err)
	}
	return doc
}

func TestMergeDetailKeysWin(t *testing.T) {
	summary := mustDocument(t, `{"name": "Summary Name", "standings": [{"rank": 1, "team": "A"}], "pitchers": [{"name": "stale"}]}`)
	detail := mustDocument(t, `{"pitchers": [{"name": "fresh"}]}`)

	got, err := Merge(summary, detail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Summary Name" {
		t.Fatalf("expected absent detail name to keep summary, got %q", got.Name)
	}
	if len(got.Standings) != 1 {
		t.Fatalf("expected summary standings kept, got %+v", got.Standings)
	}
	if len(got.Pitchers) != 1 || got.Pitchers[0].Name != "fresh" {
		t.Fatalf("expected detail pitchers, got %+v", got.Pitchers)
	}
	if got.Batters == nil || got.Events == nil {
		t.Fatal("expected absent collections to default to empty")
	}
}

func TestMergeExplicitEmptyDetailFieldOverrides(t *testing.T) {
	cases := []struct {
		name   string
		detail string
		check  func(records.Record) bool
	}{
		{"empty standings", `{"standings": []}`, func(r records.Record) bool { return r.Standings != nil && len(r.Standings) == 0 }},
		{"empty name", `{"name": ""}`, func(r records.Record) bool { return r.Name == "" }},
		{"null matches", `{"recentMatches": null}`, func(r records.Record) bool { return r.RecentMatches != nil && len(r.RecentMatches) == 0 }},
	}
	summary := `{"name": "Old", "standings": [{"rank": 1, "team": "Old"}], "recentMatches": [{"id": "m1"}]}`
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Merge(mustDocument(t, summary), mustDocument(t, tc.detail))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.check(got) {
				t.Fatalf("expected detail to override summary, got %+v", got)
			}
		})
	}
}

func TestMergeRejectsMistypedValues(t *testing.T) {
	if _, err := Merge(mustDocument(t, `{"standings": "many"}`), document{}); err == nil {
		t.Fatal("expected decode error for mistyped field")
	}
}

func TestProjectKeepsOwnedKeysOnly(t *testing.T) {
	rec := records.New(activity.Volleyball)
	rec.Name = "Bluefangs"
	rec.SeasonStatus = "in-season"
	rec.Standings = []records.Standing{{Rank: 2, Team: "Bluefangs", Points: 30}}
	rec.Matches = []records.Match{{ID: "m1", Sets: []records.SetScore{{Home: 25, Away: 20}}}}

	summary, err := project(rec, kindSummary)
	if err != nil {
		t.Fatalf("project summary: %v", err)
	}
	detail, err := project(rec, kindDetail)
	if err != nil {
		t.Fatalf("project detail: %v", err)
	}

	for _, key := range []string{`"matches"`, `"seasonStatus"`, `"pitchers"`} {
		if strings.Contains(string(summary), key) {
			t.Fatalf("summary should not carry %s:\n%s", key, summary)
		}
	}
	for _, key := range []string{`"name"`, `"standings"`, `"seasonStatus"`} {
		if strings.Contains(string(detail), key) {
			t.Fatalf("detail should not carry %s:\n%s", key, detail)
		}
	}

	got, err := Merge(mustDocument(t, string(summary)), mustDocument(t, string(detail)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.SeasonStatus = ""
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
