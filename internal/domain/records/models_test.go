package records

import (
	"encoding/json"
	"testing"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
)

func TestUnmarshalDefaultsMissingCollections(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"activity":"baseball","name":"Eagles","pitchers":null}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Activity != activity.Baseball || r.Name != "Eagles" {
		t.Fatalf("unexpected spine %+v", r)
	}
	if r.Standings == nil || r.Pitchers == nil || r.Batters == nil || r.Matches == nil ||
		r.Medals == nil || r.Events == nil || r.RecentMatches == nil || r.UpcomingMatches == nil {
		t.Fatalf("expected every collection to be non-nil, got %+v", r)
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"standings": "nope"}`), &r); err == nil {
		t.Fatal("expected error for malformed standings")
	}
}

func TestMarshalEmitsEmptyArrays(t *testing.T) {
	data, err := json.Marshal(New(activity.Volleyball))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["matches"].([]any); !ok {
		t.Fatalf("expected matches to be an array, got %T", raw["matches"])
	}
}

func TestLatestResult(t *testing.T) {
	r := New(activity.Baseball)
	if _, ok := r.LatestResult(); ok {
		t.Fatal("expected no result on empty record")
	}
	r.RecentMatches = []Match{
		{ID: "a", Date: "2026-05-01", Result: "W"},
		{ID: "b", Date: "2026-05-03", Result: "L"},
		{ID: "c", Date: "2026-05-04"},
	}
	got, ok := r.LatestResult()
	if !ok || got.ID != "b" {
		t.Fatalf("expected match b, got %+v (ok=%v)", got, ok)
	}
}

func TestMatchAndEventKeys(t *testing.T) {
	if got := (Match{ID: "g1", Date: "2026-05-02", Opponent: "LG Twins"}).Key(); got != "g1" {
		t.Fatalf("expected explicit ID, got %q", got)
	}
	if got := (Match{Date: "2026-05-02", Opponent: " LG  Twins "}).Key(); got != "2026-05-02-lg-twins" {
		t.Fatalf("unexpected derived match key %q", got)
	}
	if got := (Event{Date: "2026-10-03", Name: "Baseball Final"}).Key(); got != "2026-10-03-baseball-final" {
		t.Fatalf("unexpected derived event key %q", got)
	}
}
