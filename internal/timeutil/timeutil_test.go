package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestParseDateIn(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	parsed, err := ParseDateIn("2026-03-23", loc)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if parsed.Location() != loc || parsed.Hour() != 0 || parsed.Day() != 23 {
		t.Fatalf("expected midnight in zone, got %s", parsed)
	}
	if _, err := ParseDateIn("23/03/2026", nil); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestResolveLocation(t *testing.T) {
	if got := ResolveLocation(""); got != time.UTC {
		t.Fatalf("expected UTC for empty name, got %s", got)
	}
	if got := ResolveLocation("Not/AZone"); got != time.UTC {
		t.Fatalf("expected UTC for unknown zone, got %s", got)
	}
	if got := ResolveLocation("UTC"); got.String() != "UTC" {
		t.Fatalf("expected UTC, got %s", got)
	}
}
