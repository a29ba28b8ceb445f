package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("SCRAPER_TEAM=Eagles\nPORT=7000\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("PORT", "6000")
	t.Setenv("SCRAPER_TEAM", "")
	os.Unsetenv("SCRAPER_TEAM")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("SCRAPER_TEAM"); got != "Eagles" {
		t.Fatalf("expected value from file, got %q", got)
	}
	if got := os.Getenv("PORT"); got != "6000" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}

func TestPositiveOr(t *testing.T) {
	if got := positiveOr(0, time.Second); got != time.Second {
		t.Fatalf("expected fallback, got %s", got)
	}
	if got := positiveOr(3*time.Second, time.Second); got != 3*time.Second {
		t.Fatalf("expected value kept, got %s", got)
	}
}

func TestScheduleOr(t *testing.T) {
	cases := map[string]string{
		"":            "@hourly",
		"bogus":       "@hourly",
		"*/5 * * * *": "*/5 * * * *",
		"@daily":      "@daily",
	}
	for in, want := range cases {
		if got := scheduleOr(in, "@hourly"); got != want {
			t.Fatalf("scheduleOr(%q) = %q, want %q", in, got, want)
		}
	}
}
