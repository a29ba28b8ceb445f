package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SEASON_CONFIG", filepath.Join(t.TempDir(), "missing.json5"))
	t.Setenv("SNAPSHOT_DIR", t.TempDir())
	t.Setenv("LIVE_BASE_URL", "")
	t.Setenv("METRICS_ENABLED", "false")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSeasonCommandPrintsOverview(t *testing.T) {
	out, err := runCmd(t, "season", "--at", "2026-03-20")
	require.NoError(t, err)
	require.Contains(t, out, "Primary: Baseball")
	require.Contains(t, out, "pre-season")
	require.Contains(t, out, "2026-03-23")
}

func TestSeasonCommandRejectsBadDate(t *testing.T) {
	_, err := runCmd(t, "season", "--at", "March")
	require.Error(t, err)
}

func TestFetchCommandFallsBackToDefaults(t *testing.T) {
	out, err := runCmd(t, "fetch", "eagles")
	require.NoError(t, err)
	require.Contains(t, out, "Baseball")
	require.Contains(t, out, "default")
	require.NotContains(t, out, "Volleyball")
}

func TestFetchCommandUnknownActivity(t *testing.T) {
	_, err := runCmd(t, "fetch", "zzzzzzzz")
	require.Error(t, err)
}

func TestScrapeCommandWithoutPages(t *testing.T) {
	_, err := runCmd(t, "scrape")
	require.ErrorContains(t, err, "no scraper pages configured")
}

func TestEnvFileIsLoaded(t *testing.T) {
	env := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(env, []byte("SEASON_TIMEZONE=Asia/Seoul\n"), 0o644))
	t.Setenv("SEASON_TIMEZONE", "")
	os.Unsetenv("SEASON_TIMEZONE")

	_, err := runCmd(t, "--env-file", env, "season", "--at", "2026-06-01")
	require.NoError(t, err)
	require.Equal(t, "Asia/Seoul", os.Getenv("SEASON_TIMEZONE"))
}
