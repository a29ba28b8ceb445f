package snapshots

import (
	"path/filepath"

	"github.com/preston-bernstein/season-dashboard-service/internal/domain/activity"
)

type snapshotKind string

const (
	kindSummary snapshotKind = "summary"
	kindDetail  snapshotKind = "detail"
)

const manifestFile = "manifest.json"

// SummaryPath builds the path to an activity's summary snapshot.
func SummaryPath(basePath string, a activity.Activity) string {
	return snapshotPath(basePath, a, kindSummary)
}

// DetailPath builds the path to an activity's detail snapshot.
func DetailPath(basePath string, a activity.Activity) string {
	return snapshotPath(basePath, a, kindDetail)
}

func snapshotPath(basePath string, a activity.Activity, kind snapshotKind) string {
	return filepath.Join(basePath, a.String(), string(kind)+".json")
}

func manifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
