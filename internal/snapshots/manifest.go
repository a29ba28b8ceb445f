package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int                     `json:"version"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Activities  map[string]ActivityMeta `json:"activities"`
}

// ActivityMeta records when each document of an activity was last written.
type ActivityMeta struct {
	SummaryRefreshed time.Time `json:"summaryRefreshed,omitempty"`
	DetailRefreshed  time.Time `json:"detailRefreshed,omitempty"`
	LastRefreshed    time.Time `json:"lastRefreshed"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Activities:  map[string]ActivityMeta{},
	}
}

// ReadManifest loads the manifest under basePath; a missing or corrupt manifest yields an
// empty one alongside the error.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(manifestPath(basePath))
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Activities == nil {
		m.Activities = map[string]ActivityMeta{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := manifestPath(basePath)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
