package config

// SnapshotConfig controls where activity snapshots live and who may refresh them.
type SnapshotConfig struct {
	Dir        string `envconfig:"SNAPSHOT_DIR" default:"data/snapshots"`
	AdminToken string `envconfig:"ADMIN_TOKEN"`
}

func (c *SnapshotConfig) normalize() {
	if c.Dir == "" {
		c.Dir = defaultSnapshotDir
	}
}
