package config

import "time"

const (
	defaultPollInterval     = 2 * time.Minute
	defaultLiveTimeout      = 5 * time.Second
	defaultLiveMinInterval  = time.Second
	defaultSnapshotDir      = "data/snapshots"
	defaultScraperSchedule  = "*/30 * * * *"
	defaultScraperTimeout   = 15 * time.Second
	defaultNotifySchedule   = "*/10 * * * *"
	defaultNotifyMarkerDB   = "data/notify.db"
	defaultSMTPPort         = 587
	defaultScraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)
