package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// LoadDotEnv reads .env style files into the process environment without overriding variables
// that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func positiveOr(value, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return value
}

// scheduleOr keeps expr when it is a valid five-field cron expression.
func scheduleOr(expr, fallback string) string {
	if expr == "" {
		return fallback
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fallback
	}
	return expr
}
