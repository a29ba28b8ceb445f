package config

// SeasonConfig points at the season window document.
type SeasonConfig struct {
	Resource string `envconfig:"SEASON_CONFIG" default:"config/season.json5"`
	Timezone string `envconfig:"SEASON_TIMEZONE" default:"UTC"`
}
