package config

// NotifyConfig controls match-result notifications.
type NotifyConfig struct {
	Enabled        bool     `envconfig:"NOTIFY_ENABLED" default:"false"`
	Schedule       string   `envconfig:"NOTIFY_SCHEDULE" default:"*/10 * * * *"`
	MarkerDB       string   `envconfig:"NOTIFY_MARKER_DB" default:"data/notify.db"`
	TelegramToken  string   `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID int64    `envconfig:"TELEGRAM_CHAT_ID"`
	SMTPHost       string   `envconfig:"SMTP_HOST"`
	SMTPPort       int      `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser       string   `envconfig:"SMTP_USER"`
	SMTPPassword   string   `envconfig:"SMTP_PASSWORD"`
	EmailFrom      string   `envconfig:"NOTIFY_EMAIL_FROM"`
	EmailTo        []string `envconfig:"NOTIFY_EMAIL_TO"`
}

// TelegramEnabled reports whether Telegram delivery is configured.
func (c NotifyConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c NotifyConfig) EmailEnabled() bool {
	return c.SMTPHost != "" && c.EmailFrom != "" && len(c.EmailTo) > 0
}

func (c *NotifyConfig) normalize() {
	c.Schedule = scheduleOr(c.Schedule, defaultNotifySchedule)
	if c.MarkerDB == "" {
		c.MarkerDB = defaultNotifyMarkerDB
	}
	if c.SMTPPort <= 0 {
		c.SMTPPort = defaultSMTPPort
	}
}
