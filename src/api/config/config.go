package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port string

	// Email channel. Empty NotifyEmail disables it.
	NotifyEmail  string
	EmailSubject string
	EmailFrom    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string

	// Telegram channel. Empty token or chat id disables it.
	TelegramToken  string
	TelegramChatID string

	LeadsFile string
	LogFile   string

	// RedisURL is optional; when unset the throttle falls back to an
	// in-process store.
	RedisURL        string
	ThrottleSeconds int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8080"),
		NotifyEmail:     getenv("NOTIFY_EMAIL", ""),
		EmailSubject:    getenv("EMAIL_SUBJECT", "Новая заявка с сайта"),
		EmailFrom:       getenv("EMAIL_FROM", "noreply@localhost"),
		SMTPHost:        getenv("SMTP_HOST", "localhost"),
		SMTPPort:        getenvInt("SMTP_PORT", 587),
		SMTPUser:        getenv("SMTP_USER", ""),
		SMTPPass:        getenv("SMTP_PASS", ""),
		TelegramToken:   getenv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:  getenv("TELEGRAM_CHAT_ID", ""),
		LeadsFile:       getenv("LEADS_FILE", "leads.json"),
		LogFile:         getenv("LOG_FILE", "logs.txt"),
		RedisURL:        getenv("REDIS_URL", ""),
		ThrottleSeconds: getenvInt("THROTTLE_SECONDS", 5),
	}
}
