package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	JWTSecret      string
	AccessTTLMins  int
	DefaultPass    string
	CodeTTLHours   int
	CodeRequestGap int // seconds between activation/reset code requests

	RedisAddr string

	RabbitURL      string
	RabbitExchange string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	BaseURL string

	// ViewDedupe counts at most one view per user per idea when set.
	// Off by default: every view call appends a record (raw traffic count).
	ViewDedupe bool

	Prod bool
}

func Load() Config {
	return Config{
		Port:           getenv("APP_PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "idea_db"),
		JWTSecret:      getenv("JWT", "default_secret_key"),
		AccessTTLMins:  atoi(getenv("ACCESS_TTL_MINS", "60")),
		DefaultPass:    getenv("DEFAULT_PASSWORD", "ChangeMe123!"),
		CodeTTLHours:   atoi(getenv("CODE_TTL_HOURS", "24")),
		CodeRequestGap: atoi(getenv("CODE_REQUEST_GAP_SECONDS", "600")),
		RedisAddr:      getenv("REDIS_ADDR", ""), // empty disables the code-request throttle
		RabbitURL:      getenv("RABBIT_URL", ""),
		RabbitExchange: getenv("RABBIT_EXCHANGE", "idea.events"),
		SMTPHost:       getenv("SMTP_HOST", ""),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPUser:       getenv("SMTP_USER", ""),
		SMTPPass:       getenv("SMTP_PASS", ""),
		MailFrom:       getenv("MAIL_FROM", "no-reply@idea.local"),
		BaseURL:        getenv("BASE_URL", "http://localhost:3000"),
		ViewDedupe:     getenv("VIEW_DEDUPE", "") == "true",
		Prod:           getenv("APP_ENV", "dev") == "prod",
	}
}

func atoi(s string) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return 0
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
