package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	// Email dispatch (SES)
	EmailFrom string
	EmailRPS  int

	// cmd/monitor schedules (cron expressions) and mailer sizing
	MonitorSchedule string
	MailerSchedule  string
	MailerWorkers   int
	MailerBatch     int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/babi?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		EmailFrom: env("EMAIL_FROM", ""),
		EmailRPS:  atoi("EMAIL_RPS", 10),

		MonitorSchedule: env("MONITOR_SCHEDULE", "0 6 * * *"),
		MailerSchedule:  env("MAILER_SCHEDULE", "*/15 * * * *"),
		MailerWorkers:   atoi("MAILER_WORKERS", 4),
		MailerBatch:     atoi("MAILER_BATCH", 100),
	}
	if c.EmailFrom == "" {
		log.Warn().Msg("EMAIL_FROM is empty; notification delivery disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
