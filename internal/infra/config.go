package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	JWTSecret          string
	AllowedOrigins     []string
	DefaultLocale      string
	GeoIPDBPath        string
	ReportTimezone     string
	AMQPURL            string
	AMQPExchange       string
	AMQPQueue          string
	AutoMigrate        bool
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	SweepInterval      time.Duration
	SweepBatchSize     int
	OverdueReminderAge time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		DefaultLocale:      strings.ToLower(getEnv("DEFAULT_LOCALE", "vi")),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		ReportTimezone:     getEnv("REPORT_TIMEZONE", "Asia/Ho_Chi_Minh"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "charity.events"),
		AMQPQueue:          getEnv("AMQP_QUEUE", "charity.notifications"),
		AutoMigrate:        getEnvBool("AUTO_MIGRATE", true),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 20),
		SweepInterval:      time.Second * time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 300)),
		SweepBatchSize:     getEnvInt("SWEEP_BATCH_SIZE", 100),
		OverdueReminderAge: 24 * time.Hour,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.DefaultLocale != "vi" && cfg.DefaultLocale != "en" {
		return nil, fmt.Errorf("DEFAULT_LOCALE must be vi or en, got %q", cfg.DefaultLocale)
	}

	if _, err := time.LoadLocation(cfg.ReportTimezone); err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Location returns the time zone used to bucket report months.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
