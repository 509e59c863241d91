package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Supported streak scan orders.
const (
	StreakOrderInsertion     = "insertion"
	StreakOrderChronological = "chronological"
)

// Config holds the runtime settings of the service.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	DatabaseDriver string
	DatabaseDSN    string

	RabbitMQURL string
	SentryDSN   string

	SessionCookieName   string
	SessionCookiePath   string
	SessionMaxAge       time.Duration
	SessionCookieSecure bool

	StreakOrder string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "dailydiet.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("SESSION_COOKIE_NAME", "userId")
	v.SetDefault("SESSION_COOKIE_PATH", "/meals")
	v.SetDefault("SESSION_MAX_AGE", 604800) // 7 days, in seconds
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("STREAK_ORDER", StreakOrderInsertion)
}

// Load reads the configuration from v, falling back to the defaults for
// anything unset. Environment variables override both.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		AppEnv:              v.GetString("APP_ENV"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		DatabaseDriver:      strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		SentryDSN:           v.GetString("SENTRY_DSN"),
		SessionCookieName:   v.GetString("SESSION_COOKIE_NAME"),
		SessionCookiePath:   v.GetString("SESSION_COOKIE_PATH"),
		SessionMaxAge:       time.Duration(v.GetInt("SESSION_MAX_AGE")) * time.Second,
		SessionCookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		StreakOrder:         strings.ToLower(v.GetString("STREAK_ORDER")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseDriver != DriverMemory && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for driver %q", c.DatabaseDriver)
	}
	switch c.StreakOrder {
	case StreakOrderInsertion, StreakOrderChronological:
	default:
		return fmt.Errorf("unsupported STREAK_ORDER %q", c.StreakOrder)
	}
	if c.SessionCookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive")
	}
	return nil
}
