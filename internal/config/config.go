package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string
	// PublicURL is the externally visible origin listed in the OpenAPI servers
	PublicURL string

	// Schedule generation
	Schedule ScheduleConfig
}

// ScheduleConfig holds task schedule generation settings
type ScheduleConfig struct {
	CreateHorizonMonths  int
	RefreshHorizonMonths int
	// SyncInterval is the background refresh period; zero disables the worker
	SyncInterval         time.Duration
	RefreshRatePerMinute int
	RefreshBurst         int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		Env:           getEnv("ENV", "development"),
	}
	cfg.PublicURL = strings.TrimSuffix(getEnv("PUBLIC_URL", "http://localhost:"+cfg.Port), "/")

	var err error
	if cfg.Schedule.CreateHorizonMonths, err = getEnvInt("SCHEDULE_CREATE_HORIZON_MONTHS", 18); err != nil {
		return nil, err
	}
	if cfg.Schedule.RefreshHorizonMonths, err = getEnvInt("SCHEDULE_REFRESH_HORIZON_MONTHS", 3); err != nil {
		return nil, err
	}
	if cfg.Schedule.SyncInterval, err = getEnvDuration("SCHEDULE_SYNC_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.Schedule.RefreshRatePerMinute, err = getEnvInt("REFRESH_RATE_PER_MINUTE", 6); err != nil {
		return nil, err
	}
	if cfg.Schedule.RefreshBurst, err = getEnvInt("REFRESH_BURST", 3); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.Schedule.CreateHorizonMonths < 0 || c.Schedule.RefreshHorizonMonths < 0 {
		return fmt.Errorf("schedule horizons must not be negative")
	}
	if c.Schedule.SyncInterval < 0 {
		return fmt.Errorf("SCHEDULE_SYNC_INTERVAL must not be negative")
	}
	if c.Schedule.RefreshRatePerMinute <= 0 || c.Schedule.RefreshBurst <= 0 {
		return fmt.Errorf("refresh rate limit must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
