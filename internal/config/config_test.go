package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/keiri")
	t.Setenv("AUTH0_DOMAIN", "keiri.jp.auth0.com")
	t.Setenv("AUTH0_AUDIENCE", "https://api.keiri.app")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 18, cfg.Schedule.CreateHorizonMonths)
	assert.Equal(t, 3, cfg.Schedule.RefreshHorizonMonths)
	assert.Equal(t, time.Duration(0), cfg.Schedule.SyncInterval)
	assert.Equal(t, 6, cfg.Schedule.RefreshRatePerMinute)
	assert.Equal(t, 3, cfg.Schedule.RefreshBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "production")
	t.Setenv("PUBLIC_URL", "https://api.keiri.app/")
	t.Setenv("CORS_ORIGINS", "https://keiri.app, https://admin.keiri.app,")
	t.Setenv("SCHEDULE_CREATE_HORIZON_MONTHS", "24")
	t.Setenv("SCHEDULE_REFRESH_HORIZON_MONTHS", "6")
	t.Setenv("SCHEDULE_SYNC_INTERVAL", "12h")
	t.Setenv("REFRESH_RATE_PER_MINUTE", "10")
	t.Setenv("REFRESH_BURST", "5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://api.keiri.app", cfg.PublicURL)
	assert.Equal(t, []string{"https://keiri.app", "https://admin.keiri.app"}, cfg.CORSOrigins)
	assert.Equal(t, 24, cfg.Schedule.CreateHorizonMonths)
	assert.Equal(t, 6, cfg.Schedule.RefreshHorizonMonths)
	assert.Equal(t, 12*time.Hour, cfg.Schedule.SyncInterval)
	assert.Equal(t, 10, cfg.Schedule.RefreshRatePerMinute)
	assert.Equal(t, 5, cfg.Schedule.RefreshBurst)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing database url", "DATABASE_URL", ""},
		{"missing auth0 domain", "AUTH0_DOMAIN", ""},
		{"missing audience", "AUTH0_AUDIENCE", ""},
		{"non-numeric horizon", "SCHEDULE_CREATE_HORIZON_MONTHS", "many"},
		{"negative horizon", "SCHEDULE_REFRESH_HORIZON_MONTHS", "-1"},
		{"bad interval", "SCHEDULE_SYNC_INTERVAL", "daily"},
		{"negative interval", "SCHEDULE_SYNC_INTERVAL", "-1h"},
		{"zero burst", "REFRESH_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
