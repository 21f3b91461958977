package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getenvFrom(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(getenvFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.ColdLeadDays)
	assert.Equal(t, time.Hour, cfg.ColdLeadInterval)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"APP_ENV"}, cfg.Required)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(getenvFrom(map[string]string{
		"APP_ENV":              "production",
		"PORT":                 "9000",
		"COLD_LEAD_DAYS":       "14",
		"COLD_LEAD_INTERVAL":   "15m",
		"CORS_ALLOWED_ORIGINS": "https://app.aguia.app, https://admin.aguia.app,",
		"DATABASE_URL":         "postgres://localhost/crm",
	}))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 14, cfg.ColdLeadDays)
	assert.Equal(t, 15*time.Minute, cfg.ColdLeadInterval)
	assert.Equal(t, []string{"https://app.aguia.app", "https://admin.aguia.app"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "postgres://localhost/crm", cfg.DatabaseURL)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"days não numérico": {"COLD_LEAD_DAYS": "trinta"},
		"days zero":         {"COLD_LEAD_DAYS": "0"},
		"intervalo ruim":    {"COLD_LEAD_INTERVAL": "sempre"},
		"intervalo zero":    {"COLD_LEAD_INTERVAL": "0s"},
		"mail port":         {"MAIL_PORT": "smtp"},
		"rate limit":        {"RATE_LIMIT_RPM": "muito"},
		"rate limit zero":   {"RATE_LIMIT_RPM": "0"},
		"rate limit neg":    {"RATE_LIMIT_RPM": "-5"},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(getenvFrom(vars))
			assert.Error(t, err)
		})
	}
}
