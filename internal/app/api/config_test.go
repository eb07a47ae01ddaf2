package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "a-secret-that-is-long-enough")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
	assert.Equal(t, "localhost:7233", cfg.TemporalAddress)
	assert.Equal(t, "default", cfg.TemporalNamespace)
	assert.False(t, cfg.TemporalDisabled)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.True(t, cfg.AllowsAnyOrigin())
}

func TestLoadConfigFromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "false")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("POSTGRES_DSN", " postgres://user:pass@db:5432/adoptions ")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("LOGIN_RATE_WINDOW", "90s")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "postgres://user:pass@db:5432/adoptions", cfg.PostgresDSN)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.Equal(t, 90*time.Second, cfg.LoginRateWindow)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.AllowsAnyOrigin())

	settings := cfg.Observability("pet-adoption-worker")
	assert.Equal(t, "pet-adoption-worker", settings.ServiceName)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "collector:4318", settings.OTLPEndpoint)
	assert.False(t, settings.OTLPInsecure)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"JWT_SECRET": ""}},
		{name: "short secret", env: map[string]string{"JWT_SECRET": "short"}},
		{name: "non numeric port", env: map[string]string{"PORT": "http"}},
		{name: "bcrypt cost too low", env: map[string]string{"BCRYPT_COST": "2"}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "verbose"}},
		{name: "zero rate limit", env: map[string]string{"LOGIN_RATE_LIMIT": "0"}},
		{name: "no origins", env: map[string]string{"CORS_ALLOWED_ORIGINS": " , "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
