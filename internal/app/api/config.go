package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// Config carries environment-driven settings shared by the API and the worker.
type Config struct {
	Port        string `mapstructure:"PORT" validate:"required,numeric"`
	Environment string `mapstructure:"ENVIRONMENT" validate:"required"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`

	JWTSecret  string        `mapstructure:"JWT_SECRET" validate:"required,min=16"`
	JWTTTL     time.Duration `mapstructure:"JWT_TTL" validate:"gt=0"`
	BcryptCost int           `mapstructure:"BCRYPT_COST" validate:"gte=4,lte=31"`

	PostgresDSN string `mapstructure:"POSTGRES_DSN"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`

	LoginRateLimit  int           `mapstructure:"LOGIN_RATE_LIMIT" validate:"gt=0"`
	LoginRateWindow time.Duration `mapstructure:"LOGIN_RATE_WINDOW" validate:"gt=0"`

	TemporalAddress   string `mapstructure:"TEMPORAL_ADDRESS" validate:"required"`
	TemporalNamespace string `mapstructure:"TEMPORAL_NAMESPACE" validate:"required"`
	TemporalDisabled  bool   `mapstructure:"TEMPORAL_DISABLED"`

	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS" validate:"min=1,dive,required"`
}

var defaults = map[string]any{
	"PORT":                        "8080",
	"ENVIRONMENT":                 "local",
	"LOG_LEVEL":                   "info",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"OTEL_EXPORTER_OTLP_INSECURE": true,
	"JWT_SECRET":                  "",
	"JWT_TTL":                     "2h",
	"BCRYPT_COST":                 10,
	"POSTGRES_DSN":                "",
	"REDIS_ADDR":                  "",
	"RABBITMQ_URL":                "",
	"LOGIN_RATE_LIMIT":            10,
	"LOGIN_RATE_WINDOW":           "1m",
	"TEMPORAL_ADDRESS":            client.DefaultHostPort,
	"TEMPORAL_NAMESPACE":          client.DefaultNamespace,
	"TEMPORAL_DISABLED":           false,
	"CORS_ALLOWED_ORIGINS":        "*",
}

// LoadConfig reads an optional .env file and the environment, applies
// defaults, and validates the result.
func LoadConfig() (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return decodeConfig(v)
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.normalize()
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.RedisAddr = strings.TrimSpace(c.RedisAddr)
	c.RabbitMQURL = strings.TrimSpace(c.RabbitMQURL)
	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, origin := range c.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	c.CORSAllowedOrigins = origins
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// AllowsAnyOrigin reports whether CORS is open to every origin.
func (c Config) AllowsAnyOrigin() bool {
	for _, origin := range c.CORSAllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Observability derives the telemetry settings for serviceName.
func (c Config) Observability(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}
