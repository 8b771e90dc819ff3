package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Module provides application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPricingConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBMetricsEnabled  bool

	// LookupTimeoutSeconds bounds each tenant resolution read.
	LookupTimeoutSeconds int

	SeedDemo bool

	RateLimit RateLimitConfig
}

// RateLimitConfig controls the redis-backed quote limiter.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QuoteTenantRate    float64
	QuoteTenantBurst   int
	QuoteEndpointRate  float64
	QuoteEndpointBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "arfeen-portal"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "arfeen"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		DBMetricsEnabled:  getenvBool("DATABASE_METRICS_ENABLED", true),

		LookupTimeoutSeconds: getenvInt("TENANT_LOOKUP_TIMEOUT_SECONDS", 3),

		SeedDemo: getenvBool("SEED_DEMO", false),

		RateLimit: RateLimitConfig{
			Enabled:            getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:          getenv("RATE_LIMIT_REDIS_ADDR", ""),
			RedisPassword:      getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:            getenvInt("RATE_LIMIT_REDIS_DB", 0),
			QuoteTenantRate:    getenvFloat("RATE_LIMIT_QUOTE_TENANT_RATE", 20),
			QuoteTenantBurst:   getenvInt("RATE_LIMIT_QUOTE_TENANT_BURST", 40),
			QuoteEndpointRate:  getenvFloat("RATE_LIMIT_QUOTE_ENDPOINT_RATE", 200),
			QuoteEndpointBurst: getenvInt("RATE_LIMIT_QUOTE_ENDPOINT_BURST", 400),
		},
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
