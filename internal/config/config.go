// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Module provides the loaded configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)

// Config is the full configuration for the API process.
type Config struct {
	Environment string

	HTTP      HTTPConfig
	Database  DatabaseConfig
	Ingest    IngestConfig
	Stats     StatsConfig
	Telemetry TelemetryConfig
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig configures the backing store.
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// IngestConfig bounds how fast a single machine may report jobs.
type IngestConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

// StatsConfig controls aggregation response caching.
type StatsConfig struct {
	CacheTTL time.Duration
}

// TelemetryConfig configures OpenTelemetry exporters.
type TelemetryConfig struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// Load reads configuration from the environment, applying defaults suitable
// for a single-box deployment.
func Load() Config {
	return Config{
		Environment: envString("PMS_ENVIRONMENT", "development"),
		HTTP: HTTPConfig{
			Addr:            envString("PMS_HTTP_ADDR", ":3000"),
			RequestTimeout:  envDuration("PMS_HTTP_REQUEST_TIMEOUT", 15*time.Second),
			ShutdownTimeout: envDuration("PMS_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:          envString("PMS_DB_DRIVER", "sqlite"),
			DSN:             envString("PMS_DB_DSN", "file:print_jobs.db?_pragma=busy_timeout(5000)"),
			MaxOpenConns:    envInt("PMS_DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("PMS_DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("PMS_DB_CONN_MAX_LIFETIME", 30*time.Minute),
			PingTimeout:     envDuration("PMS_DB_PING_TIMEOUT", 5*time.Second),
		},
		Ingest: IngestConfig{
			RateLimit:  envInt("PMS_INGEST_RATE_LIMIT", 120),
			RateWindow: envDuration("PMS_INGEST_RATE_WINDOW", time.Minute),
		},
		Stats: StatsConfig{
			CacheTTL: envDuration("PMS_STATS_CACHE_TTL", 5*time.Second),
		},
		Telemetry: TelemetryConfig{
			Enabled:          envBool("PMS_TELEMETRY_ENABLED", false),
			ServiceName:      envString("PMS_TELEMETRY_SERVICE_NAME", "printer-management"),
			ServiceVersion:   envString("PMS_TELEMETRY_SERVICE_VERSION", "dev"),
			ExporterEndpoint: envString("PMS_TELEMETRY_EXPORTER_ENDPOINT", "localhost:4317"),
			ExporterProtocol: envString("PMS_TELEMETRY_EXPORTER_PROTOCOL", "grpc"),
			SamplingRatio:    envFloat("PMS_TELEMETRY_SAMPLING_RATIO", 1.0),
		},
	}
}

func envString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
