package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTP.Addr != ":3000" {
		t.Fatalf("expected default addr :3000, got %q", cfg.HTTP.Addr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %q", cfg.Database.Driver)
	}
	if cfg.HTTP.RequestTimeout != 15*time.Second {
		t.Fatalf("expected 15s request timeout, got %v", cfg.HTTP.RequestTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PMS_DB_DRIVER", "postgres")
	t.Setenv("PMS_HTTP_REQUEST_TIMEOUT", "3s")
	t.Setenv("PMS_INGEST_RATE_LIMIT", "42")

	cfg := Load()
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.Database.Driver)
	}
	if cfg.HTTP.RequestTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.HTTP.RequestTimeout)
	}
	if cfg.Ingest.RateLimit != 42 {
		t.Fatalf("expected rate limit 42, got %d", cfg.Ingest.RateLimit)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PMS_DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("PMS_TELEMETRY_SAMPLING_RATIO", "many")

	cfg := Load()
	if cfg.Database.MaxOpenConns != 10 {
		t.Fatalf("expected fallback 10, got %d", cfg.Database.MaxOpenConns)
	}
	if cfg.Telemetry.SamplingRatio != 1.0 {
		t.Fatalf("expected fallback 1.0, got %v", cfg.Telemetry.SamplingRatio)
	}
}
