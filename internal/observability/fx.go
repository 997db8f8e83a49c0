// Package observability wires logging, metrics and tracing into the fx graph.
package observability

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"

	"github.com/kmurdhar/PrinterManagementSystem/internal/config"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/logger"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/metrics"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/tracing"
)

// Module assembles the observability stack from the process configuration.
var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(
		newTracingConfig,
		newMetricsConfig,
		newMetricsProviderConfig,
		tracing.NewProvider,
		metrics.NewProvider,
		metrics.NewHTTPMetrics,
		newJobMetrics,
	),
	// Force tracer construction; nothing depends on the provider directly,
	// it installs itself globally.
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Telemetry.Enabled,
		ServiceName:      cfg.Telemetry.ServiceName,
		ServiceVersion:   cfg.Telemetry.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
		ExporterProtocol: cfg.Telemetry.ExporterProtocol,
		SamplingRatio:    cfg.Telemetry.SamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Environment,
	}
}

func newMetricsProviderConfig(cfg config.Config) metrics.ProviderConfig {
	return metrics.ProviderConfig{
		Enabled:          cfg.Telemetry.Enabled,
		ServiceName:      cfg.Telemetry.ServiceName,
		ServiceVersion:   cfg.Telemetry.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.Telemetry.ExporterEndpoint,
	}
}

func newJobMetrics(cfg metrics.Config) *metrics.JobMetrics {
	return metrics.Jobs(cfg)
}
