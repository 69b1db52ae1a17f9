package observability

import (
	"strings"

	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	"github.com/mackml1997/reserves-rarities/internal/observability/metrics"
	"github.com/mackml1997/reserves-rarities/internal/observability/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(logger.New),
	fx.Provide(newTracingConfig),
	fx.Provide(tracing.NewProvider),
	fx.Provide(newMetricsConfig),
	fx.Provide(metrics.NewMeterProvider),
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Invoke(func(*sdktrace.TracerProvider) {}),
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      serviceName(cfg),
		ServiceVersion:   cfg.ServiceVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingEndpoint,
		ExporterProtocol: cfg.TracingProtocol,
		SamplingRatio:    cfg.TracingSampling,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{ServiceName: serviceName(cfg)}
}

func serviceName(cfg config.Config) string {
	if name := strings.TrimSpace(cfg.MetricsNamespace); name != "" {
		return name
	}
	return "rrbridge"
}
