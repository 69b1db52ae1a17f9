package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewMeterProvider wires an OpenTelemetry meter provider onto a prometheus
// registry, which the HTTP server exposes at /metrics.
func NewMeterProvider(lc fx.Lifecycle, log *zap.Logger) (metric.MeterProvider, *prometheus.Registry, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("shutting down meter provider")
			}
			return provider.Shutdown(ctx)
		},
	})

	return provider, registry, nil
}
