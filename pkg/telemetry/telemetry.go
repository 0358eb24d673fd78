// Package telemetry sets up the OpenTelemetry meter provider and the
// booking metrics recorded by the service layer.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

type Config struct {
	ServiceName string
	// Endpoint of the OTLP gRPC collector. Empty disables export and
	// leaves the global no-op meter provider in place.
	Endpoint string
	Interval time.Duration
}

type Telemetry struct {
	provider *sdkmetric.MeterProvider
	meter    metric.Meter
}

func Init(ctx context.Context, cfg Config) (*Telemetry, error) {
	if cfg.Endpoint == "" {
		return &Telemetry{meter: otel.Meter(cfg.ServiceName)}, nil
	}

	if cfg.Interval == 0 {
		cfg.Interval = 15 * time.Second
	}

	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	)

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
	)
	otel.SetMeterProvider(provider)

	return &Telemetry{
		provider: provider,
		meter:    provider.Meter(cfg.ServiceName),
	}, nil
}

func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// Shutdown flushes pending metrics. It is a no-op when export is disabled.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
