// Package telemetry wires the OpenTelemetry tracer provider used by the
// orchestrators and the gRPC stats handler.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc flushes pending spans
type ShutdownFunc func(context.Context) error

// Config controls exporter setup. An empty Endpoint leaves the global
// no-op provider in place.
type Config struct {
	ServiceName string
	Endpoint    string
}

// Setup registers a batching OTLP/HTTP tracer provider. The returned
// shutdown function should be deferred by the caller.
func Setup(ctx context.Context, cfg *Config) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	if cfg == nil || cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider
func Tracer(name string) trace.Tracer {
	return otel.Tracer("github.com/KirkDiggler/rpg-builder/" + name)
}
