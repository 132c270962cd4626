package otel

import (
	"context"
	"fmt"

	"campusroom/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens spans for the layers of a request. Shutdown flushes what the
// batcher still holds.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type otelImpl struct {
	provider oteltrace.TracerProvider
	shutdown func(ctx context.Context) error
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (o *otelImpl) Shutdown(ctx context.Context) error {
	if err := o.shutdown(ctx); err != nil {
		return fmt.Errorf("failed to flush traces: %w", err)
	}

	return nil
}

func New(config *config.Config) Otel {
	endpoint := config.External.Otel.Endpoint
	if endpoint == "" {
		log.Warn().Msg("otel endpoint not set, spans are dropped")

		return &otelImpl{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}
	}

	exporter, err := otlptracegrpc.New(context.Background(),
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create OTLP exporter")
	}

	provider := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(config.External.Otel.SampleRatio))),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(config.App.Name),
			semconv.DeploymentEnvironmentKey.String(config.Server.Env),
		)),
	)

	otel.SetTracerProvider(provider)

	return &otelImpl{
		provider: provider,
		shutdown: provider.Shutdown,
	}
}
