package logs

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// OTLP is an slog handler exporting records over OTLP/HTTP. Shutdown flushes
// pending batches.
type OTLP struct {
	slog.Handler
	provider *sdklog.LoggerProvider
}

// NewOTLP builds the exporter pipeline. An empty endpoint defers to the
// OTEL_EXPORTER_OTLP_* environment variables.
func NewOTLP(ctx context.Context, service, version, endpoint string) (*OTLP, error) {
	// schemaless so the merge never conflicts with the SDK default schema
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(service),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []otlploghttp.Option{}
	if endpoint != "" {
		opts = append(opts, otlploghttp.WithEndpointURL(endpoint))
	}
	exporter, err := otlploghttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	return &OTLP{
		Handler:  otelslog.NewHandler(service, otelslog.WithLoggerProvider(provider)),
		provider: provider,
	}, nil
}

func (o *OTLP) Shutdown(ctx context.Context) error {
	return o.provider.Shutdown(ctx)
}
