package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Alazar42/CelerisProjectStarter/internal/infrastructure/config"
	"github.com/Alazar42/CelerisProjectStarter/internal/ports"
)

const (
	serviceName    = "celeris"
	serviceVersion = "1.0.0"
)

// ErrDisabled is returned by NewExporter when metrics export is not configured.
var ErrDisabled = errors.New("OTEL exporter is disabled or endpoint not configured")

// Exporter exports run metrics to an OTEL Collector.
type Exporter struct {
	provider      *sdkmetric.MeterProvider
	runsTotal     metric.Int64Counter
	bytesHist     metric.Int64Histogram
	durationHist  metric.Float64Histogram
	cleanupFailed metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg config.Otel) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, ErrDisabled
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	e, err := newExporter(provider)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}
	return e, nil
}

func newExporter(provider *sdkmetric.MeterProvider) (*Exporter, error) {
	meter := provider.Meter(serviceName)

	runsTotal, err := meter.Int64Counter(
		"celeris_runs_total",
		metric.WithDescription("Project creation runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	bytesHist, err := meter.Int64Histogram(
		"celeris_download_bytes",
		metric.WithDescription("Template archive bytes downloaded per run"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating download histogram: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"celeris_run_duration_seconds",
		metric.WithDescription("Project creation run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	cleanupFailed, err := meter.Int64Counter(
		"celeris_cleanup_failures_total",
		metric.WithDescription("Runs that left transient files behind"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cleanup counter: %w", err)
	}

	return &Exporter{
		provider:      provider,
		runsTotal:     runsTotal,
		bytesHist:     bytesHist,
		durationHist:  durationHist,
		cleanupFailed: cleanupFailed,
	}, nil
}

// ExportRunMetrics records the outcome of a finished run.
func (e *Exporter) ExportRunMetrics(ctx context.Context, m *ports.RunMetrics) error {
	attrs := []attribute.KeyValue{
		attribute.String("outcome", m.Outcome),
	}
	if m.FailedStage != "" {
		attrs = append(attrs, attribute.String("failed_stage", m.FailedStage))
	}
	opt := metric.WithAttributes(attrs...)

	e.runsTotal.Add(ctx, 1, opt)
	e.durationHist.Record(ctx, m.Duration.Seconds(), opt)
	if m.BytesDownloaded > 0 {
		e.bytesHist.Record(ctx, m.BytesDownloaded, opt)
	}
	if m.CleanupFailed {
		e.cleanupFailed.Add(ctx, 1, opt)
	}

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
