package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/thamirestcrl/eqc-teste/internal/config"
	"github.com/thamirestcrl/eqc-teste/pkg/contracts/domain"
)

const (
	ServiceName = "eqc-dashboard"
	MeterName   = "github.com/thamirestcrl/eqc-teste"
)

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel initializes metrics (Prometheus reader) and, when
// configured, stdout tracing. With metrics disabled the returned providers
// carry a no-op meter and no HTTP handler.
func InitializeOTel(cfg config.MetricsConfig, logger *slog.Logger) (*OTelProviders, error) {
	ctx := context.Background()
	providers := &OTelProviders{
		Logger: logger,
		Meter:  noop.NewMeterProvider().Meter(MeterName),
		Tracer: otel.Tracer(MeterName),
	}

	res := createResource()

	if cfg.TraceExporter == "stdout" {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
		)
		providers.TracerProvider = tp
		providers.Tracer = tp.Tracer(MeterName)
		otel.SetTracerProvider(tp)
	} else if cfg.TraceExporter != "" && cfg.TraceExporter != "none" {
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if cfg.Enabled {
		// A private registry keeps repeated initialization (tests, reloads)
		// free of duplicate-registration panics.
		registry := promclient.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		otel.SetMeterProvider(mp)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.InfoContext(ctx, "OpenTelemetry initialized",
		slog.Bool("metrics_enabled", cfg.Enabled),
		slog.String("trace_exporter", cfg.TraceExporter))

	return providers, nil
}

func createResource() *resource.Resource {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		attribute.String("service.instance.id", fmt.Sprintf("%s-%d", hostname, time.Now().Unix())),
	)
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}
	return nil
}

// BusinessMetrics holds the dashboard's instruments
type BusinessMetrics struct {
	PreparationRuns     metric.Int64Counter
	PreparationRows     metric.Int64Counter
	PreparationDuration metric.Float64Histogram

	DatasetLoads   metric.Int64Counter
	DatasetRecords metric.Int64Counter

	ViewsRendered  metric.Int64Counter
	ViewsSkipped   metric.Int64Counter
	RenderDuration metric.Float64Histogram
	ChartsRendered metric.Int64Counter

	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
}

// CreateBusinessMetrics creates the application-specific instruments
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.PreparationRuns, "preparation_runs_total", "Total number of data preparation runs"},
		{&m.PreparationRows, "preparation_rows_total", "Spreadsheet rows by preparation outcome"},
		{&m.DatasetLoads, "dataset_loads_total", "Total number of cleaned dataset loads"},
		{&m.DatasetRecords, "dataset_records_loaded_total", "Cleaned records materialized in memory"},
		{&m.ViewsRendered, "dashboard_views_rendered_total", "Dashboard view evaluations"},
		{&m.ViewsSkipped, "dashboard_views_skipped_total", "Views skipped for an empty filtered set"},
		{&m.ChartsRendered, "dashboard_charts_rendered_total", "Charts encoded"},
		{&m.HTTPRequestsTotal, "http_requests_total", "Total number of HTTP requests"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
	}

	histograms := []struct {
		dst  *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.PreparationDuration, "preparation_duration_seconds", "Data preparation duration in seconds"},
		{&m.RenderDuration, "dashboard_render_duration_seconds", "Time to compute every view for one filter selection"},
		{&m.HTTPRequestDuration, "http_request_duration_seconds", "HTTP request duration in seconds"},
	}
	for _, h := range histograms {
		*h.dst, err = meter.Float64Histogram(h.name, metric.WithDescription(h.desc), metric.WithUnit("s"))
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NoopBusinessMetrics returns instruments that record nothing
func NoopBusinessMetrics() *BusinessMetrics {
	m, _ := CreateBusinessMetrics(noop.NewMeterProvider().Meter(MeterName))
	return m
}

// RecordPreparation records the outcome of one preparation run
func (m *BusinessMetrics) RecordPreparation(ctx context.Context, report *domain.PreparationReport, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.PreparationRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if report == nil {
		return
	}

	m.PreparationDuration.Record(ctx, report.Duration.Seconds())
	for outcome, n := range map[string]int{
		"read":                report.RowsRead,
		"dropped_unparseable": report.DroppedUnparseable,
		"dropped_horizon":     report.DroppedBeyondHorizon,
		"written":             report.RowsWritten,
	} {
		m.PreparationRows.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// RecordDatasetLoad records one load of the cleaned artifact
func (m *BusinessMetrics) RecordDatasetLoad(ctx context.Context, records int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if err == nil {
		m.DatasetRecords.Add(ctx, int64(records))
	}
}

// RecordViews records one full recomputation of the dashboard views
func (m *BusinessMetrics) RecordViews(ctx context.Context, views *domain.Views, duration time.Duration) {
	m.ViewsRendered.Add(ctx, 1)
	m.RenderDuration.Record(ctx, duration.Seconds())
	for name := range views.Skipped {
		m.ViewsSkipped.Add(ctx, 1, metric.WithAttributes(attribute.String("view", string(name))))
	}
}

// RecordChart records one chart encoding
func (m *BusinessMetrics) RecordChart(ctx context.Context, name domain.ViewName, format string) {
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("chart", string(name)),
		attribute.String("format", format),
	))
}

// RecordHTTP records a completed HTTP request
func (m *BusinessMetrics) RecordHTTP(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}
